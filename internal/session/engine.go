// Package session drives one bounded practice session: it requests random
// questions while feeding back the exclusion set, tracks per-session
// counters and elapsed time, and records the completed session exactly once.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nclex-prep/backend/internal/progress"
	"github.com/nclex-prep/backend/internal/question"
)

// State is the session lifecycle state.
type State int

const (
	StateBootstrapping State = iota
	StateActive
	StateFeedback
	StateComplete
)

var (
	ErrNotActive     = errors.New("session is not active")
	ErrNoAnswer      = errors.New("no answer has been selected")
	ErrInvalidOption = errors.New("not an option key")
	ErrNoFallback    = errors.New("no fallback questions available")
)

// Fetcher requests one random question, excluding previously seen ids.
type Fetcher interface {
	FetchRandomQuestion(ctx context.Context, exclude []string) (*question.Question, error)
}

// Store persists the client's durable state. Implementations report
// failures explicitly; the engine logs them and proceeds optimistically.
type Store interface {
	LoadProgress() (progress.Progress, error)
	SaveProgress(progress.Progress) error
	AddSession(progress.SessionRecord) error
	MarkActivity(time.Time) error
}

// Outcome describes the result of an answer selection.
type Outcome struct {
	Ignored     bool // selection on an already-answered question: no-op
	Correct     bool
	Explanation string // shown on incorrect answers
}

// Snapshot is a point-in-time view of the session for rendering.
type Snapshot struct {
	State         State
	Question      *question.Question
	Selected      string
	Answered      int
	Correct       int
	Elapsed       int
	Limit         int
	UsingFallback bool
	Progress      progress.Progress
}

// Options configures an Engine.
type Options struct {
	Fallback []question.Question // bundled questions used when the network fails
	Limit    int                 // session question bound; defaults to 10
	Now      func() time.Time
	Logger   *slog.Logger
}

// Engine is the practice session state machine. Methods are safe for use
// by a driver loop and a once-per-second ticker concurrently; only one
// question fetch is ever in flight.
type Engine struct {
	fetch  Fetcher
	store  Store
	logger *slog.Logger
	now    func() time.Time
	limit  int

	mu            sync.Mutex
	state         State
	current       *question.Question
	selected      string
	excluded      []string
	seen          map[string]struct{}
	answered      int
	correct       int
	elapsed       int
	recorded      bool
	fetching      bool
	fallback      []question.Question
	fallbackPos   int
	usingFallback bool
	prog          progress.Progress
}

// New creates an Engine. The session does not start until Start is called.
func New(fetch Fetcher, store Store, opts Options) *Engine {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		fetch:    fetch,
		store:    store,
		logger:   logger,
		now:      now,
		limit:    limit,
		fallback: opts.Fallback,
		seen:     make(map[string]struct{}),
		state:    StateBootstrapping,
	}
}

// Start bootstraps the session: counters are zeroed, the exclusion set is
// emptied, and the first question is requested with no exclusion. An
// exhausted pool completes the session immediately with zero answered; a
// transient error falls back to the bundled question list.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.fetching {
		e.mu.Unlock()
		return nil
	}
	e.fetching = true
	e.resetLocked()
	e.mu.Unlock()

	prog, err := e.store.LoadProgress()
	if err != nil {
		e.logger.Warn("failed to load progress, starting from zero", "error", err)
		prog = progress.Progress{}
	}

	q, fetchErr := e.fetch.FetchRandomQuestion(ctx, nil)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetching = false
	e.prog = prog

	// The component driving this session may have been torn down while the
	// fetch was in flight; discard the result rather than apply it.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch {
	case fetchErr == nil:
		e.present(q)
		e.state = StateActive
	case errors.Is(fetchErr, question.ErrExhausted):
		e.completeLocked()
	default:
		e.logger.Warn("bootstrap fetch failed, using bundled questions", "error", fetchErr)
		if err := e.enterFallbackLocked(); err != nil {
			return err
		}
	}
	return nil
}

// Select records the user's answer for the current question. The first
// answer is final: a second selection is silently ignored. Correct answers
// keep the session in Active (the driver advances after a short display
// delay); incorrect answers transition to Feedback, pausing the clock
// until the user acknowledges the explanation.
func (e *Engine) Select(key string) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive || e.current == nil {
		return Outcome{}, ErrNotActive
	}
	if e.selected != "" {
		return Outcome{Ignored: true}, nil
	}
	if _, ok := e.current.Options[key]; !ok {
		return Outcome{}, ErrInvalidOption
	}

	correct := key == e.current.CorrectAnswer
	e.selected = key
	e.answered++
	if correct {
		e.correct++
	}

	e.prog.Record(correct)
	if err := e.store.SaveProgress(e.prog); err != nil {
		e.logger.Warn("failed to persist progress", "error", err)
	}

	out := Outcome{Correct: correct}
	if !correct {
		out.Explanation = e.current.Explanation
		e.state = StateFeedback
	}
	return out, nil
}

// Advance moves past an answered question: from a correct answer's display
// delay or from Feedback acknowledgment. If the session limit has been
// reached it completes without another fetch; otherwise it requests the
// next question with the just-answered question's id added to the
// exclusion set. Exhaustion completes the session early; a transient error
// switches to the bundled list for the remainder of the session.
func (e *Engine) Advance(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateComplete {
		e.mu.Unlock()
		return nil
	}
	if e.state != StateActive && e.state != StateFeedback {
		e.mu.Unlock()
		return ErrNotActive
	}
	if e.selected == "" {
		e.mu.Unlock()
		return ErrNoAnswer
	}
	e.state = StateActive

	if e.answered >= e.limit {
		e.completeLocked()
		e.mu.Unlock()
		return nil
	}

	if err := e.store.MarkActivity(e.now()); err != nil {
		e.logger.Warn("failed to mark activity", "error", err)
	}

	if e.usingFallback {
		err := e.advanceFallbackLocked()
		e.mu.Unlock()
		return err
	}

	if e.fetching {
		// One outstanding fetch at a time.
		e.mu.Unlock()
		return nil
	}
	e.fetching = true
	exclude := make([]string, len(e.excluded))
	copy(exclude, e.excluded)
	e.mu.Unlock()

	q, fetchErr := e.fetch.FetchRandomQuestion(ctx, exclude)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetching = false

	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch {
	case fetchErr == nil:
		e.present(q)
	case errors.Is(fetchErr, question.ErrExhausted):
		e.completeLocked()
	default:
		e.logger.Warn("fetch failed, switching to bundled questions", "error", fetchErr)
		return e.enterFallbackLocked()
	}
	return nil
}

// Finish forces the session into Complete. The session record is appended
// exactly once no matter how many completion paths fire.
func (e *Engine) Finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completeLocked()
}

// Tick advances the elapsed clock by one second. The clock only runs while
// a question is presented; it is frozen during Feedback and after Complete.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateActive {
		e.elapsed++
	}
}

// Snapshot returns a copy of the current session view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var q *question.Question
	if e.current != nil {
		copied := *e.current
		q = &copied
	}
	return Snapshot{
		State:         e.state,
		Question:      q,
		Selected:      e.selected,
		Answered:      e.answered,
		Correct:       e.correct,
		Elapsed:       e.elapsed,
		Limit:         e.limit,
		UsingFallback: e.usingFallback,
		Progress:      e.prog,
	}
}

// present loads q as the current question and tracks its id in the
// exclusion set. Fallback questions carry no id and are not tracked.
func (e *Engine) present(q *question.Question) {
	e.current = q
	e.selected = ""
	if q.ID == "" {
		return
	}
	if _, dup := e.seen[q.ID]; !dup {
		e.seen[q.ID] = struct{}{}
		e.excluded = append(e.excluded, q.ID)
	}
}

func (e *Engine) enterFallbackLocked() error {
	if len(e.fallback) == 0 {
		return ErrNoFallback
	}
	e.usingFallback = true
	e.fallbackPos = 0
	e.present(&e.fallback[0])
	e.state = StateActive
	return nil
}

// advanceFallbackLocked steps through the bundled list by position,
// wrapping back to the start when exhausted. No exclusion filtering
// applies to the static list.
func (e *Engine) advanceFallbackLocked() error {
	if len(e.fallback) == 0 {
		return ErrNoFallback
	}
	e.fallbackPos = (e.fallbackPos + 1) % len(e.fallback)
	e.present(&e.fallback[e.fallbackPos])
	return nil
}

func (e *Engine) completeLocked() {
	e.state = StateComplete
	if e.recorded {
		return
	}
	rec := progress.NewSessionRecord(e.now(), e.answered, e.correct, e.elapsed)
	if err := e.store.AddSession(rec); err != nil {
		e.logger.Warn("failed to record session", "error", err)
	}
	e.recorded = true
}

func (e *Engine) resetLocked() {
	e.state = StateBootstrapping
	e.current = nil
	e.selected = ""
	e.excluded = nil
	e.seen = make(map[string]struct{})
	e.answered = 0
	e.correct = 0
	e.elapsed = 0
	e.recorded = false
	e.usingFallback = false
	e.fallbackPos = 0
}
