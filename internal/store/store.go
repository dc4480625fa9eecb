package store

import (
	"context"
	"errors"

	"github.com/nclex-prep/backend/internal/question"
)

var (
	// ErrMalformed means the sampled document could not be normalized into
	// a valid question (data-integrity failure, distinct from connectivity).
	ErrMalformed = errors.New("sampled document is malformed")

	// ErrUnavailable means the backing store is not reachable yet or the
	// query failed transiently. Requests arriving before the connection is
	// ready fail fast with this instead of hanging.
	ErrUnavailable = errors.New("question store unavailable")
)

// Store supplies random questions. Exclusion entries that do not parse as
// valid storage keys are dropped silently. An empty filtered population is
// reported as question.ErrExhausted.
type Store interface {
	RandomQuestion(ctx context.Context, exclude []string) (*question.Question, error)
}
