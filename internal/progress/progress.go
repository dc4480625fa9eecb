package progress

import (
	"math"
	"strconv"
	"time"
)

// MaxSessionRecords bounds the durable session log; the oldest entries
// are evicted first once the bound is exceeded.
const MaxSessionRecords = 50

// Progress holds cumulative, cross-session counters.
type Progress struct {
	TotalAnswered int `json:"totalAnswered"`
	TotalCorrect  int `json:"totalCorrect"`
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
}

// Record applies a single answer. The streak resets on an incorrect
// answer; best streak is the running maximum of the current streak.
func (p *Progress) Record(correct bool) {
	p.TotalAnswered++
	if correct {
		p.TotalCorrect++
		p.CurrentStreak++
		if p.CurrentStreak > p.BestStreak {
			p.BestStreak = p.CurrentStreak
		}
	} else {
		p.CurrentStreak = 0
	}
}

// Accuracy returns the percentage of correct answers, rounded.
func (p *Progress) Accuracy() int {
	if p.TotalAnswered == 0 {
		return 0
	}
	return int(math.Round(float64(p.TotalCorrect) / float64(p.TotalAnswered) * 100))
}

// SessionRecord is one entry in the durable session log.
type SessionRecord struct {
	ID              string `json:"id"` // timestamp-based id
	DateISO         string `json:"dateISO"`
	Answered        int    `json:"answered"`
	Correct         int    `json:"correct"`
	DurationSeconds int    `json:"durationSeconds"`
}

// NewSessionRecord builds a record for a session completed at now.
func NewSessionRecord(now time.Time, answered, correct, durationSeconds int) SessionRecord {
	return SessionRecord{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		DateISO:         now.UTC().Format(time.RFC3339),
		Answered:        answered,
		Correct:         correct,
		DurationSeconds: durationSeconds,
	}
}

// AppendSession appends rec, newest last, and trims the log to the most
// recent MaxSessionRecords entries.
func AppendSession(log []SessionRecord, rec SessionRecord) []SessionRecord {
	merged := append(log, rec)
	if len(merged) > MaxSessionRecords {
		merged = merged[len(merged)-MaxSessionRecords:]
	}
	return merged
}
