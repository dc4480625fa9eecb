package progress_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nclex-prep/backend/internal/progress"
)

func TestRecord_CountersAndStreaks(t *testing.T) {
	var p progress.Progress

	// correct, correct, incorrect, correct
	answers := []bool{true, true, false, true}
	for _, correct := range answers {
		p.Record(correct)
	}

	assert.Equal(t, 4, p.TotalAnswered)
	assert.Equal(t, 3, p.TotalCorrect)
	assert.Equal(t, 1, p.CurrentStreak, "streak restarts after the incorrect answer")
	assert.Equal(t, 2, p.BestStreak)
}

func TestRecord_StreakResetsImmediatelyOnIncorrect(t *testing.T) {
	var p progress.Progress
	p.Record(true)
	p.Record(true)
	p.Record(true)
	require.Equal(t, 3, p.CurrentStreak)

	p.Record(false)
	assert.Equal(t, 0, p.CurrentStreak)
	assert.Equal(t, 3, p.BestStreak)
}

func TestRecord_BestStreakMonotone(t *testing.T) {
	var p progress.Progress
	best := 0
	for i, correct := range []bool{true, false, true, true, false, true, true, true, false} {
		p.Record(correct)
		assert.GreaterOrEqual(t, p.BestStreak, best, "answer %d", i)
		assert.GreaterOrEqual(t, p.BestStreak, p.CurrentStreak, "answer %d", i)
		best = p.BestStreak
	}
}

func TestAccuracy(t *testing.T) {
	var p progress.Progress
	assert.Equal(t, 0, p.Accuracy(), "no answers yet")

	p.Record(true)
	p.Record(true)
	p.Record(false)
	assert.Equal(t, 67, p.Accuracy())
}

func TestAppendSession_CapsAtFifty(t *testing.T) {
	var log []progress.SessionRecord
	for i := 0; i < progress.MaxSessionRecords; i++ {
		log = progress.AppendSession(log, progress.SessionRecord{ID: fmt.Sprintf("rec-%d", i)})
	}
	require.Len(t, log, progress.MaxSessionRecords)

	log = progress.AppendSession(log, progress.SessionRecord{ID: "rec-50"})

	assert.Len(t, log, progress.MaxSessionRecords)
	assert.Equal(t, "rec-1", log[0].ID, "oldest entry evicted first")
	assert.Equal(t, "rec-50", log[len(log)-1].ID, "newest entry kept last")
}

func TestNewSessionRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := progress.NewSessionRecord(now, 10, 7, 184)

	assert.Equal(t, fmt.Sprintf("%d", now.UnixMilli()), rec.ID)
	assert.Equal(t, "2026-03-14T09:26:53Z", rec.DateISO)
	assert.Equal(t, 10, rec.Answered)
	assert.Equal(t, 7, rec.Correct)
	assert.Equal(t, 184, rec.DurationSeconds)
}
