// Package activity tracks when the user last practiced, backing the
// "recent activity" banner. The expiry timer is owned by the Watch caller
// through its context rather than living in package-level state.
package activity

import (
	"context"
	"time"
)

// DefaultTimeout is the window within which activity counts as recent.
const DefaultTimeout = 5 * time.Minute

// Store persists the last-activity timestamp.
type Store interface {
	MarkActivity(time.Time) error
	LastActivity() (t time.Time, ok bool, err error)
}

// Tracker reads and writes the last-activity timestamp.
type Tracker struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
}

// NewTracker creates a Tracker. A non-positive timeout uses DefaultTimeout.
func NewTracker(store Store, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Tracker{store: store, timeout: timeout, now: time.Now}
}

// Mark records the current time as the last activity.
func (t *Tracker) Mark() error {
	return t.store.MarkActivity(t.now())
}

// IsRecent reports whether any activity happened within the window.
func (t *Tracker) IsRecent() (bool, error) {
	last, ok, err := t.store.LastActivity()
	if err != nil || !ok {
		return false, err
	}
	return t.now().Sub(last) < t.timeout, nil
}

// Watch invokes fn(false) once the recency window expires. The timer is
// cancelled when ctx is done, so a torn-down caller never receives a
// stale notification. If activity is not currently recent, fn is not
// scheduled and Watch returns immediately.
func (t *Tracker) Watch(ctx context.Context, fn func(recent bool)) error {
	last, ok, err := t.store.LastActivity()
	if err != nil || !ok {
		return err
	}
	remaining := t.timeout - t.now().Sub(last)
	if remaining <= 0 {
		return nil
	}

	timer := time.NewTimer(remaining)
	go func() {
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			fn(false)
		}
	}()
	return nil
}
