// internal/localstore/localstore.go
package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nclex-prep/backend/internal/progress"
)

// Storage keys, kept compatible with the mobile app's key-value store.
const (
	keyProgress     = "progress:v1"
	keySessions     = "sessions:v1"
	keyLastActiveAt = "lastActiveAt:v1"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// LocalStore persists the client's durable state (cumulative progress,
// session log, last-activity timestamp) as JSON blobs in a sqlite file.
// Every operation reports failure explicitly; callers decide whether to
// retry or proceed optimistically.
type LocalStore struct {
	db *sql.DB
}

// New opens (or creates) the store at dbPath.
func New(dbPath string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// LoadProgress returns the persisted cumulative progress, or zero counters
// when nothing has been recorded yet.
func (s *LocalStore) LoadProgress() (progress.Progress, error) {
	var p progress.Progress
	raw, ok, err := s.get(keyProgress)
	if err != nil || !ok {
		return p, err
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return progress.Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	return p, nil
}

func (s *LocalStore) SaveProgress(p progress.Progress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.set(keyProgress, string(raw))
}

// ResetProgress clears the cumulative counters.
func (s *LocalStore) ResetProgress() error {
	return s.SaveProgress(progress.Progress{})
}

// LoadSessions returns the session log, newest last.
func (s *LocalStore) LoadSessions() ([]progress.SessionRecord, error) {
	raw, ok, err := s.get(keySessions)
	if err != nil || !ok {
		return nil, err
	}
	var log []progress.SessionRecord
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		return nil, fmt.Errorf("decode session log: %w", err)
	}
	return log, nil
}

// AddSession appends rec to the session log and trims it to the most
// recent entries in one read-modify-write step.
func (s *LocalStore) AddSession(rec progress.SessionRecord) error {
	log, err := s.LoadSessions()
	if err != nil {
		return err
	}
	merged := progress.AppendSession(log, rec)
	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.set(keySessions, string(raw))
}

// ResetSessions clears the session log.
func (s *LocalStore) ResetSessions() error {
	return s.set(keySessions, "[]")
}

// MarkActivity records t as the last activity time, in epoch milliseconds.
func (s *LocalStore) MarkActivity(t time.Time) error {
	return s.set(keyLastActiveAt, strconv.FormatInt(t.UnixMilli(), 10))
}

// LastActivity returns the last recorded activity time. ok is false when
// no activity has been recorded.
func (s *LocalStore) LastActivity() (t time.Time, ok bool, err error) {
	raw, ok, err := s.get(keyLastActiveAt)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("decode last activity: %w", err)
	}
	return time.UnixMilli(ms), true, nil
}

func (s *LocalStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *LocalStore) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}
