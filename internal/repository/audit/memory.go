package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"orderscan/internal/domain"
)

// Log is the canonical in-memory audit log: append-only, entries immutable
// once recorded.
type Log struct {
	mu        sync.Mutex
	entries   []domain.LogEntry
	followers []Follower

	now   func() time.Time
	newID func() string
}

// NewMemory returns an empty log. Followers receive each entry once, in
// append order.
func NewMemory(followers ...Follower) *Log {
	return &Log{
		followers: followers,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (l *Log) Record(message string, status domain.LogStatus, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := domain.LogEntry{
		ID:        l.newID(),
		Timestamp: l.now(),
		Message:   message,
		Status:    status,
		Details:   details,
	}
	l.entries = append(l.entries, e)
	for _, f := range l.followers {
		f.Append(e)
	}
}

// Entries returns a snapshot of the log in append order.
func (l *Log) Entries() []domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.LogEntry(nil), l.entries...)
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
