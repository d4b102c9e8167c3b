// Package activity keeps a bounded, in-process record of recently served
// requests for the /api/activity feed.
package activity

import (
	"sync"

	"github.com/campushub/event-hub/internal/core/domain"
)

// Log is a fixed-capacity ring buffer. Once full, each Add evicts the oldest
// entry. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []domain.ActivityEntry
	next    int
	full    bool
}

// New returns a Log holding at most capacity entries. capacity < 1 is treated as 1.
func New(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{entries: make([]domain.ActivityEntry, capacity)}
}

func (l *Log) Add(e domain.ActivityEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Entries returns a snapshot, newest first.
func (l *Log) Entries() []domain.ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.lenLocked()
	out := make([]domain.ActivityEntry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lenLocked()
}

func (l *Log) lenLocked() int {
	if l.full {
		return len(l.entries)
	}
	return l.next
}
