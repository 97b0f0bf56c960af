// Package toast holds the ephemeral presentation queue fed by the
// notification dedup stream. Entries are ordered by enqueue time, expire
// after a fixed time-to-live, and are never persisted.
package toast

import (
	"sync"
	"time"

	"exchangeclient/src/model"

	logger "github.com/sirupsen/logrus"
)

type Queue struct {
	mu      sync.Mutex
	entries []model.ToastEntry
	ttl     time.Duration

	now func() time.Time // swapped in tests
}

func NewQueue(ttl time.Duration) *Queue {
	return &Queue{
		ttl: ttl,
		now: time.Now,
	}
}

// Push appends an entry, stamping its expiry from the queue TTL when the
// stream left it unset.
func (q *Queue) Push(entry model.ToastEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if entry.ExpiresAt.IsZero() {
		base := entry.EnqueuedAt
		if base.IsZero() {
			base = q.now()
			entry.EnqueuedAt = base
		}
		entry.ExpiresAt = base.Add(q.ttl)
	}
	q.entries = append(q.entries, entry)

	logger.WithFields(map[string]interface{}{
		"key":  entry.Key,
		"type": entry.Type,
	}).Debug("toast enqueued")
}

// Active prunes expired entries and returns the live ones in enqueue
// order.
func (q *Queue) Active() []model.ToastEntry {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pruneLocked(q.now())

	out := make([]model.ToastEntry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Dismiss removes one entry by key. Returns false when the key is not in
// the queue (already expired or dismissed).
func (q *Queue) Dismiss(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.Key == key {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep drops expired entries. Registered on the polling scheduler so
// toasts retire even while no surface is reading Active.
func (q *Queue) Sweep() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pruneLocked(q.now())
}

// Clear empties the queue. Called on logout.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) pruneLocked(now time.Time) {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if !e.Expired(now) {
			kept = append(kept, e)
		}
	}
	q.entries = kept
}
