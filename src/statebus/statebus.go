// Package statebus decouples "who fetched a fresh UserProfile" from "who
// needs to react to it". There is no shared application store: producers
// publish whole snapshots on a single typed channel and every subscriber
// replaces its local copy wholesale.
package statebus

import (
	"sync"

	"exchangeclient/src/model"

	logger "github.com/sirupsen/logrus"
)

// ProfileBus broadcasts UserProfile snapshots. Publishing is
// fire-and-forget: no acknowledgement, no back-pressure. Subscribers must
// be idempotent to repeated identical snapshots.
//
// Every refresh request takes a sequence number via BeginRefresh before
// issuing its fetch; Publish discards any snapshot whose sequence number
// is lower than the last applied one, so a slow response can never
// overwrite a newer snapshot with stale data.
type ProfileBus struct {
	// deliverMu serializes whole Publish calls so subscribers observe
	// snapshots in applied-sequence order. Held across both the staleness
	// check and the fan-out: checking under mu alone would let two
	// accepted publishes race to the callbacks and invert their order.
	deliverMu sync.Mutex

	mu      sync.Mutex
	seq     uint64 // last issued sequence number
	applied uint64 // sequence number of the last applied snapshot
	current *model.UserProfile

	nextSubID int
	subs      map[int]func(model.UserProfile)
}

func NewProfileBus() *ProfileBus {
	return &ProfileBus{subs: make(map[int]func(model.UserProfile))}
}

// BeginRefresh issues the sequence number for one refresh request. Call it
// before sending the fetch, and hand the number to Publish with the
// response.
func (b *ProfileBus) BeginRefresh() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// Publish applies a snapshot and broadcasts it to every subscriber.
// Returns false when the snapshot is stale (a higher-sequence snapshot was
// already applied) or when it belongs to a session that has since been
// reset; stale snapshots are dropped, never delivered. Deliveries are
// serialized: a Publish does not return until its fan-out completed, and
// subscribers must not call Publish from inside a callback.
func (b *ProfileBus) Publish(seq uint64, profile model.UserProfile) bool {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	b.mu.Lock()
	if seq <= b.applied || seq > b.seq {
		applied := b.applied
		b.mu.Unlock()
		logger.WithFields(map[string]interface{}{
			"seq":     seq,
			"applied": applied,
		}).Debug("discarding stale profile snapshot")
		return false
	}
	b.applied = seq
	b.current = &profile

	receivers := make([]func(model.UserProfile), 0, len(b.subs))
	for _, fn := range b.subs {
		receivers = append(receivers, fn)
	}
	b.mu.Unlock()

	for _, fn := range receivers {
		fn(profile)
	}
	return true
}

// Subscribe registers a receiver for future snapshots and returns its
// cancel function. A late response delivered after cancel is simply never
// seen by the departed subscriber.
func (b *ProfileBus) Subscribe(fn func(model.UserProfile)) (cancel func()) {
	b.mu.Lock()
	b.nextSubID++
	id := b.nextSubID
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Current returns the last applied snapshot, if any.
func (b *ProfileBus) Current() (model.UserProfile, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return model.UserProfile{}, false
	}
	return *b.current, true
}

// Reset drops the cached snapshot and sequence state. Called on logout;
// responses still in flight from the old session carry sequence numbers
// above the reset counter and are discarded by Publish.
func (b *ProfileBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq = 0
	b.applied = 0
	b.current = nil
}
