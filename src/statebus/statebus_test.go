package statebus

import (
	"sync"
	"testing"

	"exchangeclient/src/model"

	"github.com/stretchr/testify/assert"
)

func snapshot(id string, balance int64) model.UserProfile {
	return model.UserProfile{ID: id, DisplayName: "Dana", Balance: balance, KYCLevel: 1}
}

func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	bus := NewProfileBus()

	// Request A issued first, request B second.
	seqA := bus.BeginRefresh()
	seqB := bus.BeginRefresh()

	// B's response arrives first.
	assert.True(t, bus.Publish(seqB, snapshot("u-1", 800_000)))

	// A's slower, staler response arrives afterwards and must be dropped.
	assert.False(t, bus.Publish(seqA, snapshot("u-1", 1_000_000)))

	current, ok := bus.Current()
	if !ok {
		t.Fatal("expected a current snapshot")
	}
	assert.Equal(t, int64(800_000), current.Balance)
}

func TestStaleResponseNotDeliveredToSubscribers(t *testing.T) {
	bus := NewProfileBus()

	var delivered []int64
	bus.Subscribe(func(p model.UserProfile) {
		delivered = append(delivered, p.Balance)
	})

	seqA := bus.BeginRefresh()
	seqB := bus.BeginRefresh()
	bus.Publish(seqB, snapshot("u-1", 800_000))
	bus.Publish(seqA, snapshot("u-1", 1_000_000))

	assert.Equal(t, []int64{800_000}, delivered)
}

func TestIdempotentSubscriberUnchangedByRepeat(t *testing.T) {
	bus := NewProfileBus()

	// Subscriber replaces its copy wholesale and only re-renders when the
	// snapshot actually changed.
	var local model.UserProfile
	var haveLocal bool
	renders := 0
	bus.Subscribe(func(p model.UserProfile) {
		if haveLocal && local.Equal(p) {
			return
		}
		local = p
		haveLocal = true
		renders++
	})

	same := snapshot("u-1", 500_000)
	bus.Publish(bus.BeginRefresh(), same)
	bus.Publish(bus.BeginRefresh(), same)

	assert.Equal(t, 1, renders)
	assert.Equal(t, int64(500_000), local.Balance)
}

func TestCancelledSubscriberSeesNothing(t *testing.T) {
	bus := NewProfileBus()

	calls := 0
	cancel := bus.Subscribe(func(model.UserProfile) { calls++ })

	bus.Publish(bus.BeginRefresh(), snapshot("u-1", 1))
	cancel()
	bus.Publish(bus.BeginRefresh(), snapshot("u-1", 2))

	assert.Equal(t, 1, calls)
}

func TestConcurrentPublishesDeliverInAppliedOrder(t *testing.T) {
	bus := NewProfileBus()

	// The subscriber keeps its own copy, as every real consumer does. The
	// first delivery is held mid-callback while a second publish races it;
	// the subscriber must still end on the newest snapshot.
	inDelivery := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var local int64
	bus.Subscribe(func(p model.UserProfile) {
		if p.Balance == 1 {
			close(inDelivery)
			<-release
		}
		mu.Lock()
		local = p.Balance
		mu.Unlock()
	})

	seq1 := bus.BeginRefresh()
	seq2 := bus.BeginRefresh()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		bus.Publish(seq1, snapshot("u-1", 1))
	}()
	<-inDelivery
	go func() {
		defer wg.Done()
		bus.Publish(seq2, snapshot("u-1", 2))
	}()
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, int64(2), local, "subscriber must not end on the older snapshot")

	current, _ := bus.Current()
	assert.Equal(t, int64(2), current.Balance)
}

func TestResetDiscardsOldSessionResponses(t *testing.T) {
	bus := NewProfileBus()

	oldSeq := bus.BeginRefresh()
	bus.Reset()

	// Response from the previous session arrives after logout.
	assert.False(t, bus.Publish(oldSeq, snapshot("u-old", 999)))

	_, ok := bus.Current()
	assert.False(t, ok)
}
