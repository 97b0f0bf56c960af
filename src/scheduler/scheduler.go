// Package scheduler owns the start/stop lifecycle of every recurring fetch
// loop, scoped to the lifetime of the UI surface that registered it.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Task is one recurring unit of work. The context is cancelled only when
// the whole scheduler stops, not on per-task Cancel: an in-flight request
// is allowed to finish and its late response must be ignored by consumers.
type Task func(ctx context.Context)

type Handle uint64

type entry struct {
	stop     chan struct{}
	inFlight atomic.Bool

	// mu orders task launches against Cancel: a tick holds it while
	// deciding to launch, and Cancel flips cancelled under it. Once Cancel
	// returns, no further launch can happen; a launch that won the mutex
	// first counts as in flight and runs to completion.
	mu        sync.Mutex
	cancelled bool
}

// Scheduler runs N independent polling loops. Intervals never synchronize
// or interfere; each task owns its own ticker goroutine.
type Scheduler struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[Handle]*entry
	wg     sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		tasks:  make(map[Handle]*entry),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register starts a loop invoking task every interval. The first
// invocation fires after one full interval; callers wanting an immediate
// run perform it themselves before registering.
func (s *Scheduler) Register(interval time.Duration, task Task) Handle {
	s.mu.Lock()
	s.nextID++
	handle := Handle(s.nextID)
	e := &entry{stop: make(chan struct{})}
	s.tasks[handle] = e
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(handle, e, interval, task)

	logger.WithFields(map[string]interface{}{
		"handle":   handle,
		"interval": interval,
	}).Debug("polling task registered")

	return handle
}

func (s *Scheduler) run(handle Handle, e *entry, interval time.Duration, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stop:
			return
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.cancelled {
				e.mu.Unlock()
				return
			}
			// Overlap guard: skip the tick while the previous
			// invocation is unresolved. The next tick self-heals.
			if !e.inFlight.CompareAndSwap(false, true) {
				e.mu.Unlock()
				logger.WithField("handle", handle).Debug("previous invocation still in flight, skipping tick")
				continue
			}
			go func() {
				defer e.inFlight.Store(false)
				task(s.ctx)
			}()
			e.mu.Unlock()
		}
	}
}

// Cancel stops a loop. No new invocation launches after Cancel returns;
// an invocation already in flight, including one whose tick won the
// launch race against Cancel, runs to completion.
func (s *Scheduler) Cancel(handle Handle) {
	s.mu.Lock()
	e, ok := s.tasks[handle]
	if ok {
		delete(s.tasks, handle)
	}
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.cancelled = true
		e.mu.Unlock()
		close(e.stop)
		logger.WithField("handle", handle).Debug("polling task cancelled")
	}
}

// Stop cancels every loop and waits for the loop goroutines to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	for handle, e := range s.tasks {
		e.mu.Lock()
		e.cancelled = true
		e.mu.Unlock()
		close(e.stop)
		delete(s.tasks, handle)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// Active returns the number of registered loops.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
