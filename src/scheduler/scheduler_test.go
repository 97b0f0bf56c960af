package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestCancelStopsInvocations(t *testing.T) {
	s := New()
	defer s.Stop()

	var count int64
	handle := s.Register(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&count, 1)
	})

	time.Sleep(90 * time.Millisecond)
	s.Cancel(handle)

	// Let any already-started invocation settle before snapshotting.
	time.Sleep(20 * time.Millisecond)
	snapshot := atomic.LoadInt64(&count)
	if snapshot == 0 {
		t.Fatal("expected at least one invocation before cancel")
	}

	time.Sleep(120 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != snapshot {
		t.Fatalf("task invoked after cancel: %d -> %d", snapshot, got)
	}
	if s.Active() != 0 {
		t.Fatalf("expected no active tasks, got %d", s.Active())
	}
}

func TestCancelDuringInFlightInvocationNeverFiresAgain(t *testing.T) {
	s := New()
	defer s.Stop()

	started := make(chan struct{})
	release := make(chan struct{})
	var count int64
	handle := s.Register(20*time.Millisecond, func(ctx context.Context) {
		if atomic.AddInt64(&count, 1) == 1 {
			close(started)
			<-release
		}
	})

	// Cancel lands while the first invocation is still running. That
	// invocation completes; no later tick may launch another.
	<-started
	s.Cancel(handle)
	close(release)

	time.Sleep(120 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != 1 {
		t.Fatalf("task invoked after cancel, count=%d", got)
	}
}

func TestOverlapGuardSkipsTicks(t *testing.T) {
	s := New()
	defer s.Stop()

	var count int64
	s.Register(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&count, 1)
		time.Sleep(100 * time.Millisecond)
	})

	time.Sleep(250 * time.Millisecond)

	// Without the in-flight guard ~12 ticks would each invoke the task;
	// with it only one invocation can run per ~120ms window.
	got := atomic.LoadInt64(&count)
	if got == 0 {
		t.Fatal("expected the task to run at least once")
	}
	if got > 4 {
		t.Fatalf("overlap guard failed, task invoked %d times", got)
	}
}

func TestIntervalsAreIndependent(t *testing.T) {
	s := New()
	defer s.Stop()

	var fast, slow int64
	s.Register(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&fast, 1)
	})
	s.Register(80*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&slow, 1)
	})

	time.Sleep(300 * time.Millisecond)

	fastCount := atomic.LoadInt64(&fast)
	slowCount := atomic.LoadInt64(&slow)
	if fastCount == 0 || slowCount == 0 {
		t.Fatalf("expected both tasks to run, got fast=%d slow=%d", fastCount, slowCount)
	}
	if fastCount <= slowCount {
		t.Fatalf("expected the 20ms task to outpace the 80ms task, got fast=%d slow=%d", fastCount, slowCount)
	}
}

func TestStopCancelsEverything(t *testing.T) {
	s := New()

	var count int64
	s.Register(20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&count, 1)
	})
	s.Register(30*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt64(&count, 1)
	})

	time.Sleep(70 * time.Millisecond)
	s.Stop()

	time.Sleep(20 * time.Millisecond)
	snapshot := atomic.LoadInt64(&count)
	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt64(&count); got != snapshot {
		t.Fatalf("task invoked after Stop: %d -> %d", snapshot, got)
	}
	if s.Active() != 0 {
		t.Fatalf("expected no active tasks after Stop, got %d", s.Active())
	}
}
