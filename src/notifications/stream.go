// Package notifications holds the two readers of the notification feed:
// the timestamp-deduplicated toast stream and the simpler read/unread
// panel reader. The two must not be conflated; the stream never touches
// the backend read flag and the panel never drives toasts.
package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"exchangeclient/src/model"

	logger "github.com/sirupsen/logrus"
)

// FeedLister is the slice of the exchange connector the stream needs.
type FeedLister interface {
	Notifications(ctx context.Context, limit int, unreadOnly bool) (*model.NotificationFeed, error)
}

// ToastSink receives the entries the stream judges toast-worthy.
type ToastSink interface {
	Push(model.ToastEntry)
}

// Stream polls the feed on a fixed interval and emits each qualifying
// event to the sink exactly once per client session, no matter how many
// consecutive polls the event reappears in.
//
// Dedup is a session-local high-water mark: only events created after
// lastChecked qualify, and lastChecked advances to each poll's completion
// time. Completion time, not max(created_at): an event created mid-flight
// lands in the next poll's window or is missed, but a backend clock ahead
// of the client can never cause re-delivery.
type Stream struct {
	api   FeedLister
	sink  ToastSink
	limit int

	mu          sync.Mutex
	lastChecked time.Time

	now func() time.Time // swapped in tests
}

func NewStream(api FeedLister, sink ToastSink, limit int) *Stream {
	if limit <= 0 {
		limit = 20
	}
	s := &Stream{
		api:   api,
		sink:  sink,
		limit: limit,
		now:   time.Now,
	}
	s.lastChecked = s.now()
	return s
}

// Poll is the scheduler task. Failures are swallowed by design: a failed
// poll logs, leaves the high-water mark untouched and waits for the next
// tick.
func (s *Stream) Poll(ctx context.Context) {
	feed, err := s.api.Notifications(ctx, s.limit, true)
	if err != nil {
		logger.WithError(err).Warn("notification poll failed, waiting for next tick")
		return
	}
	completed := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	emitted := 0
	for _, event := range feed.Notifications {
		if !event.CreatedAt.After(s.lastChecked) {
			continue
		}
		if !event.Type.ToastWorthy() {
			continue
		}
		if seen[event.ID] {
			continue
		}
		seen[event.ID] = true

		s.sink.Push(model.ToastEntry{
			Key:        fmt.Sprintf("%s-%d", event.ID, completed.UnixNano()),
			EventID:    event.ID,
			Type:       event.Type,
			Title:      event.Title,
			Message:    event.Message,
			EnqueuedAt: completed,
		})
		emitted++
	}

	s.lastChecked = completed

	if emitted > 0 {
		logger.WithFields(map[string]interface{}{
			"emitted":      emitted,
			"unread_count": feed.UnreadCount,
		}).Debug("notification poll emitted toasts")
	}
}

// Reset restarts the session window. Called on logout/login so a new
// session never toasts the previous session's backlog.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastChecked = s.now()
}
