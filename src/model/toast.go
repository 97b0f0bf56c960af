package model

import "time"

// ToastEntry is an ephemeral projection of a NotificationEvent. The key
// combines the event id with the enqueue timestamp so a re-delivered event
// never collides with an earlier entry. Never persisted.
type ToastEntry struct {
	Key        string           `json:"key"`
	EventID    string           `json:"event_id"`
	Type       NotificationType `json:"type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	EnqueuedAt time.Time        `json:"enqueued_at"`
	ExpiresAt  time.Time        `json:"expires_at"`
}

// Expired reports whether the entry's time-to-live has elapsed.
func (t ToastEntry) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
