package notifications

import (
	"context"

	"exchangeclient/src/model"
)

// PanelAPI is the slice of the exchange connector the panel reader needs.
type PanelAPI interface {
	Notifications(ctx context.Context, limit int, unreadOnly bool) (*model.NotificationFeed, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Panel is the notification-panel reader. It relies on the backend
// read/unread flag, not on the stream's timestamp dedup.
type Panel struct {
	api   PanelAPI
	limit int
}

func NewPanel(api PanelAPI, limit int) *Panel {
	if limit <= 0 {
		limit = 50
	}
	return &Panel{api: api, limit: limit}
}

// Feed returns the latest notifications with the unread count.
func (p *Panel) Feed(ctx context.Context) (*model.NotificationFeed, error) {
	return p.api.Notifications(ctx, p.limit, false)
}

// MarkRead acknowledges one notification.
func (p *Panel) MarkRead(ctx context.Context, id string) error {
	return p.api.MarkNotificationRead(ctx, id)
}

// MarkAllRead acknowledges every notification.
func (p *Panel) MarkAllRead(ctx context.Context) error {
	return p.api.MarkAllNotificationsRead(ctx)
}
