// Package engine is the composition root of the client session: it owns
// the scheduler, the profile bus, the notification stream, the toast
// queue and the order coordinator, and ties their lifecycles to login
// and logout.
package engine

import (
	"context"

	"exchangeclient/src/connectors"
	"exchangeclient/src/controller"
	"exchangeclient/src/model"
	"exchangeclient/src/notifications"
	"exchangeclient/src/pricefeed"
	"exchangeclient/src/scheduler"
	"exchangeclient/src/statebus"
	"exchangeclient/src/toast"

	logger "github.com/sirupsen/logrus"
)

// API is the full connector surface the engine wires into its
// components.
type API interface {
	CurrentUserProfile(ctx context.Context) (*model.UserProfile, error)
	Notifications(ctx context.Context, limit int, unreadOnly bool) (*model.NotificationFeed, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	WalletAddresses(ctx context.Context) ([]model.WalletAddress, error)
	SubmitOrder(ctx context.Context, order connectors.SubmitOrderRequest) (*connectors.SubmitOrderResponse, error)
}

type Engine struct {
	api    API
	config Config

	sched       *scheduler.Scheduler
	bus         *statebus.ProfileBus
	toasts      *toast.Queue
	stream      *notifications.Stream
	panel       *notifications.Panel
	coordinator *controller.Coordinator

	handles []scheduler.Handle
}

func New(api API, prices pricefeed.PriceSource, prompter controller.WalletPrompter) *Engine {
	config := GetConfig()

	bus := statebus.NewProfileBus()
	toasts := toast.NewQueue(config.ToastTTL)

	return &Engine{
		api:         api,
		config:      config,
		sched:       scheduler.New(),
		bus:         bus,
		toasts:      toasts,
		stream:      notifications.NewStream(api, toasts, config.NotificationLimit),
		panel:       notifications.NewPanel(api, config.PanelLimit),
		coordinator: controller.NewCoordinator(api, bus, prices, prompter),
	}
}

// Login fetches the initial profile snapshot and registers the polling
// tasks. The initial fetch is synchronous so the caller knows whether the
// session is usable before any surface renders.
func (e *Engine) Login(ctx context.Context) error {
	if err := e.RefreshProfile(ctx); err != nil {
		logger.WithError(err).Error("initial profile fetch failed")
		return err
	}

	e.stream.Reset()

	e.handles = []scheduler.Handle{
		e.sched.Register(e.config.ProfilePollInterval, e.pollProfile),
		e.sched.Register(e.config.NotificationPollInterval, e.stream.Poll),
		e.sched.Register(e.config.ToastSweepInterval, func(context.Context) { e.toasts.Sweep() }),
	}

	logger.WithFields(map[string]interface{}{
		"profile_interval":      e.config.ProfilePollInterval,
		"notification_interval": e.config.NotificationPollInterval,
	}).Info("session started, polling registered")
	return nil
}

// Logout tears down the session: polling stops, the cached profile and
// any pending toasts are dropped, and responses still in flight from the
// old session are discarded when they land.
func (e *Engine) Logout() {
	for _, h := range e.handles {
		e.sched.Cancel(h)
	}
	e.handles = nil

	e.bus.Reset()
	e.toasts.Clear()
	e.stream.Reset()

	logger.Info("session ended, polling cancelled and caches cleared")
}

// RefreshProfile performs one profile fetch-and-publish cycle, the same
// cycle the scheduler runs on its interval. Also used for user-triggered
// refreshes.
func (e *Engine) RefreshProfile(ctx context.Context) error {
	seq := e.bus.BeginRefresh()
	profile, err := e.api.CurrentUserProfile(ctx)
	if err != nil {
		return err
	}
	e.bus.Publish(seq, *profile)
	return nil
}

func (e *Engine) pollProfile(ctx context.Context) {
	if err := e.RefreshProfile(ctx); err != nil {
		logger.WithError(err).Warn("profile poll failed, waiting for next tick")
	}
}

// SubmitOrder runs the full order workflow.
func (e *Engine) SubmitOrder(ctx context.Context, order model.Order) controller.Result {
	return e.coordinator.Submit(ctx, order)
}

// Toasts returns the live toast entries in display order.
func (e *Engine) Toasts() []model.ToastEntry {
	return e.toasts.Active()
}

// DismissToast removes one toast before its TTL expires.
func (e *Engine) DismissToast(key string) bool {
	return e.toasts.Dismiss(key)
}

// Panel exposes the notification-panel reader.
func (e *Engine) Panel() *notifications.Panel {
	return e.panel
}

// Bus exposes the profile bus for subscribers such as the snapshot
// stream endpoint.
func (e *Engine) Bus() *statebus.ProfileBus {
	return e.bus
}

// Stop shuts the scheduler down and waits for in-flight tasks.
func (e *Engine) Stop() {
	e.sched.Stop()
}
