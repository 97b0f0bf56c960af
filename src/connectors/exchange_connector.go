// Package connectors holds the REST client for the exchange backend.
// No automatic retry: polling self-heals on the next tick and order
// submissions must never repeat silently.
package connectors

import (
	"context"
	"fmt"
	"strconv"

	"exchangeclient/src/auth"
	"exchangeclient/src/model"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// Client is the authenticated HTTP client for the exchange API. Every
// credential-gated call checks the token source first and fails with
// ErrUnauthenticated before touching the network when no token exists.
type Client struct {
	http   *resty.Client
	tokens auth.TokenSource
}

func NewClient(baseURL string, tokens auth.TokenSource) *Client {
	cfg := GetConfig()

	if baseURL == "" {
		baseURL = cfg.BaseURL
		logger.WithField("base_url", baseURL).Warn("no base URL provided, using configured default")
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		tokens: tokens,
	}
}

// request builds an authenticated request, short-circuiting locally when
// the credential is absent.
func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	token, ok := c.tokens.Token()
	if !ok {
		return nil, ErrUnauthenticated
	}
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetError(&apiErrorBody{}), nil
}

// CurrentUserProfile fetches the authoritative UserProfile snapshot.
func (c *Client) CurrentUserProfile(ctx context.Context) (*model.UserProfile, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var profile model.UserProfile
	resp, err := req.SetResult(&profile).Get("/api/v1/users/me")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Notifications fetches the most recent notifications, newest first.
func (c *Client) Notifications(ctx context.Context, limit int, unreadOnly bool) (*model.NotificationFeed, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	req.SetQueryParam("limit", strconv.Itoa(limit))
	if unreadOnly {
		req.SetQueryParam("unread_only", "true")
	}

	var feed model.NotificationFeed
	resp, err := req.SetResult(&feed).Get("/api/v1/notifications")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return &feed, nil
}

// MarkNotificationRead flips the backend read flag for one notification.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Patch(fmt.Sprintf("/api/v1/notifications/%s/read", id))
	return classify(resp, err)
}

// MarkAllNotificationsRead flips the read flag on every notification.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Patch("/api/v1/notifications/mark-all-read")
	return classify(resp, err)
}

// WalletAddresses lists the user's saved wallet addresses.
func (c *Client) WalletAddresses(ctx context.Context) ([]model.WalletAddress, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var addresses []model.WalletAddress
	resp, err := req.SetResult(&addresses).Get("/api/v1/wallet-addresses")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return addresses, nil
}

// SubmitOrderRequest is the order submission payload. Amount is minor
// currency units (buy); Quantity is asset quantity (sell/convert).
type SubmitOrderRequest struct {
	Kind          model.OrderKind  `json:"kind"`
	Asset         string           `json:"asset"`
	Amount        int64            `json:"amount,omitempty"`
	Quantity      *decimal.Decimal `json:"quantity,omitempty"`
	TargetAsset   string           `json:"target_asset,omitempty"`
	WalletAddress string           `json:"wallet_address,omitempty"`
}

type SubmitOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// SubmitOrder performs the authenticated submission call.
func (c *Client) SubmitOrder(ctx context.Context, order SubmitOrderRequest) (*SubmitOrderResponse, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"kind":  order.Kind,
		"asset": order.Asset,
	}).Debug("submitting order")

	var result SubmitOrderResponse
	resp, err := req.
		SetBody(order).
		SetResult(&result).
		Post("/api/v1/orders")
	if err := classify(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}
