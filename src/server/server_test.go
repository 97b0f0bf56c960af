package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"exchangeclient/src/connectors"
	"exchangeclient/src/controller"
	"exchangeclient/src/engine"
	"exchangeclient/src/model"
	"exchangeclient/src/pricefeed"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubAPI struct {
	profile *model.UserProfile
}

func (s *stubAPI) CurrentUserProfile(ctx context.Context) (*model.UserProfile, error) {
	return s.profile, nil
}

func (s *stubAPI) Notifications(ctx context.Context, limit int, unreadOnly bool) (*model.NotificationFeed, error) {
	return &model.NotificationFeed{UnreadCount: 2}, nil
}

func (s *stubAPI) MarkNotificationRead(ctx context.Context, id string) error { return nil }

func (s *stubAPI) MarkAllNotificationsRead(ctx context.Context) error { return nil }

func (s *stubAPI) WalletAddresses(ctx context.Context) ([]model.WalletAddress, error) {
	return []model.WalletAddress{{Asset: "BTC", Address: "bc1-verified", Verified: true}}, nil
}

func (s *stubAPI) SubmitOrder(ctx context.Context, order connectors.SubmitOrderRequest) (*connectors.SubmitOrderResponse, error) {
	return &connectors.SubmitOrderResponse{OrderID: "ord-1"}, nil
}

type cancelPrompter struct{}

func (cancelPrompter) ConfirmUnverified(asset string) controller.PromptDecision {
	return controller.PromptCancel
}

func testEngine(t *testing.T, loggedIn bool) *engine.Engine {
	t.Helper()

	api := &stubAPI{profile: &model.UserProfile{ID: "u-1", Balance: 1_000_000}}
	prices := &pricefeed.Static{Prices: map[string]decimal.Decimal{
		"BTC": decimal.NewFromInt(50_000),
	}}
	e := engine.New(api, prices, cancelPrompter{})
	t.Cleanup(e.Stop)

	if loggedIn {
		if err := e.Login(context.Background()); err != nil {
			t.Fatalf("login failed: %v", err)
		}
	}
	return e
}

func TestListenAddrFallsBackToConfiguredPort(t *testing.T) {
	t.Setenv("PORT", "7777")

	assert.Equal(t, ":7777", listenAddr(""))
	assert.Equal(t, ":8080", listenAddr("8080"))
}

func TestHealthcheck(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, false)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthcheck")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatusReflectsSession(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, false)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	assert.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["signed_in"])
}

func TestStatusSignedIn(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, true)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	assert.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["signed_in"])
}

func TestDismissUnknownToastReturnsNotFound(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, true)))
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/toasts/no-such-key", nil)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitOrderEndpoint(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, true)))
	defer srv.Close()

	payload := `{"kind":"buy","asset":"BTC","amount":200000}`
	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader(payload))
	assert.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(model.OrderStateCompleted), body["state"])
}

func TestSubmitOrderRejectsBadPayload(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, true)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/orders", "application/json", strings.NewReader("{not json"))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStreamSeedsCurrentSnapshot(t *testing.T) {
	srv := httptest.NewServer(Router(testEngine(t, true)))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	var profile model.UserProfile
	assert.NoError(t, conn.ReadJSON(&profile))
	assert.Equal(t, "u-1", profile.ID)
	assert.Equal(t, int64(1_000_000), profile.Balance)
}
