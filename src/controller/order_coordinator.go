// Package controller drives the order submission workflow: wallet
// preflight, advisory balance checks, the submission round trip and the
// post-submission profile reconciliation.
package controller

import (
	"context"
	"time"

	"exchangeclient/src/connectors"
	"exchangeclient/src/model"
	"exchangeclient/src/pricefeed"
	"exchangeclient/src/risk"

	logger "github.com/sirupsen/logrus"
)

// PromptDecision is the user's answer to the unverified-wallet prompt on
// a buy order.
type PromptDecision int

const (
	// PromptCancel abandons the submission.
	PromptCancel PromptDecision = iota
	// PromptAddAddress abandons the submission and asks the caller to
	// open the address-entry surface.
	PromptAddAddress
	// PromptProceed submits without a verified address. The backend
	// decides whether that is acceptable.
	PromptProceed
)

// WalletPrompter asks the user what to do when no verified wallet
// address exists for the asset being bought.
type WalletPrompter interface {
	ConfirmUnverified(asset string) PromptDecision
}

type exchangeAPI interface {
	WalletAddresses(ctx context.Context) ([]model.WalletAddress, error)
	SubmitOrder(ctx context.Context, order connectors.SubmitOrderRequest) (*connectors.SubmitOrderResponse, error)
	CurrentUserProfile(ctx context.Context) (*model.UserProfile, error)
}

type profileBus interface {
	BeginRefresh() uint64
	Publish(seq uint64, profile model.UserProfile) bool
	Current() (model.UserProfile, bool)
}

// Result is the terminal outcome of one Submit call. Exactly one of
// Confirmation (Completed) and Failure (Failed) is set; both are nil for
// Cancelled. RedirectToAddressEntry accompanies a Cancelled result when
// the user chose to add a wallet address instead.
type Result struct {
	State                  model.OrderState
	Confirmation           *model.OrderConfirmation
	Failure                *model.SubmitFailure
	RedirectToAddressEntry bool
}

// Coordinator runs one order submission at a time from the caller's
// point of view; concurrent Submit calls are independent workflows.
type Coordinator struct {
	api      exchangeAPI
	bus      profileBus
	prices   pricefeed.PriceSource
	prompter WalletPrompter

	now func() time.Time // swapped in tests
}

func NewCoordinator(api exchangeAPI, bus profileBus, prices pricefeed.PriceSource, prompter WalletPrompter) *Coordinator {
	return &Coordinator{
		api:      api,
		bus:      bus,
		prices:   prices,
		prompter: prompter,
		now:      time.Now,
	}
}

// Submit runs the full workflow for one order and returns its terminal
// state. It never retries on its own: a failed submission is reported and
// the user decides whether to resubmit.
func (c *Coordinator) Submit(ctx context.Context, order model.Order) Result {
	log := logger.WithFields(map[string]interface{}{
		"kind":  order.Kind,
		"asset": order.Asset,
	})
	log.Info("starting order submission workflow")

	profile, ok := c.bus.Current()
	if !ok {
		log.Warn("no signed-in profile, rejecting submission locally")
		return failed(&model.SubmitFailure{
			Reason:  model.FailureUnauthenticated,
			Message: "sign in before submitting an order",
		})
	}

	if order.Kind == model.OrderKindBuy {
		decision, redirect := c.validateWallet(ctx, &order, log)
		switch decision {
		case walletCancel:
			log.Info("submission cancelled at wallet prompt")
			return Result{State: model.OrderStateCancelled, RedirectToAddressEntry: redirect}
		case walletProceed:
		}
	}

	if failure := c.validateFunds(order, profile); failure != nil {
		log.WithField("reason", failure.Reason).Info("advisory preflight rejected order, no request sent")
		return failed(failure)
	}

	log.Debug("preflight passed, submitting")
	resp, err := c.api.SubmitOrder(ctx, submitRequest(order))
	if err != nil {
		failure := connectors.FailureFor(err)
		log.WithError(err).WithField("reason", failure.Reason).Error("order submission failed")
		return failed(failure)
	}

	// The submission changed the authoritative balance. Reconcile before
	// reporting success so every surface sees the post-order profile. A
	// failed reconcile never fails the order; the next poll catches up.
	c.reconcileProfile(ctx, log)

	confirmation := c.buildConfirmation(ctx, order, resp)
	log.WithField("order_id", confirmation.OrderID).Info("order submission completed")
	return Result{State: model.OrderStateCompleted, Confirmation: confirmation}
}

type walletDecision int

const (
	walletProceed walletDecision = iota
	walletCancel
)

// validateWallet resolves the wallet address for a buy order. The check
// fails open: if the address list cannot be fetched the submission
// proceeds and the backend enforces its own rules.
func (c *Coordinator) validateWallet(ctx context.Context, order *model.Order, log *logger.Entry) (walletDecision, bool) {
	log.Debug("validating wallet address")

	addresses, err := c.api.WalletAddresses(ctx)
	if err != nil {
		log.WithError(err).Warn("wallet address lookup failed, proceeding without preflight")
		return walletProceed, false
	}

	if addr, ok := model.FirstVerified(addresses, order.Asset); ok {
		if order.WalletAddress == "" {
			order.WalletAddress = addr.Address
		}
		return walletProceed, false
	}

	switch c.prompter.ConfirmUnverified(order.Asset) {
	case PromptProceed:
		log.Info("user chose to submit without a verified wallet address")
		return walletProceed, false
	case PromptAddAddress:
		return walletCancel, true
	default:
		return walletCancel, false
	}
}

// validateFunds runs the advisory check against the cached snapshot. The
// backend re-validates against live balances on submission.
func (c *Coordinator) validateFunds(order model.Order, profile model.UserProfile) *model.SubmitFailure {
	if order.Kind == model.OrderKindBuy {
		return risk.CheckBuyAmount(order.Amount, profile.Balance)
	}
	return risk.CheckSellQuantity(order.Quantity, profile.Held(order.Asset))
}

func (c *Coordinator) reconcileProfile(ctx context.Context, log *logger.Entry) {
	seq := c.bus.BeginRefresh()
	fresh, err := c.api.CurrentUserProfile(ctx)
	if err != nil {
		log.WithError(err).Warn("post-order profile reconcile failed, next poll will catch up")
		return
	}
	c.bus.Publish(seq, *fresh)
}

func (c *Coordinator) buildConfirmation(ctx context.Context, order model.Order, resp *connectors.SubmitOrderResponse) *model.OrderConfirmation {
	confirmation := &model.OrderConfirmation{
		OrderID:     resp.OrderID,
		SubmittedAt: c.now(),
		Kind:        order.Kind,
		Asset:       order.Asset,
		Amount:      order.Amount,
	}
	if confirmation.OrderID == "" {
		confirmation.OrderID = localOrderID()
	}

	if order.Kind == model.OrderKindBuy {
		price, err := c.prices.UnitPrice(ctx, order.Asset)
		if err != nil {
			logger.WithError(err).
				WithField("asset", order.Asset).
				Warn("indicative price unavailable, confirmation omits quantity estimate")
		} else {
			confirmation.UnitPrice = price
			confirmation.EstimatedQuantity = estimateQuantity(order.Amount, price)
		}
	} else {
		confirmation.EstimatedQuantity = order.Quantity
	}

	return confirmation
}

func submitRequest(order model.Order) connectors.SubmitOrderRequest {
	req := connectors.SubmitOrderRequest{
		Kind:          order.Kind,
		Asset:         order.Asset,
		TargetAsset:   order.TargetAsset,
		WalletAddress: order.WalletAddress,
	}
	if order.Kind == model.OrderKindBuy {
		req.Amount = order.Amount
	} else {
		quantity := order.Quantity
		req.Quantity = &quantity
	}
	return req
}

func failed(failure *model.SubmitFailure) Result {
	return Result{State: model.OrderStateFailed, Failure: failure}
}
