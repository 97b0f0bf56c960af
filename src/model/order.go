package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderKind string

const (
	OrderKindBuy     OrderKind = "buy"
	OrderKindSell    OrderKind = "sell"
	OrderKindConvert OrderKind = "convert"
)

// OrderState tracks one submission workflow. The backend is authoritative
// for persisted order records; an Order here exists only for the duration
// of a single submission.
type OrderState string

const (
	OrderStateIdle               OrderState = "idle"
	OrderStateValidatingWallet   OrderState = "validating_wallet"
	OrderStateValidatingBalance  OrderState = "validating_balance"
	OrderStateSubmitting         OrderState = "submitting"
	OrderStateReconcilingProfile OrderState = "reconciling_profile"
	OrderStateCompleted          OrderState = "completed"
	OrderStateFailed             OrderState = "failed"
	OrderStateCancelled          OrderState = "cancelled"
)

// Order is a user-submitted intent. Amount is in minor currency units and
// applies to buy orders; Quantity is the asset quantity for sell/convert.
// WalletAddress is optional: empty means the user relies on a previously
// saved address, or confirmed submission without one.
type Order struct {
	Kind          OrderKind       `json:"kind"`
	Asset         string          `json:"asset"`
	TargetAsset   string          `json:"target_asset,omitempty"` // convert only
	Amount        int64           `json:"amount,omitempty"`
	Quantity      decimal.Decimal `json:"quantity,omitempty"`
	WalletAddress string          `json:"wallet_address,omitempty"`
}

// OrderConfirmation is the structured summary shown after a successful
// submission, with enough detail to reconcile against the eventual
// order-history entry. OrderID falls back to a locally generated
// placeholder when the backend does not return one.
type OrderConfirmation struct {
	OrderID           string          `json:"order_id"`
	SubmittedAt       time.Time       `json:"submitted_at"`
	Kind              OrderKind       `json:"kind"`
	Asset             string          `json:"asset"`
	Amount            int64           `json:"amount"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	EstimatedQuantity decimal.Decimal `json:"estimated_quantity"`
}
