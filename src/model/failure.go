package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FailureReason classifies a terminal failure of the order workflow.
type FailureReason string

const (
	FailureUnauthenticated      FailureReason = "unauthenticated"
	FailureInvalidAmount        FailureReason = "invalid_amount"
	FailureInsufficientBalance  FailureReason = "insufficient_balance"
	FailureInsufficientHoldings FailureReason = "insufficient_holdings"
	FailureServerRejected       FailureReason = "server_rejected"
	FailureNetworkError         FailureReason = "network_error"
	FailureUnknown              FailureReason = "unknown"
)

// SubmitFailure carries everything the user-facing message needs: the
// reason, the server's verbatim message where one exists, and the concrete
// numbers involved in advisory preflight failures.
type SubmitFailure struct {
	Reason  FailureReason
	Message string

	// Populated for balance failures (minor currency units).
	RequestedAmount  int64
	AvailableBalance int64

	// Populated for holdings failures.
	RequestedQuantity decimal.Decimal
	HeldQuantity      decimal.Decimal
}

func (f *SubmitFailure) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("%s: %s", f.Reason, f.Message)
	}
	return string(f.Reason)
}
