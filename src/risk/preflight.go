// Package risk holds the advisory client-side preflight checks performed
// before an order submission round trip. They exist purely to avoid wasted
// requests; the backend re-validates authoritatively and these checks must
// never be treated as a security boundary.
package risk

import (
	"fmt"

	"exchangeclient/src/model"

	"github.com/shopspring/decimal"
)

// CheckBuyAmount validates a buy amount against the cached balance, both
// in minor currency units. A nil return means the preflight passed.
func CheckBuyAmount(amount, balance int64) *model.SubmitFailure {
	if amount <= 0 {
		return &model.SubmitFailure{
			Reason:          model.FailureInvalidAmount,
			Message:         "order amount must be a positive number",
			RequestedAmount: amount,
		}
	}

	if amount > balance {
		return &model.SubmitFailure{
			Reason:           model.FailureInsufficientBalance,
			Message:          fmt.Sprintf("requested %d but only %d available", amount, balance),
			RequestedAmount:  amount,
			AvailableBalance: balance,
		}
	}

	return nil
}

// CheckSellQuantity validates a sell/convert quantity against the cached
// holding for the asset. A nil return means the preflight passed.
func CheckSellQuantity(quantity, held decimal.Decimal) *model.SubmitFailure {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return &model.SubmitFailure{
			Reason:            model.FailureInvalidAmount,
			Message:           "order quantity must be a positive number",
			RequestedQuantity: quantity,
		}
	}

	if quantity.GreaterThan(held) {
		return &model.SubmitFailure{
			Reason:            model.FailureInsufficientHoldings,
			Message:           fmt.Sprintf("requested %s but only %s held", quantity, held),
			RequestedQuantity: quantity,
			HeldQuantity:      held,
		}
	}

	return nil
}
