package controller

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// localOrderID generates the placeholder confirmation ID used when the
// backend response carries no order_id. The local- prefix makes the
// placeholder recognizable when reconciling against order history later.
func localOrderID() string {
	id := "local-" + uuid.NewString()
	logger.WithField("order_id", id).Debug("backend returned no order id, generated local placeholder")
	return id
}

// estimateQuantity converts a buy amount in minor currency units into an
// indicative asset quantity at the given unit price. Display only; the
// backend computes the executed quantity.
func estimateQuantity(amount int64, price decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.NewFromInt(amount).Div(price)
}
