package controller

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateQuantity(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		price  decimal.Decimal
		want   decimal.Decimal
	}{
		{"whole units", 200_000, decimal.NewFromInt(50_000), decimal.NewFromInt(4)},
		{"fractional result", 100_000, decimal.NewFromInt(40_000), decimal.RequireFromString("2.5")},
		{"zero price yields zero", 100_000, decimal.Zero, decimal.Zero},
		{"negative price yields zero", 100_000, decimal.NewFromInt(-1), decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateQuantity(tt.amount, tt.price)
			if !got.Equal(tt.want) {
				t.Errorf("estimateQuantity(%d, %s) = %s, want %s", tt.amount, tt.price, got, tt.want)
			}
		})
	}
}

func TestLocalOrderIDPrefixAndUniqueness(t *testing.T) {
	a := localOrderID()
	b := localOrderID()

	if !strings.HasPrefix(a, "local-") {
		t.Errorf("expected local- prefix, got %s", a)
	}
	if a == b {
		t.Errorf("expected unique IDs, both were %s", a)
	}
}
