// Package pricefeed supplies the indicative unit prices used to estimate
// order quantities. Estimates are presentation only; the backend computes
// the executed quantity.
package pricefeed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// PriceSource answers the current unit price of an asset, expressed in
// the client's minor units of the quote currency.
type PriceSource interface {
	UnitPrice(ctx context.Context, asset string) (decimal.Decimal, error)
}

// Binance reads spot tickers for indicative pricing.
type Binance struct {
	exchange goex.API
	config   *Config
}

func NewBinance() *Binance {
	apiConfig := &goex.APIConfig{
		HttpClient: http.DefaultClient,
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}
	return &Binance{
		exchange: binance.NewWithConfig(apiConfig),
		config:   GetConfig(),
	}
}

func (b *Binance) UnitPrice(ctx context.Context, asset string) (decimal.Decimal, error) {
	pair := goex.NewCurrencyPair(goex.Currency{Symbol: asset}, goex.Currency{Symbol: b.config.Quote})

	ticker, err := b.exchange.GetTicker(pair)
	if err != nil {
		logger.WithError(err).
			WithField("asset", asset).
			Warn("ticker lookup failed")
		return decimal.Zero, err
	}

	price := decimal.NewFromFloat(ticker.Last).Mul(decimal.NewFromInt(b.config.Scale))
	return price, nil
}

// Static serves fixed prices. Used in tests and offline runs.
type Static struct {
	Prices map[string]decimal.Decimal
}

func (s *Static) UnitPrice(ctx context.Context, asset string) (decimal.Decimal, error) {
	price, ok := s.Prices[asset]
	if !ok {
		return decimal.Zero, fmt.Errorf("no price for asset %s", asset)
	}
	return price, nil
}
