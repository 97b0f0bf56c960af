// Package client boots the exchange client session: credentials, the
// API connector, the engine and the local UI surface.
package client

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"exchangeclient/src/auth"
	"exchangeclient/src/connectors"
	"exchangeclient/src/controller"
	"exchangeclient/src/engine"
	"exchangeclient/src/pricefeed"
	"exchangeclient/src/server"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Client struct{}

func (t *Client) Start() error {
	config := GetConfig()
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	tokens := auth.FromEnv()
	api := connectors.NewClient("", tokens)

	eng := engine.New(api, newPriceSource(config), headlessPrompter{})
	defer eng.Stop()

	if err := eng.Login(ctx); err != nil {
		logrus.WithError(err).Warn("initial login failed, surfaces will report signed out")
	} else {
		defer eng.Logout()
	}

	server.StartServer(eng, "")
	return nil
}

func newPriceSource(config Config) pricefeed.PriceSource {
	if config.PriceSource == "static" {
		return &pricefeed.Static{Prices: map[string]decimal.Decimal{}}
	}
	return pricefeed.NewBinance()
}

// headlessPrompter answers the unverified-wallet prompt when no
// interactive surface is attached. Cancelling is the only safe answer
// without a user present.
type headlessPrompter struct{}

func (headlessPrompter) ConfirmUnverified(asset string) controller.PromptDecision {
	logrus.WithField("asset", asset).
		Warn("no verified wallet address and no interactive surface, cancelling submission")
	return controller.PromptCancel
}
