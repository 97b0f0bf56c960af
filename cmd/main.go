package main

import (
	"fmt"
	"os"
	"strings"

	"exchangeclient/cmd/client"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var Version string

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on process environment")
	}
	SetupLogger()

	app := cli.NewApp()
	app.Name = "Exchange Client CMD"
	app.Usage = "The exchange client command line interface"

	app.Commands = []cli.Command{
		clientCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var clientCMD = cli.Command{
	Name:        "client",
	Usage:       "run the exchange client",
	Action:      clientAction,
	ArgsUsage:   "",
	Flags:       []cli.Flag{},
	Description: `Run the exchange client session and its local UI surface`,
}

func clientAction(_ *cli.Context) error {

	logger.Info("Starting exchange client CMD")
	logger.WithField("cmd", "client")

	c := &client.Client{}
	if err := c.Start(); err != nil {
		logger.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
