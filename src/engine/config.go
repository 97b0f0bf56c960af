package engine

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ProfilePollInterval      time.Duration `envconfig:"PROFILE_POLL_INTERVAL" default:"30s"`
	NotificationPollInterval time.Duration `envconfig:"NOTIFICATION_POLL_INTERVAL" default:"10s"`
	NotificationLimit        int           `envconfig:"NOTIFICATION_LIMIT" default:"20"`
	PanelLimit               int           `envconfig:"NOTIFICATION_PANEL_LIMIT" default:"50"`
	ToastTTL                 time.Duration `envconfig:"TOAST_TTL" default:"5s"`
	ToastSweepInterval       time.Duration `envconfig:"TOAST_SWEEP_INTERVAL" default:"1s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
