package pricefeed

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Quote string `envconfig:"PRICEFEED_QUOTE" default:"USDT"`
	// Scale converts exchange quote prices into the minor units the rest
	// of the client accounts in. 1 keeps prices in major units.
	Scale int64 `envconfig:"PRICEFEED_SCALE" default:"1"`
}

func GetConfig() *Config {
	config := &Config{}
	err := envconfig.Process("", config)
	if err != nil {
		panic(err)
	}
	return config
}
