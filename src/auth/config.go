package auth

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIToken          string `envconfig:"EXCHANGE_API_TOKEN"`
	EncryptedAPIToken string `envconfig:"EXCHANGE_API_TOKEN_ENC"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
