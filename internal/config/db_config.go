package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString    string `mapstructure:"connection_string"`
	StateExpirationDays int    `mapstructure:"state_expiration_days"`
}

func (config DBConfig) validate() error {
	var errs []error

	if config.ConnectionString == "" {
		errs = append(errs, errors.New("missing variable: db connection string"))
	}

	if config.StateExpirationDays <= 0 {
		errs = append(errs, fmt.Errorf("state_expiration_days must be positive, got %d", config.StateExpirationDays))
	}

	return errors.Join(errs...)
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.connection_string":     "DB_CONNECTION_STRING",
		"db.state_expiration_days": "STATE_EXPIRATION_DAYS",
	})
}
