package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeRelease Mode = "release"
	ModeDebug   Mode = "debug"
)

type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	Mode          Mode   `mapstructure:"mode"`
	SessionSecret string `mapstructure:"session_secret"`
	// SecureCookies marks the browser cookie HTTPS-only. Enable it when served behind TLS.
	SecureCookies bool   `mapstructure:"secure_cookies"`
}

func (config ServerConfig) IsRelease() bool {
	return config.Mode == ModeRelease
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}

	if config.Mode != ModeRelease && config.Mode != ModeDebug {
		errs = append(errs, fmt.Errorf("invalid mode: %q", config.Mode))
	}

	if len(config.SessionSecret) < 32 {
		errs = append(errs, errors.New("session_secret must be at least 32 characters"))
	}

	return errors.Join(errs...)
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.port":           "PORT",
		"server.mode":           "MODE",
		"server.session_secret": "SESSION_SECRET",
		"server.secure_cookies": "SECURE_COOKIES",
	})
}
