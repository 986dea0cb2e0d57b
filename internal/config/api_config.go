package config

import (
	"errors"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
}

func (config APIConfig) validate() error {
	if config.BaseURL == "" {
		return errors.New("missing variable: base_url")
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("base_url must be an absolute URL")
	}

	if config.MaxRequestsPerSecond < 0 {
		return errors.New("max_requests_per_second must not be negative")
	}

	if config.RequestTimeout < 0 {
		return errors.New("request_timeout must not be negative")
	}

	return nil
}

func (config APIConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"api.base_url":                "API_BASE_URL",
		"api.max_requests_per_second": "API_MAX_REQUESTS_PER_SECOND",
		"api.request_timeout":         "API_REQUEST_TIMEOUT",
	})
}
