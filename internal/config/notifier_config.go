package config

import (
	"errors"

	"github.com/spf13/viper"
)

// NotifierConfig configures the Telegram admin notifier. An empty token disables it.
type NotifierConfig struct {
	TelegramToken string `mapstructure:"telegram_token"`
	AdminChatID   int64  `mapstructure:"admin_chat_id"`
}

func (config NotifierConfig) Enabled() bool {
	return config.TelegramToken != ""
}

func (config NotifierConfig) validate() error {
	if config.Enabled() && config.AdminChatID == 0 {
		return errors.New("admin_chat_id is required when telegram_token is set")
	}
	return nil
}

func (config NotifierConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"notifier.telegram_token": "TG_TOKEN",
		"notifier.admin_chat_id":  "TG_ADMIN_CHAT_ID",
	})
}
