// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Webapp   WebappConfig   `mapstructure:"webapp"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
}

// WebappConfig holds the companion webapp connection configuration.
// The webapp owns lesson content and quiz scoring; the bot only
// queries its completion-check endpoint.
type WebappConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// StorageConfig holds the user table storage configuration.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// PaymentConfig holds payment provider configuration.
type PaymentConfig struct {
	ProviderToken string `mapstructure:"provider_token"`
	PriceRUB      int    `mapstructure:"price_rub"`   // minor units (kopecks)
	PriceStars    int    `mapstructure:"price_stars"` // Telegram Stars (XTR)
	BonusCoins    int64  `mapstructure:"bonus_coins"`
}

// ReminderConfig holds the deferred-reminder configuration.
type ReminderConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// Validation errors for required configuration.
var (
	ErrMissingBotToken      = errors.New("bot token is required (set BOT_TOKEN or bot.token)")
	ErrMissingWebappBaseURL = errors.New("webapp base URL is required (set WEBAPP_BASE_URL or webapp.base_url)")
	ErrMissingProviderToken = errors.New("payment provider token is required (set PAYMENT_PROVIDER_TOKEN or payment.provider_token)")
)

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the given directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_TOKEN, WEBAPP_BASE_URL, STORAGE_PATH.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - env vars can provide all config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every required credential is present. A missing
// credential prevents startup; there is no degraded mode.
func (c *Config) Validate() error {
	if c.Bot.Token == "" {
		return ErrMissingBotToken
	}
	if c.Webapp.BaseURL == "" {
		return ErrMissingWebappBaseURL
	}
	if c.Payment.ProviderToken == "" {
		return ErrMissingProviderToken
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("webapp.base_url", "http://localhost:8080")
	v.SetDefault("webapp.request_timeout", "10s")
	v.SetDefault("storage.path", "data/users.json")
	v.SetDefault("payment.price_rub", 59000)
	v.SetDefault("payment.price_stars", 150)
	v.SetDefault("payment.bonus_coins", 500)
	// Demo cadence: the "tomorrow" reminder fires after a minute.
	v.SetDefault("reminder.delay", "1m")
}
