package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, `
bot:
  token: "test-token"
webapp:
  base_url: "http://webapp:9000"
  request_timeout: 5s
storage:
  path: "/var/lib/bot/users.json"
payment:
  provider_token: "pay-token"
  price_rub: 49000
  price_stars: 120
  bonus_coins: 300
reminder:
  delay: 24h
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.Bot.Token)
	assert.Equal(t, "http://webapp:9000", cfg.Webapp.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Webapp.RequestTimeout)
	assert.Equal(t, "/var/lib/bot/users.json", cfg.Storage.Path)
	assert.Equal(t, "pay-token", cfg.Payment.ProviderToken)
	assert.Equal(t, 49000, cfg.Payment.PriceRUB)
	assert.Equal(t, 120, cfg.Payment.PriceStars)
	assert.Equal(t, int64(300), cfg.Payment.BonusCoins)
	assert.Equal(t, 24*time.Hour, cfg.Reminder.Delay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, `
bot:
  token: "test-token"
payment:
  provider_token: "pay-token"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Webapp.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Webapp.RequestTimeout)
	assert.Equal(t, "data/users.json", cfg.Storage.Path)
	assert.Equal(t, 59000, cfg.Payment.PriceRUB)
	assert.Equal(t, 150, cfg.Payment.PriceStars)
	assert.Equal(t, int64(500), cfg.Payment.BonusCoins)
	assert.Equal(t, time.Minute, cfg.Reminder.Delay)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
bot:
  token: "file-token"
payment:
  provider_token: "pay-token"
`)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("STORAGE_PATH", "env/users.json")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, "env/users.json", cfg.Storage.Path)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Bot:     BotConfig{Token: "t"},
			Webapp:  WebappConfig{BaseURL: "http://localhost:8080"},
			Payment: PaymentConfig{ProviderToken: "p"},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Bot.Token = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBotToken)

	cfg = base()
	cfg.Webapp.BaseURL = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingWebappBaseURL)

	cfg = base()
	cfg.Payment.ProviderToken = ""
	assert.ErrorIs(t, cfg.Validate(), ErrMissingProviderToken)
}
