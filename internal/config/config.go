package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config keeps runtime settings for the bot.
type Config struct {
	BotToken     string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	DatabaseURL  string        `envconfig:"DATABASE_URL" default:"database/reminder.db"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"60s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error

	// DefaultUTCOffset is used for users without a stored timezone.
	// When the variable is unset it falls back to the process's local offset.
	DefaultUTCOffset *int `envconfig:"DEFAULT_UTC_OFFSET"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.PollInterval <= 0 {
		return cfg, fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if cfg.DefaultUTCOffset != nil {
		if off := *cfg.DefaultUTCOffset; off < -12 || off > 14 {
			return cfg, fmt.Errorf("DEFAULT_UTC_OFFSET %d out of range [-12, 14]", off)
		}
	}
	return cfg, nil
}

// DefaultOffsetHours resolves the fallback UTC offset for users with no
// configured timezone.
func (c Config) DefaultOffsetHours() int {
	if c.DefaultUTCOffset != nil {
		return *c.DefaultUTCOffset
	}
	_, seconds := time.Now().Zone()
	return seconds / 3600
}
