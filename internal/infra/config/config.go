package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLogLevel           = "info"
	defaultEnvironment        = "development"
	defaultSessionTTL         = 30 * time.Minute
	defaultSessionCapacity    = 1000
	defaultCronRitualReminder = "0 9 * * *" // 09:00 daily
	defaultCronAgeRefresh     = "5 0 1 1 *" // 00:05 on 1 January
)

// AppConfig holds all configuration for the bot.
type AppConfig struct {
	TelegramToken          string
	DatabaseURL            string
	LogLevel               string
	Environment            string
	SessionTTL             time.Duration
	SessionCapacity        int
	CronSpecRitualReminder string
	CronSpecAgeRefresh     string
	Location               *time.Location
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL, err = LoadDatabaseURL()
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", defaultEnvironment))

	cfg.SessionTTL = defaultSessionTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		cfg.SessionTTL, err = time.ParseDuration(v)
		if err != nil || cfg.SessionTTL <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: must be a positive duration such as 30m", v)
		}
	}

	cfg.SessionCapacity = defaultSessionCapacity
	if v := os.Getenv("SESSION_CAPACITY"); v != "" {
		cfg.SessionCapacity, err = strconv.Atoi(v)
		if err != nil || cfg.SessionCapacity <= 0 {
			return nil, fmt.Errorf("invalid SESSION_CAPACITY %q: must be a positive integer", v)
		}
	}

	cfg.CronSpecRitualReminder = getEnv("CRON_SPEC_RITUAL_REMINDER", defaultCronRitualReminder)
	cfg.CronSpecAgeRefresh = getEnv("CRON_SPEC_AGE_REFRESH", defaultCronAgeRefresh)

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return cfg, nil
}

// LoadDatabaseURL reads only DATABASE_URL, for tools that do not talk to
// Telegram.
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", fmt.Errorf("DATABASE_URL is not set")
	}
	return url, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
