package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	DatabaseURL string

	// CodeTTL is how long invitation codes and one-time passcodes stay
	// valid before the expiry sweep removes them.
	CodeTTL time.Duration

	// PlainPasswords keeps passwords unhashed for compatibility with
	// legacy data. Off by default; new deployments get bcrypt.
	PlainPasswords bool
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://forumcore.db"),
		PlainPasswords: getEnv("PLAIN_PASSWORDS", "") == "true",
	}

	var err error
	cfg.CodeTTL, err = time.ParseDuration(getEnv("CODE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CODE_TTL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
