// Package config loads client settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"time"

	"auction-client/utils"

	"github.com/joho/godotenv"
)

// Config carries everything the client needs to talk to a backend
type Config struct {
	// BaseURL of the auction backend, without trailing slash
	BaseURL string
	// Token is the bearer credential attached to authenticated calls
	Token string
	// UserID identifies the account whose auction collection is watched
	UserID string
	// DetailInterval / CollectionInterval are the refresh cadences for the
	// single-auction and collection watchers
	DetailInterval     time.Duration
	CollectionInterval time.Duration
	// RequestTimeout bounds each individual HTTP round trip
	RequestTimeout time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win over defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Warn("config: could not read .env file", map[string]any{"error": err.Error()})
	}

	return Config{
		BaseURL:            getEnv("AUCTION_API_URL", "http://localhost:5000"),
		Token:              os.Getenv("AUCTION_API_TOKEN"),
		UserID:             os.Getenv("AUCTION_USER_ID"),
		DetailInterval:     getDuration("AUCTION_DETAIL_INTERVAL", 10*time.Second),
		CollectionInterval: getDuration("AUCTION_COLLECTION_INTERVAL", 30*time.Second),
		RequestTimeout:     getDuration("AUCTION_REQUEST_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Warn("config: invalid duration, using default", map[string]any{
			"key":   key,
			"value": v,
		})
		return fallback
	}
	return d
}
