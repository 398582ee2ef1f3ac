package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIPort  string
	LogLevel string

	// StoreDriver selects the record store backend: "sqlite" for one table
	// per entity, "jsonfile" for one JSON array file per entity.
	StoreDriver string
	SQLitePath  string
	DataDir     string
	AssetsDir   string

	// SweepOnRead runs the offer sweep before every offer read path;
	// SweepInterval drives the periodic comment sweep.
	SweepOnRead   bool
	SweepInterval time.Duration

	// SearchDelay is the simulated latency before a submitted tag search
	// actually runs.
	SearchDelay time.Duration

	APIRateLimitRPS   int
	APIRateLimitBurst int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		StoreDriver: mustEnv("STORE_DRIVER", "sqlite"),
		SQLitePath:  mustEnv("SQLITE_PATH", "./data/offerdesk.db"),
		DataDir:     mustEnv("DATA_DIR", "./data"),
		AssetsDir:   mustEnv("ASSETS_DIR", "./data/assets"),

		SweepOnRead:   mustEnvBool("SWEEP_ON_READ", true),
		SweepInterval: mustEnvDuration("SWEEP_INTERVAL", 60*time.Second),

		SearchDelay: mustEnvDuration("SEARCH_DELAY", 60*time.Second),

		APIRateLimitRPS:   mustEnvInt("API_RATE_LIMIT_RPS", 0),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 20),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
