package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables. The
// core packages never read the environment themselves; everything is passed
// in at construction.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CartTTL         time.Duration
	SweepInterval   time.Duration
	MinQuantity     int
	MaxQuantity     int
	TaxRate         float64
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: envSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CartTTL:         envMinutes("CART_TTL_MINUTES", 30*time.Minute),
		SweepInterval:   envSeconds("SWEEP_INTERVAL_SECONDS", 60*time.Second),
		MinQuantity:     envInt("MIN_QUANTITY", 1),
		MaxQuantity:     envInt("MAX_QUANTITY", 99),
		TaxRate:         envFloat("TAX_RATE", 0.09),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envMinutes(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return def
}
