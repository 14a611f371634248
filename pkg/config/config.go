package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	APIBaseURL  string
	HTTPTimeout time.Duration

	// Bearer credential for the demo binary. Empty means anonymous
	// browsing: catalog only, no favorites or orders.
	APIToken string
	APIAdmin bool
}

func Load() Config {
	// Local overrides only; missing .env is not an error.
	_ = godotenv.Load()

	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:5000/api"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		APIToken:    getEnv("API_TOKEN", ""),
		APIAdmin:    getEnvBool("API_ADMIN", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
