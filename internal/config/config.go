package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSubgraphURL is the hosted deployment of the agent registry
// subgraph. Override with SUBGRAPH_URL to point at another deployment.
const DefaultSubgraphURL = "https://api.studio.thegraph.com/query/8004/trustless-agents/version/latest"

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// SubgraphURL is the sole upstream data source. It is injected into
	// the gateway at construction so tests can swap in a mock endpoint.
	SubgraphURL string

	// SubgraphTimeout bounds each upstream request. There is no retry;
	// a slow upstream fails the page render.
	SubgraphTimeout time.Duration
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		SubgraphURL:     getEnv("SUBGRAPH_URL", DefaultSubgraphURL),
		SubgraphTimeout: time.Duration(getEnvInt("SUBGRAPH_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
