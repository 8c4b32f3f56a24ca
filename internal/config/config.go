package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. Everything is read once at
// process start; there is no reload path.
type Config struct {
	Port        string
	Environment string

	// OpenRouter upstream
	OpenRouterAPIKey  string
	OpenRouterBaseURL string

	// Session lifecycle
	SessionTimeout time.Duration

	// Shared secret that unlocks every gated tab
	UnlockPassword string

	// Comma-separated CORS origins
	AllowedOrigins string

	// Optional YAML catalog override (models + tabs)
	CatalogPath string
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),

		SessionTimeout: time.Duration(getIntEnv("SESSION_TIMEOUT_MS", 3600000)) * time.Millisecond,

		UnlockPassword: getEnv("UNLOCK_PASSWORD", "NeulandKI"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),

		CatalogPath: getEnv("CATALOG_PATH", ""),
	}
}

// EffectiveDefaultModel returns the catalog's default model, or "" when no
// upstream credential is configured. New conversations then carry no model,
// signalling that turns cannot be served yet.
func (c *Config) EffectiveDefaultModel(catalog *Catalog) string {
	if c.OpenRouterAPIKey == "" {
		return ""
	}
	return catalog.DefaultModel
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
