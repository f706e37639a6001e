// Package config centralizes process configuration, resolved from the
// environment (with .env support) through viper.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the resolved process configuration.
type Config struct {
	// SitesPath is the canonical site hierarchy document.
	SitesPath string
	// LogLevel overrides the default log level when set.
	LogLevel string
	// GeminiAPIKey authenticates the extraction analyzer.
	GeminiAPIKey string
	// GeminiModel is the model used for text analysis.
	GeminiModel string
}

// Load resolves configuration from a .env file (when present) and the
// environment.
func Load() *Config {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("SITES_PATH", "sites.yaml")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")

	return &Config{
		SitesPath:    GetString("SITES_PATH"),
		LogLevel:     GetString("LOG_LEVEL"),
		GeminiAPIKey: GetString("GOOGLE_API_KEY"),
		GeminiModel:  GetString("GEMINI_MODEL"),
	}
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}
