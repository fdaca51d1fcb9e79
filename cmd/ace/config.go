package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the assistant configuration loaded from environment
// variables.
type Config struct {
	Provider string // anthropic, openai, google
	Model    string // provider model override, empty for the default
	LogLevel string // debug, info, warn, error

	DBPath    string
	MaxRounds int
	Resume    bool // continue the most recent conversation instead of starting fresh

	AnthropicKey string
	OpenAIKey    string
	GoogleKey    string
	WeatherKey   string
}

// LoadConfig loads configuration from environment variables. A .env
// file is loaded first if present.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	googleKey := os.Getenv("GOOGLE_API_KEY")
	if googleKey == "" {
		googleKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg := &Config{
		Provider:     getEnvOrDefault("ACE_PROVIDER", "google"),
		Model:        os.Getenv("ACE_MODEL"),
		LogLevel:     getEnvOrDefault("ACE_LOG_LEVEL", "warn"),
		DBPath:       getEnvOrDefault("ACE_DB", "data/ace.db"),
		MaxRounds:    getEnvIntOrDefault("ACE_MAX_ROUNDS", 5),
		Resume:       getEnvBoolOrDefault("ACE_RESUME", false),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GoogleKey:    googleKey,
		WeatherKey:   os.Getenv("WEATHER_API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
	case "openai":
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	case "google":
		if c.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY or GEMINI_API_KEY is required for google provider")
		}
	default:
		return fmt.Errorf("unknown provider: %s (must be anthropic, openai, or google)", c.Provider)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
