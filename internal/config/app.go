package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds process-level settings
type AppConfig struct {
	DatabasePath string
	CacheDir     string
	LogLevel     string
	LogPretty    bool
	Currency     string
	Port         int
	Identity     string
}

// LoadAppConfig reads settings from the environment, after loading .env files if present
func LoadAppConfig(envFiles ...string) (*AppConfig, error) {
	// Missing .env files are fine; the environment still applies.
	_ = godotenv.Load(envFiles...)

	cfg := &AppConfig{
		DatabasePath: getEnv("DIGNITY_DB_PATH", "./data/dignity.db"),
		CacheDir:     getEnv("DIGNITY_CACHE_DIR", "./data/cache"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvAsBool("LOG_PRETTY", false),
		Currency:     getEnv("DIGNITY_CURRENCY", "INR"),
		Port:         getEnvAsInt("DIGNITY_PORT", 8080),
		Identity:     getEnv("DIGNITY_IDENTITY", "default"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if required configuration is present
func (c *AppConfig) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DIGNITY_DB_PATH is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("DIGNITY_PORT must be a valid port, got %d", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
