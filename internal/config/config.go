package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pratikkkbhere/DataPilot/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Undo   UndoConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UploadConfig holds upload boundary limits
type UploadConfig struct {
	MaxFileSize int64 // bytes
	TempDir     string
}

// UndoConfig holds the undo window settings
type UndoConfig struct {
	Window time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 50*1024*1024),
			TempDir:     getEnvOrDefault("UPLOAD_TEMP_DIR", os.TempDir()),
		},
		Undo: UndoConfig{
			Window: getEnvDurationOrDefault("UNDO_WINDOW", 5*time.Second),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxFileSize <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	if config.Undo.Window <= 0 {
		return errors.ConfigInvalid("UNDO_WINDOW must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
