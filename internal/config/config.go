package config

import (
	"os"
	"strconv"

	"datalens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Journal JournalConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// UploadConfig holds file upload limits
type UploadConfig struct {
	MaxUploadMB int64
}

// MaxUploadBytes returns the upload limit in bytes.
func (u UploadConfig) MaxUploadBytes() int64 {
	return u.MaxUploadMB * 1024 * 1024
}

// JournalConfig holds the optional upload-journal database settings.
// The journal is disabled when URL is empty.
type JournalConfig struct {
	URL string
}

// Enabled reports whether the upload journal should be wired in.
func (j JournalConfig) Enabled() bool {
	return j.URL != ""
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxUploadMB: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 100)),
		},
		Journal: JournalConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if config.Upload.MaxUploadMB <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	return config, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
