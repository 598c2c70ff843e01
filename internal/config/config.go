package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"listingscope/internal/errors"
)

// Source kinds accepted by DATA_SOURCE
const (
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceAPI      = "api"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Server    ServerConfig
	Profiling ProfilingConfig
}

// DataConfig describes where the listings table is read from
type DataConfig struct {
	Source      string
	File        string
	Sheet       string
	Table       string
	DatabaseURL string
	URL         string
	JSONPath    string
	PreviewRows int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// ProfilingConfig holds the ops (health + pprof) server settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:      *loadDataConfig(),
		Server:    *loadServerConfig(),
		Profiling: *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		Source:      strings.ToLower(getEnvOrDefault("DATA_SOURCE", SourceFile)),
		File:        getEnvOrDefault("DATA_FILE", "./data/Airbnb_Cleaned.csv"),
		Sheet:       getEnvOrDefault("DATA_SHEET", ""),
		Table:       getEnvOrDefault("DATA_TABLE", "listings"),
		DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		URL:         getEnvOrDefault("DATA_URL", ""),
		JSONPath:    getEnvOrDefault("DATA_JSON_PATH", ""),
		PreviewRows: getEnvIntOrDefault("PREVIEW_ROWS", 100),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceFile, SourceSQLite:
		if config.Data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required for file and sqlite sources")
		}
	case SourcePostgres:
		if config.Data.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres source")
		}
	case SourceAPI:
		if config.Data.URL == "" {
			return errors.ConfigInvalid("DATA_URL is required for the api source")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be one of file, sqlite, postgres, api")
	}
	if (config.Data.Source == SourceSQLite || config.Data.Source == SourcePostgres) && config.Data.Table == "" {
		return errors.ConfigInvalid("DATA_TABLE is required for sql sources")
	}
	if config.Data.PreviewRows < 0 {
		return errors.ConfigInvalid("PREVIEW_ROWS must not be negative")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
