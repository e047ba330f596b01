package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"bookshelf-api/internal/repositories"
)

// Config holds all configuration for the application
type Config struct {
	Environment  string
	Port         string
	Log          LogConfig
	Storage      StorageConfig
	Database     DatabaseConfig
	RateLimit    RateLimitConfig
	MaxBodyBytes int64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// StorageConfig selects the book store
type StorageConfig struct {
	Driver string // "memory" or "sqlite"
}

// RateLimitConfig holds the global request rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("STORAGE_DRIVER", repositories.DriverMemory)
	viper.SetDefault("DB_PATH", "./data/books.db")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 1)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 1)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("RATE_LIMIT_RPS", 100)
	viper.SetDefault("RATE_LIMIT_BURST", 200)
	viper.SetDefault("MAX_BODY_BYTES", 1<<20)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Log: LogConfig{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: strings.ToLower(viper.GetString("LOG_FORMAT")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		},
		Database: DatabaseConfig{
			Path:            viper.GetString("DB_PATH"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     viper.GetBool("DB_AUTO_MIGRATE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		MaxBodyBytes: viper.GetInt64("MAX_BODY_BYTES"),
	}

	if config.Log.Format == "" {
		config.Log.Format = "text"
		if config.IsProduction() {
			config.Log.Format = "json"
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535, got %q", c.Port)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format must be json or text, got %q", c.Log.Format)
	}

	switch c.Storage.Driver {
	case repositories.DriverMemory:
	case repositories.DriverSQLite:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("storage driver must be %s or %s, got %q",
			repositories.DriverMemory, repositories.DriverSQLite, c.Storage.Driver)
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}

	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1")
	}

	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("max body bytes must be positive")
	}

	return nil
}

// IsProduction reports whether the production environment is selected
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
