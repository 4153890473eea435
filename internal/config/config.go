package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/edupanel/student-portal/internal/validator"
)

// DatabaseConfig holds the relational store connection settings.
type DatabaseConfig struct {
	Host     string `validate:"required"`
	User     string `validate:"required"`
	Password string
	Name     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
}

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Environment string `validate:"oneof=development production"`
	Port        string `validate:"required"`
	LogLevel    slog.Level

	Database DatabaseConfig

	// RedisURL points the session store at Redis.
	RedisURL string `validate:"required"`

	// SecretKey signs session cookies.
	SecretKey string `validate:"required"`
}

// LoadConfig reads configuration from the environment, after loading a .env
// file when one is present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "student_portal"),
			Port:     dbPort,
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SecretKey: getEnv("SECRET_KEY", "dev_secret_key_123"),
	}

	if err := validator.New().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
