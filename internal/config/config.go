package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Authentication configuration
	Auth AuthConfig

	// External scoring service configuration
	Scoring ScoringConfig

	// Project archive upload configuration
	Upload UploadConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AuthConfig holds token authentication settings
type AuthConfig struct {
	// TokenTTL bounds the lifetime of login tokens. Tokens past their
	// expiry are rejected and removed on next use.
	TokenTTL time.Duration
}

// ScoringConfig holds settings for the external code scoring service
type ScoringConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// UploadConfig holds archive upload and preview settings
type UploadConfig struct {
	MaxUploadSize   int64 // in bytes
	MaxEntries      int   // max entries allowed in an uploaded archive
	MaxUncompressed int64 // max total declared uncompressed size, in bytes
	PreviewExts     []string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "club_portal"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			TokenTTL: getDurationEnv("AUTH_TOKEN_TTL", 7*24*time.Hour),
		},
		Scoring: ScoringConfig{
			Endpoint: getEnv("SCORING_ENDPOINT", "https://sozerong.pythonanywhere.com/random"),
			Timeout:  getDurationEnv("SCORING_TIMEOUT", 10*time.Second),
		},
		Upload: UploadConfig{
			MaxUploadSize:   getInt64Env("MAX_UPLOAD_SIZE", 50*1024*1024), // 50MB
			MaxEntries:      getIntEnv("ARCHIVE_MAX_ENTRIES", 4096),
			MaxUncompressed: getInt64Env("ARCHIVE_MAX_UNCOMPRESSED", 256*1024*1024), // 256MB
			PreviewExts:     getListEnv("PREVIEW_EXTENSIONS", []string{".py", ".java", ".js", ".html", ".txt"}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Scoring.Endpoint == "" {
		return fmt.Errorf("SCORING_ENDPOINT is required")
	}
	if c.Scoring.Timeout <= 0 {
		return fmt.Errorf("SCORING_TIMEOUT must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
