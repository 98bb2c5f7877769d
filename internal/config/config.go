// Package config provides configuration management for the scoring
// service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds scoring service configuration
type Config struct {
	DataDir       string // Base directory for the history database (always absolute)
	Port          int
	LogLevel      string
	DevMode       bool
	RetentionDays int // History rows older than this are purged daily; 0 disables the job

	// Fraud alert email. Simulation mode (log only) when SMTPSender is
	// empty, matching how the service behaves without credentials.
	SMTPHost   string
	SMTPPort   int
	SMTPSender string
	SMTPPass   string
	AlertEmail string
}

// Load reads configuration from environment variables, with a .env file
// loaded first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("FRAUDGUARD_DATA_DIR", "./data")
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	retention, err := strconv.Atoi(getEnv("RETENTION_DAYS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_DAYS: %w", err)
	}

	return &Config{
		DataDir:       absDir,
		Port:          port,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DevMode:       getEnv("DEV_MODE", "") == "true",
		RetentionDays: retention,
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      smtpPort,
		SMTPSender:    getEnv("SMTP_SENDER", ""),
		SMTPPass:      getEnv("SMTP_PASSWORD", ""),
		AlertEmail:    getEnv("ALERT_EMAIL", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
