package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	BankLink BankLinkConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// BankLinkConfig holds bank data provider configuration.
// EncryptionKey is a base64 fernet key used to encrypt the provider access
// token at rest. SyncSchedule is a cron expression; empty disables the job.
type BankLinkConfig struct {
	EncryptionKey string
	SyncSchedule  string
	SyncAccountID string
	BaseURL       string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/wealth_manager.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		BankLink: BankLinkConfig{
			EncryptionKey: getEnv("BANKLINK_ENCRYPTION_KEY", ""),
			SyncSchedule:  getEnv("BANKLINK_SYNC_SCHEDULE", ""),
			SyncAccountID: getEnv("BANKLINK_SYNC_ACCOUNT_ID", ""),
			BaseURL:       getEnv("BANKLINK_BASE_URL", "https://bankaccountdata.gocardless.com/api/v2"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
