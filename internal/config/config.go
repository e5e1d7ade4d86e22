package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Identity provider (shared-secret JWT verification)
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Uploads
	MaxConcurrentTranscodes int64

	// Object storage
	Storage StorageConfig
}

// StorageConfig holds object-storage configuration. When Endpoint is set the
// MinIO client is used (local dev / S3-compatible providers), otherwise AWS S3.
type StorageConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UseSSL          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", ""),
		JWTAudience: getEnv("JWT_AUDIENCE", "authenticated"),
		Port:        getEnv("PORT", "3000"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		Env:         getEnv("ENV", "development"),

		MaxConcurrentTranscodes: getEnvInt64("MAX_CONCURRENT_TRANSCODES", 4),

		Storage: StorageConfig{
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Bucket:          getEnv("STORAGE_BUCKET", "listing-images"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""), // Empty = use AWS S3
			UseSSL:          getEnv("STORAGE_USE_SSL", "true") == "true",
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTIssuer == "" {
		return fmt.Errorf("JWT_ISSUER is required")
	}
	if c.MaxConcurrentTranscodes < 1 {
		return fmt.Errorf("MAX_CONCURRENT_TRANSCODES must be at least 1")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
