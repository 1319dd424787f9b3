package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerHost      = "0.0.0.0"
	defaultServerPort      = "8080"
	defaultDataSource      = "recipe-data.csv"
	defaultRateLimit       = 60
	defaultRateLimitWindow = time.Minute
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Dataset source: a local CSV path or s3://bucket/key
	DataSource string
	AWSRegion  string

	// Redis configuration, used for rate limiting when reachable
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Update rate limiting
	RateLimit       int
	RateLimitWindow time.Duration

	CORSAllowedOrigins []string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		if err := loadEnvConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		// A missing .env file is fine, the environment may already be set
		if err := godotenv.Load(); err == nil {
			log.Printf("Loaded .env file")
		}
		if err := loadEnvConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether any Redis connection settings were provided
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// loadEnvConfig reads every setting from environment variables
func loadEnvConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", defaultServerPort)
	cfg.ServerHost = getEnv("SERVER_HOST", defaultServerHost)
	cfg.DataSource = getEnv("DATA_SOURCE", defaultDataSource)
	cfg.AWSRegion = os.Getenv("AWS_REGION")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	limit, err := getEnvInt("RATE_LIMIT", defaultRateLimit)
	if err != nil {
		return err
	}
	cfg.RateLimit = limit

	window, err := getEnvDuration("RATE_LIMIT_WINDOW", defaultRateLimitWindow)
	if err != nil {
		return err
	}
	cfg.RateLimitWindow = window

	return nil
}

// loadProdConfig loads configuration for production, with Redis credentials from Docker secrets
func loadProdConfig(cfg *Config) error {
	if err := loadEnvConfig(cfg); err != nil {
		return err
	}

	if password := readSecret("redis_password"); password != "" {
		cfg.RedisPassword = password
	}
	if url := readSecret("redis_url"); url != "" {
		cfg.RedisURL = url
	}

	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
