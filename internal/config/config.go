// Package config loads runtime configuration from the environment.
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// Store kinds.
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Environment string

	// Store
	Store            string
	TableName        string
	DynamoDBEndpoint string
	AWSRegion        string

	// REST server
	ServerAddress      string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration

	// TUI client
	APIURL        string
	ClientTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, errors.ConfigurationWithCause("load "+f, err)
			}
		}
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),

		Store:            strings.ToLower(getEnv("STORE", StoreDynamoDB)),
		TableName:        getEnv("TABLE_NAME", "todos"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),
		AWSRegion:        getEnv("AWS_REGION", getEnv("AWS_DEFAULT_REGION", "us-east-1")),

		ServerAddress:      getEnv("SERVER_ADDRESS", ":8000"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		APIURL:        getEnv("API_URL", "http://localhost:8000"),
		ClientTimeout: getEnvDuration("CLIENT_TIMEOUT", 10*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreDynamoDB, StoreMemory:
	default:
		return errors.Configuration("STORE must be one of dynamodb, memory; got " + strconv.Quote(c.Store))
	}
	if strings.TrimSpace(c.TableName) == "" {
		return errors.Configuration("TABLE_NAME is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.Configuration("SHUTDOWN_TIMEOUT must be positive")
	}
	if err := validateURL("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint, false); err != nil {
		return err
	}
	return validateURL("API_URL", c.APIURL, true)
}

// validateURL accepts absolute http and https URLs that name a host.
func validateURL(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return errors.Configuration(name + " is required")
		}
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.ConfigurationWithCause(name+" is not a valid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Configuration(name + " must use http or https")
	}
	if u.Host == "" {
		return errors.Configuration(name + " must have a host")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
