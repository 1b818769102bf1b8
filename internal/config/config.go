package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv  string
	Port     string
	Database DatabaseConfig
	Import   ImportConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	// LogQueries echoes every SQL statement; errors and slow queries
	// always log.
	LogQueries bool
}

// Embedded reports whether the zero-config embedded server is used instead
// of dialing an external one: localhost with no password configured.
func (d DatabaseConfig) Embedded() bool {
	return d.Host == "localhost" && d.Password == ""
}

// ImportConfig holds defaults for the catalogue import pipelines
type ImportConfig struct {
	// RelationPrefer decides which vehicle variant claims an ambiguous
	// external id: "first", "last" or "all".
	RelationPrefer string
	BatchSize      int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		NodeEnv: getEnv("NODE_ENV", "development"),
		Port:    getEnv("PORT", "3001"),
		Database: DatabaseConfig{
			Host:       getEnv("PG_HOST", "localhost"),
			Port:       getEnv("PG_PORT", "5432"),
			Username:   getEnv("PG_USERNAME", "postgres"),
			Password:   os.Getenv("PG_PASSWORD"),
			Database:   getEnv("PG_DATABASE", "brakecat"),
			LogQueries: getEnv("DB_LOG_QUERIES", "false") == "true",
		},
		Import: ImportConfig{
			RelationPrefer: getEnv("RELATION_PREFER", "first"),
			BatchSize:      getEnvInt("IMPORT_BATCH_SIZE", 500),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
