package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	DefaultPeriodLength = 30
)

// Config holds the service configuration
type Config struct {
	ServerPort   string
	StoreDriver  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	PeriodLength int
	KafkaBrokers []string
	KafkaTopic   string

	// loadErr holds values Load could not parse; Validate reports it
	loadErr error
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first if present; variables already set in
// the environment win.
func Load() *Config {
	_ = godotenv.Load()

	periodLength, err := getEnvInt("PERIOD_LENGTH_DAYS", DefaultPeriodLength)

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		StoreDriver:  getEnv("STORE_DRIVER", StoreMemory),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "password"),
		DBName:       getEnv("DB_NAME", "line_of_credit"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		PeriodLength: periodLength,
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "line-of-credit.events"),
		loadErr:      err,
	}
}

// Validate checks the values Load cannot fix up on its own.
func (c *Config) Validate() error {
	if c.loadErr != nil {
		return c.loadErr
	}
	if c.StoreDriver != StoreMemory && c.StoreDriver != StorePostgres {
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.PeriodLength <= 0 {
		return fmt.Errorf("PERIOD_LENGTH_DAYS must be positive, got %d", c.PeriodLength)
	}
	return nil
}

// GetDBConnectionString returns the lib/pq connection string
func (c *Config) GetDBConnectionString() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
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
		return fallback, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return n, nil
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
