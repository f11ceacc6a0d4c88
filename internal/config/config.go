package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NewRelic  NewRelicConfig
	Financing FinancingConfig
	Checkout  CheckoutConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// FinancingConfig holds the monthly-financing provider's credentials and
// protocol parameters. APIKey and SigningSecret must never be logged.
type FinancingConfig struct {
	APIKey        string
	SigningSecret string
	Endpoint      string
	Currency      string
	MinimumAmount float64
	Country       string // default address country when omitted
	CallbackBase  string // base URL for success/failure callback URLs
	Timeout       time.Duration
}

// Configured reports whether the provider credentials are present.
func (c FinancingConfig) Configured() bool {
	return c.APIKey != "" && c.SigningSecret != "" && c.Endpoint != ""
}

// CheckoutConfig holds checkout pipeline settings.
type CheckoutConfig struct {
	MaxVehicleAge int           // years; older vehicles are ineligible
	PendingMaxAge time.Duration // pending transactions older than this expire
	SweepInterval time.Duration // how often the expiry sweeper runs
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "warranty"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "warranty-checkout"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Financing: FinancingConfig{
			APIKey:        getEnv("FINANCING_API_KEY", ""),
			SigningSecret: getEnv("FINANCING_SIGNING_SECRET", ""),
			Endpoint:      getEnv("FINANCING_ENDPOINT", ""),
			Currency:      getEnv("FINANCING_CURRENCY", "GBP"),
			MinimumAmount: getFloatEnv("FINANCING_MINIMUM_AMOUNT", 100.00),
			Country:       getEnv("FINANCING_DEFAULT_COUNTRY", "UK"),
			CallbackBase:  getEnv("FINANCING_CALLBACK_BASE", "http://localhost:8080"),
			Timeout:       getDurationEnv("FINANCING_TIMEOUT", 15*time.Second),
		},
		Checkout: CheckoutConfig{
			MaxVehicleAge: getIntEnv("CHECKOUT_MAX_VEHICLE_AGE", 15),
			PendingMaxAge: getDurationEnv("CHECKOUT_PENDING_MAX_AGE", 24*time.Hour),
			SweepInterval: getDurationEnv("CHECKOUT_SWEEP_INTERVAL", time.Hour),
		},
	}
}

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

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
