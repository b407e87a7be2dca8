package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Policy      attendance.PolicyConfig
	Storage     StorageConfig
	ResultStore ResultStoreConfig
	Database    DatabaseConfig
	Oracle      OracleConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

type StorageConfig struct {
	Type     string
	BasePath string
}

type ResultStoreConfig struct {
	Backend string // "memory" or "postgres"
	TTL     time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type OracleConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine; plain env vars still apply.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Reconciliation policy defaults; every field is overridable per request.
	policy := attendance.DefaultPolicy()
	policy.AM.Start = getEnv("AM_SHIFT_START", policy.AM.Start)
	policy.AM.End = getEnv("AM_SHIFT_END", policy.AM.End)
	policy.PM.Start = getEnv("PM_SHIFT_START", policy.PM.Start)
	policy.PM.End = getEnv("PM_SHIFT_END", policy.PM.End)
	policy.Timezone = getEnv("TIMEZONE", policy.Timezone)

	tardyMinutes, err := strconv.Atoi(getEnv("TARDY_MINUTES", strconv.Itoa(policy.TardyMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid TARDY_MINUTES: %w", err)
	}
	policy.TardyMinutes = tardyMinutes

	earlyMinutes, err := strconv.Atoi(getEnv("EARLY_MINUTES", strconv.Itoa(policy.EarlyMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_MINUTES: %w", err)
	}
	policy.EarlyMinutes = earlyMinutes
	config.Policy = policy

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
	}

	// Result store configuration
	resultTTL, err := time.ParseDuration(getEnv("RESULT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESULT_TTL: %w", err)
	}
	config.ResultStore = ResultStoreConfig{
		Backend: getEnv("RESULT_STORE", "memory"),
		TTL:     resultTTL,
	}

	// Database configuration (only required for the postgres result store)
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Oracle configuration (optional assist service)
	oracleTimeout, err := time.ParseDuration(getEnv("ORACLE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORACLE_TIMEOUT: %w", err)
	}
	config.Oracle = OracleConfig{
		URL:     getEnv("ORACLE_URL", ""),
		APIKey:  getEnv("ORACLE_API_KEY", ""),
		Timeout: oracleTimeout,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := time.Parse("15:04", c.Policy.AM.Start); err != nil {
		return fmt.Errorf("AM_SHIFT_START must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Policy.AM.End); err != nil {
		return fmt.Errorf("AM_SHIFT_END must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Policy.PM.Start); err != nil {
		return fmt.Errorf("PM_SHIFT_START must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Policy.PM.End); err != nil {
		return fmt.Errorf("PM_SHIFT_END must be HH:MM: %w", err)
	}
	if _, err := time.LoadLocation(c.Policy.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Policy.Timezone, err)
	}
	if c.Policy.TardyMinutes < 0 || c.Policy.EarlyMinutes < 0 {
		return fmt.Errorf("TARDY_MINUTES and EARLY_MINUTES must not be negative")
	}

	switch c.ResultStore.Backend {
	case "memory":
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when RESULT_STORE is postgres")
		}
	default:
		return fmt.Errorf("unsupported RESULT_STORE: %s", c.ResultStore.Backend)
	}

	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
