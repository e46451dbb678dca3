package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvironmentProduction = "production"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Security SecurityConfig
	Cache    CacheConfig
	Events   EventsConfig
	Tracing  TracingConfig
	Import   ImportConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LogLevel           string
	CorsAllowedOrigins string
	ShutdownTimeout    time.Duration
}

type DatabaseConfig struct {
	Connection      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type SecurityConfig struct {
	// APISecretKey gates mutating endpoints. Empty disables the check outside production.
	APISecretKey string
}

type CacheConfig struct {
	RedisURL   string
	FiltersTTL time.Duration
}

type EventsConfig struct {
	NatsURL      string
	CreatedTopic string
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

type ImportConfig struct {
	FilePath       string
	LogFilePath    string
	MaxDiagnostics int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("APP_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			ShutdownTimeout:    getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Connection:      getEnv("DB_CONNECTION_STRING", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Security: SecurityConfig{
			APISecretKey: getEnv("API_SECRET_KEY", ""),
		},
		Cache: CacheConfig{
			RedisURL:   getEnv("REDIS_URL", ""),
			FiltersTTL: getEnvAsDuration("FILTERS_CACHE_TTL", 5*time.Minute),
		},
		Events: EventsConfig{
			NatsURL:      getEnv("NATS_URL", ""),
			CreatedTopic: getEnv("USE_CASE_CREATED_TOPIC", "USE_CASE_CREATED"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "usecase-catalog-backend"),
		},
		Import: ImportConfig{
			FilePath:       getEnv("IMPORT_FILE_PATH", "data/use_cases.csv"),
			LogFilePath:    getEnv("IMPORT_LOG_FILE_PATH", "logs/import.log"),
			MaxDiagnostics: getEnvAsInt("IMPORT_MAX_DIAGNOSTICS", 50),
		},
	}
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, EnvironmentProduction)
}

// Validate checks the settings the HTTP server depends on and reports every
// problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Connection == "" {
		errs = append(errs, "DB_CONNECTION_STRING is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		errs = append(errs, "DB_MAX_OPEN_CONNS must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "DB_MAX_IDLE_CONNS must be non-negative")
	}

	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Sprintf("APP_PORT (%q) must be 1-65535", c.App.Port))
	}
	if c.App.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.App.LogLevel)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.App.LogLevel))
	}

	if c.IsProduction() && c.Security.APISecretKey == "" {
		errs = append(errs, "API_SECRET_KEY is required when APP_ENV=production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
