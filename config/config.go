// Package config loads the service configuration from environment variables.
// Required variables that are missing and values that fail to parse are
// collected and reported together, so a misconfigured deployment fails once
// with the full list instead of one variable at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/messagely-go/apperror"
)

// DatabaseConfig represents configuration for the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// DSN returns a postgres:// URL for the database.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName,
	)
}

// AuthConfig holds the process-wide authentication settings. They are read
// once at startup and never change while the process runs.
type AuthConfig struct {
	SecretKey       string // HMAC key for signing session tokens
	WorkFactor      int    // bcrypt cost
	HashConcurrency int    // max concurrent bcrypt operations
}

// RedisConfig configures the optional login throttle. An empty Addr disables it.
type RedisConfig struct {
	Addr        string
	Password    string
	MaxAttempts int
	Window      time.Duration
}

// Enabled reports whether a Redis address was configured.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB             *DatabaseConfig
	Auth           *AuthConfig
	Redis          *RedisConfig
	Server         *ServerConfig
	LogLevel       string
	MigrateOnStart bool
}

func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampInt keeps v within [lo, hi], recording a note when it had to move.
func clampInt(v, lo, hi int, varName string, errors *[]string) int {
	if v < lo {
		*errors = append(*errors, fmt.Sprintf("%s (%d) is less than minimum %d", varName, v, lo))
		return lo
	}
	if v > hi {
		*errors = append(*errors, fmt.Sprintf("%s (%d) is greater than maximum %d", varName, v, hi))
		return hi
	}
	return v
}

// LoadConfig creates an AppConfig from the environment, returning a single
// aggregated apperror ConfigError if any variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	dbConfig := &DatabaseConfig{
		User:     getRequiredEnv("DB_USER", &errors),
		Password: getRequiredEnv("DB_PASSWORD", &errors),
		DBName:   getRequiredEnv("DB_NAME", &errors),
		Host:     getOptionalEnv("DB_HOST", "localhost"),
		Port:     getOptionalEnvInt("DB_PORT", 5432, &errors),
	}
	dbConfig.MaxSize = clampInt(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), 1, 100, "DB_POOL_SIZE", &errors)

	authConfig := &AuthConfig{
		SecretKey:       getRequiredEnv("SECRET_KEY", &errors),
		WorkFactor:      clampInt(getOptionalEnvInt("BCRYPT_WORK_FACTOR", 12, &errors), bcrypt.MinCost, bcrypt.MaxCost, "BCRYPT_WORK_FACTOR", &errors),
		HashConcurrency: clampInt(getOptionalEnvInt("HASH_CONCURRENCY", 4, &errors), 1, 256, "HASH_CONCURRENCY", &errors),
	}

	redisConfig := &RedisConfig{
		Addr:        getOptionalEnv("REDIS_ADDR", ""),
		Password:    getOptionalEnv("REDIS_PASSWORD", ""),
		MaxAttempts: clampInt(getOptionalEnvInt("LOGIN_MAX_ATTEMPTS", 10, &errors), 1, 1000, "LOGIN_MAX_ATTEMPTS", &errors),
		Window:      getOptionalEnvDuration("LOGIN_WINDOW", 5*time.Minute, &errors),
	}

	serverConfig := &ServerConfig{
		Port:            getOptionalEnv("PORT", "3000"),
		ShutdownTimeout: getOptionalEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second, &errors),
	}

	cfg := &AppConfig{
		DB:             dbConfig,
		Auth:           authConfig,
		Redis:          redisConfig,
		Server:         serverConfig,
		LogLevel:       getOptionalEnv("LOG_LEVEL", "info"),
		MigrateOnStart: getOptionalEnvBool("MIGRATIONS_ON_START", false, &errors),
	}

	if len(errors) > 0 {
		return nil, apperror.NewConfigError(fmt.Sprintf("configuration errors:\n- %s", strings.Join(errors, "\n- ")), nil)
	}
	return cfg, nil
}
