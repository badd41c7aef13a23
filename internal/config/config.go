package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	LogDev   bool
	Location *time.Location

	Storage       StorageConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	OpenFoodFacts OpenFoodFactsConfig
	Auth          AuthConfig

	// RateLimit is the number of requests allowed per client per minute.
	// It is enforced only when redis is reachable.
	RateLimit int
}

type StorageConfig struct {
	Backend      string
	SQLitePath   string
	CacheEnabled bool
	CacheTTL     time.Duration
}

type PostgresConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type OpenFoodFactsConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type AuthConfig struct {
	PasscodeHash string
	JWTSecret    string
	JWTIssuer    string
	JWTTTL       time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present. Values that are set but
// malformed are reported instead of being replaced by defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogDev:   getBool("LOG_DEV", false, &errs),
		Storage: StorageConfig{
			Backend:      strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
			SQLitePath:   getEnv("SQLITE_PATH", "food_diary.db"),
			CacheEnabled: getBool("CACHE_ENABLED", false, &errs),
			CacheTTL:     getDuration("CACHE_TTL", 30*time.Minute, &errs),
		},
		Postgres: PostgresConfig{
			User:     getEnv("DB_USER", "kanso_user"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "kanso_food_diary"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0, &errs),
		},
		OpenFoodFacts: OpenFoodFactsConfig{
			BaseURL:  strings.TrimRight(getEnv("OFF_BASE_URL", "https://world.openfoodfacts.org"), "/"),
			Timeout:  getDuration("OFF_TIMEOUT", 12*time.Second, &errs),
			CacheTTL: getDuration("PRODUCT_CACHE_TTL", 24*time.Hour, &errs),
		},
		Auth: AuthConfig{
			PasscodeHash: getEnv("AUTH_PASSCODE_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			JWTIssuer:    getEnv("JWT_ISSUER", "kanso-food-diary"),
			JWTTTL:       getDuration("JWT_TTL", 720*time.Hour, &errs),
		},
		RateLimit: getInt("RATE_LIMIT", 100, &errs),
	}

	switch cfg.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.Storage.Backend))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", cfg.LogLevel))
	}

	if cfg.Auth.PasscodeHash != "" && cfg.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET: required when AUTH_PASSCODE_HASH is set"))
	}

	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT: must not be negative"))
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return fallback
	}
	return v
}

func getBool(key string, fallback bool, errs *[]error) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a positive duration", key, raw))
		return fallback
	}
	return v
}
