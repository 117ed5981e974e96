package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	AppURL                   string
	DatabaseDriver           string
	DatabaseDSN              string
	SessionStore             string
	RedisAddr                string
	RedisSessionPrefix       string
	SessionTTLSeconds        int
	RateLimit                int
	ReconcileIntervalSeconds int
	ReconcileBatchSize       int
	ShutdownTimeoutSeconds   int
	ExportTimezone           string
	LogLevel                 string
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:             fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:     getEnv("DATABASE_DRIVER", DriverSQLite),
		DatabaseDSN:        getEnv("DATABASE_DSN", "workshop.db"),
		SessionStore:       getEnv("SESSION_STORE", SessionStoreMemory),
		RedisAddr:          fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisSessionPrefix: getEnv("REDIS_SESSION_PREFIX", "workshop:session:"),
		ExportTimezone:     getEnv("EXPORT_TIMEZONE", "Europe/Madrid"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"SESSION_TTL_SECONDS", 0, &cfg.SessionTTLSeconds},
		{"RATE_LIMIT_PER_MINUTE", 120, &cfg.RateLimit},
		{"RECONCILE_INTERVAL_SECONDS", 0, &cfg.ReconcileIntervalSeconds},
		{"RECONCILE_BATCH_SIZE", 50, &cfg.ReconcileBatchSize},
		{"SHUTDOWN_TIMEOUT_SECONDS", 20, &cfg.ShutdownTimeoutSeconds},
	}
	for _, v := range ints {
		i, err := getEnvAsInt(v.key, v.def)
		if err != nil {
			return Config{}, err
		}
		*v.dest = i
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DatabaseDriver)
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	switch cfg.SessionStore {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreRedis, SessionStoreMemory, cfg.SessionStore)
	}
	if cfg.SessionTTLSeconds < 0 {
		return fmt.Errorf("SESSION_TTL_SECONDS must not be negative")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ReconcileIntervalSeconds < 0 {
		return fmt.Errorf("RECONCILE_INTERVAL_SECONDS must not be negative")
	}
	if cfg.ReconcileBatchSize <= 0 {
		return fmt.Errorf("RECONCILE_BATCH_SIZE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if _, err := time.LoadLocation(cfg.ExportTimezone); err != nil {
		return fmt.Errorf("EXPORT_TIMEZONE: %w", err)
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func (cfg Config) SessionTTL() time.Duration {
	return time.Duration(cfg.SessionTTLSeconds) * time.Second
}

func (cfg Config) ReconcileInterval() time.Duration {
	return time.Duration(cfg.ReconcileIntervalSeconds) * time.Second
}

func (cfg Config) ShutdownTimeout() time.Duration {
	return time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
}

// ExportLocation is the zone export timestamps are rendered in. Validate
// has already checked the name.
func (cfg Config) ExportLocation() *time.Location {
	loc, err := time.LoadLocation(cfg.ExportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}
