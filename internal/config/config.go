package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"library-catalog/internal/infrastructure/database"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database database.DBConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

// CacheConfig controls the read-through cache.
// BookOptionsTTL is kept short: books are written outside this service
// and nothing here invalidates the options key.
type CacheConfig struct {
	TTL            time.Duration
	BookOptionsTTL time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	env := &envReader{}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Local Library"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: database.DBConfig{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              env.int("DB_PORT", 5432),
			Username:          getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", ""),
			DBName:            getEnv("DB_NAME", "local_library"),
			SSLMode:           getEnv("DB_SSLMODE", "disable"),
			MaxConns:          int32(env.int("DB_MAX_CONNECTIONS", 25)),
			MinConns:          int32(env.int("DB_MIN_CONNECTIONS", 5)),
			MaxConnLifetime:   env.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   env.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
			HealthCheckPeriod: env.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			MaxRetries:        env.int("DB_MAX_RETRIES", 5),
			RetryDelay:        env.duration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout:    env.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       env.int("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			TTL:            env.duration("CACHE_TTL", 5*time.Minute),
			BookOptionsTTL: env.duration("BOOK_OPTIONS_CACHE_TTL", 30*time.Second),
		},
	}

	if env.err != nil {
		return nil, env.err
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	if c.Cache.BookOptionsTTL < 0 {
		return fmt.Errorf("BOOK_OPTIONS_CACHE_TTL must not be negative")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNECTIONS must not exceed DB_MAX_CONNECTIONS")
	}

	// Production environment phải có DB password
	if c.IsProduction() {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ========================================
// ENV HELPERS
// ========================================

// envReader giữ lại lỗi parse đầu tiên để Load trả về một lần
type envReader struct {
	err error
}

func (r *envReader) int(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return value
}

func (r *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		r.fail(key, err)
		return defaultValue
	}
	return value
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
