package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hrconnect/internal/platform/crypto"
	"hrconnect/internal/platform/storage"
)

type Config struct {
	Addr                string
	Environment         string
	LogLevel            string
	JWTSecret           string
	TokenTTL            time.Duration
	BcryptCost          int
	SessionBackend      string
	SessionFile         string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	DatabaseURL         string
	SessionKey          string
	SeedFile            string
	PageSize            int
	MaxPageSize         int
	MaxBodyBytes        int64
	RateLimitPerMinute  int
	NotificationHistory int
	MetricsEnabled      bool
}

// Load reads the environment, after merging a .env file when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                getEnv("APP_ADDR", ":8080"),
		Environment:         getEnv("APP_ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:            getEnvDuration("TOKEN_TTL", 8*time.Hour),
		BcryptCost:          getEnvInt("BCRYPT_COST", 10),
		SessionBackend:      getEnv("SESSION_BACKEND", storage.BackendMemory),
		SessionFile:         getEnv("SESSION_FILE", "data/session.json"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SessionKey:          getEnv("SESSION_ENCRYPTION_KEY", ""),
		SeedFile:            getEnv("SEED_FILE", ""),
		PageSize:            getEnvInt("PAGE_SIZE", 5),
		MaxPageSize:         getEnvInt("MAX_PAGE_SIZE", 100),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		NotificationHistory: getEnvInt("NOTIFICATION_HISTORY", 100),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}
}

func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:  c.SessionBackend,
		FilePath: c.SessionFile,
		Redis: storage.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		},
		DatabaseURL:   c.DatabaseURL,
		EncryptionKey: c.SessionKey,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if c.Environment == "production" && (strings.TrimSpace(c.JWTSecret) == "" || c.JWTSecret == "dev-secret") {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	switch c.SessionBackend {
	case storage.BackendMemory, storage.BackendFile, storage.BackendRedis:
	case storage.BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_BACKEND is postgres")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be one of memory, file, redis, postgres")
	}
	if c.SessionBackend == storage.BackendFile && strings.TrimSpace(c.SessionFile) == "" {
		return fmt.Errorf("SESSION_FILE is required when SESSION_BACKEND is file")
	}
	if c.SessionKey != "" {
		if _, err := crypto.NewSealer(c.SessionKey); err != nil {
			return fmt.Errorf("SESSION_ENCRYPTION_KEY: %w", err)
		}
	}
	if c.PageSize <= 0 || c.MaxPageSize < c.PageSize {
		return fmt.Errorf("PAGE_SIZE must be positive and not exceed MAX_PAGE_SIZE")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.NotificationHistory <= 0 {
		return fmt.Errorf("NOTIFICATION_HISTORY must be positive")
	}
	return nil
}
