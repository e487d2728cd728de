package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/dafibh/tally/tally-backend/internal/lock"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Auth0
	Auth0Domain   string
	Auth0Audience string
	Auth0ClientID string

	// Server
	Port               string
	PublicURL          string
	CORSOrigins        []string
	Env                string
	RateLimitPerMinute int

	// Balance engine
	ProjectionMode domain.ProjectionMode
	RecalcLock     lock.Mode
	RollupInterval time.Duration

	// Redis, required when RecalcLock is redis
	RedisURL string

	// RabbitMQ ledger-change messaging, disabled when URL is empty
	AMQP AMQPConfig

	// S3 Storage for balance exports, disabled when Bucket is empty
	S3 S3Config
}

// AMQPConfig holds RabbitMQ settings
type AMQPConfig struct {
	URL                   string
	Exchange              string
	Queue                 string
	CascadeOnLedgerChange bool
}

// Enabled reports whether a broker is configured
func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
	PresignExpiry   time.Duration
}

// Enabled reports whether export storage is configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration for the API server. Auth0 settings are required.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.validateAuth(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWorker reads configuration for the worker and CLI, which do not authenticate requests
func LoadWorker() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	mode, err := domain.ParseProjectionMode(getEnv("PROJECTION_MODE", string(domain.ProjectionModeAdditive)))
	if err != nil {
		return nil, fmt.Errorf("PROJECTION_MODE: %w", err)
	}

	rollup, err := time.ParseDuration(getEnv("ROLLUP_INTERVAL", "0"))
	if err != nil {
		return nil, fmt.Errorf("ROLLUP_INTERVAL: %w", err)
	}

	presign, err := time.ParseDuration(getEnv("S3_PRESIGN_EXPIRY", "15m"))
	if err != nil {
		return nil, fmt.Errorf("S3_PRESIGN_EXPIRY: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "120"))
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
	}

	migrateOnStart, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("MIGRATE_ON_START: %w", err)
	}

	cascade, err := strconv.ParseBool(getEnv("CASCADE_ON_LEDGER_CHANGE", "false"))
	if err != nil {
		return nil, fmt.Errorf("CASCADE_ON_LEDGER_CHANGE: %w", err)
	}

	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrateOnStart:     migrateOnStart,
		Auth0Domain:        getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:      getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID:      getEnv("AUTH0_CLIENT_ID", ""),
		Port:               getEnv("PORT", "8080"),
		PublicURL:          getEnv("PUBLIC_URL", ""),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                getEnv("ENV", "development"),
		RateLimitPerMinute: rateLimit,
		ProjectionMode:     mode,
		RecalcLock:         lock.Mode(getEnv("RECALC_LOCK", string(lock.ModeLocal))),
		RollupInterval:     rollup,
		RedisURL:           getEnv("REDIS_URL", ""),
		AMQP: AMQPConfig{
			URL:                   getEnv("AMQP_URL", ""),
			Exchange:              getEnv("AMQP_EXCHANGE", "tally"),
			Queue:                 getEnv("AMQP_QUEUE", "tally.balance.recalculate"),
			CascadeOnLedgerChange: cascade,
		},
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
			PresignExpiry:   presign,
		},
	}, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.RecalcLock {
	case lock.ModeNone, lock.ModeLocal:
	case lock.ModeRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when RECALC_LOCK=redis")
		}
	default:
		return fmt.Errorf("RECALC_LOCK must be one of none, local, redis (got %q)", c.RecalcLock)
	}
	if c.RollupInterval < 0 {
		return fmt.Errorf("ROLLUP_INTERVAL must not be negative")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.AMQP.Enabled() && c.AMQP.Queue == "" {
		return fmt.Errorf("AMQP_QUEUE is required when AMQP_URL is set")
	}
	return nil
}

func (c *Config) validateAuth() error {
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
