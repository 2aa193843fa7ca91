package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	JWTSecret       string        `env:"JWT_SECRET,notEmpty"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`

	MinIOEndpoint       string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinIOPublicEndpoint string `env:"MINIO_PUBLIC_ENDPOINT"`
	MinIOAccessKey      string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinIOSecretKey      string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinIOBucket         string `env:"MINIO_BUCKET" envDefault:"graphic-requests"`
	MinIOUseSSL         bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinIORegion         string `env:"MINIO_REGION" envDefault:"us-east-1"`
	MinIOPublicUseSSL   bool   `env:"MINIO_PUBLIC_USE_SSL" envDefault:"true"`

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	FromEmail    string `env:"FROM_EMAIL" envDefault:"noreply@example.com"`
	Domain       string `env:"DOMAIN" envDefault:"localhost:5173"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DeadlineSweepInterval time.Duration `env:"DEADLINE_SWEEP_INTERVAL" envDefault:"1h"`
	DeadlineSweepLockTTL  time.Duration `env:"DEADLINE_SWEEP_LOCK_TTL" envDefault:"1h"`

	LocalesPath string `env:"LOCALES_PATH" envDefault:"locales"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MinIOPublicEndpoint == "" {
		cfg.MinIOPublicEndpoint = cfg.MinIOEndpoint
	}
	if cfg.DeadlineSweepInterval <= 0 {
		return nil, fmt.Errorf("DEADLINE_SWEEP_INTERVAL must be positive")
	}

	return cfg, nil
}

func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != ""
}

func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
