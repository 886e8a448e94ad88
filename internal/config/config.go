package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/openhorizon/seed-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Text-generation collaborator configuration
	TextGenConnectorCfg TextGenConnectorConfig `envPrefix:"TEXTGEN_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Extraction vocabulary (loaded from JSON file)
	Vocabulary Vocabulary

	// Session cache configuration
	CacheTTL             time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	CacheCleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"15m"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS,notEmpty"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN,notEmpty"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT,notEmpty"`
	MaxConcurrentUsers int    `env:"MAX_CONCURRENT_USERS,notEmpty"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE,notEmpty"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST,notEmpty"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT,notEmpty"` // seconds
}

type TextGenConnectorConfig struct {
	HTTPClientConfig
	ElaborateEndpoint string               `env:"ELABORATE_ENDPOINT,notEmpty"`
	SummaryEndpoint   string               `env:"SUMMARY_ENDPOINT,notEmpty"`
	Retry             pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// Vocabulary extends the built-in extraction keyword tables. The observed
// alias and keyword sets are not exhaustive, so deployments can add rows
// without a rebuild.
type Vocabulary struct {
	CountryAliases     map[string]string `json:"country_aliases"`
	ActivityIndicators []string          `json:"activity_indicators"`
	PriorityKeywords   map[string]string `json:"priority_keywords"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadVocabulary(cfg); err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func loadVocabulary(cfg *Config) error {
	vocabPath := filepath.Join("internal", "config", "vocabulary.json")

	if _, err := os.Stat(vocabPath); os.IsNotExist(err) {
		fmt.Printf("Warning: vocabulary file not found at %s, using built-in tables only\n", vocabPath)
		return nil
	}

	data, err := os.ReadFile(vocabPath)
	if err != nil {
		return fmt.Errorf("read vocabulary file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("vocabulary file is empty: %s", vocabPath)
	}

	if err := json.Unmarshal(data, &cfg.Vocabulary); err != nil {
		return fmt.Errorf("parse vocabulary JSON: %w", err)
	}

	fmt.Printf("Loaded vocabulary extensions from %s\n", vocabPath)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
