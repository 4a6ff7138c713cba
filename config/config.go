// ABOUTME: This file implements configuration management with environment variable support
// ABOUTME: Provides validation and defaults for all service subsystems
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Redis      RedisConfig      `json:"redis"`
	Classifier ClassifierConfig `json:"classifier"`
	Ingest     IngestConfig     `json:"ingest"`
	Retry      RetryConfig      `json:"retry"`
	Cache      CacheConfig      `json:"cache"`
	Metrics    MetricsConfig    `json:"metrics"`
}

type ServerConfig struct {
	Port            int           `json:"port" env:"SERVER_PORT" default:"9300"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	ReadTimeout     time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"60s"`
}

type DatabaseConfig struct {
	Host           string        `json:"host" env:"DB_HOST" default:"localhost"`
	Port           string        `json:"port" env:"DB_PORT" default:"5432"`
	User           string        `json:"user" env:"DB_USER" default:"devuser"`
	Password       string        `json:"password" env:"DB_PASSWORD" default:"devpassword"`
	DBName         string        `json:"db_name" env:"DB_NAME" default:"fanpulse"`
	MaxConns       int           `json:"max_conns" env:"DB_MAX_CONNS" default:"20"`
	MinConns       int           `json:"min_conns" env:"DB_MIN_CONNS" default:"5"`
	ConnectTimeout time.Duration `json:"connect_timeout" env:"DB_CONNECT_TIMEOUT" default:"30s"`
}

type RedisConfig struct {
	URL     string `json:"url" env:"REDIS_URL" default:"redis://localhost:6379"`
	Enabled bool   `json:"enabled" env:"REDIS_ENABLED" default:"true"`
}

type ClassifierConfig struct {
	Host          string        `json:"host" env:"CLASSIFIER_HOST" default:"http://sentiment-model:8080"`
	APIPath       string        `json:"api_path" env:"CLASSIFIER_API_PATH" default:"/v1/classify"`
	Model         string        `json:"model" env:"CLASSIFIER_MODEL" default:"distilbert-sst2"`
	Timeout       time.Duration `json:"timeout" env:"CLASSIFIER_TIMEOUT" default:"30s"`
	MaxTextLength int           `json:"max_text_length" env:"CLASSIFIER_MAX_TEXT_LENGTH" default:"512"`
	BatchSize     int           `json:"batch_size" env:"CLASSIFIER_BATCH_SIZE" default:"40"`
	Interval      time.Duration `json:"interval" env:"CLASSIFIER_INTERVAL" default:"20s"`
	RatePerSecond float64       `json:"rate_per_second" env:"CLASSIFIER_RATE_PER_SECOND" default:"5"`
	BreakerLimit  int           `json:"breaker_limit" env:"CLASSIFIER_BREAKER_LIMIT" default:"5"`
	BreakerReset  time.Duration `json:"breaker_reset" env:"CLASSIFIER_BREAKER_RESET" default:"60s"`
}

type IngestConfig struct {
	MaxSample  int   `json:"max_sample" env:"INGEST_MAX_SAMPLE" default:"1500"`
	SampleSeed int64 `json:"sample_seed" env:"INGEST_SAMPLE_SEED" default:"42"`
}

type RetryConfig struct {
	MaxAttempts   int           `json:"max_attempts" env:"RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay     time.Duration `json:"base_delay" env:"RETRY_BASE_DELAY" default:"1s"`
	MaxDelay      time.Duration `json:"max_delay" env:"RETRY_MAX_DELAY" default:"30s"`
	BackoffFactor float64       `json:"backoff_factor" env:"RETRY_BACKOFF_FACTOR" default:"2.0"`
	JitterFactor  float64       `json:"jitter_factor" env:"RETRY_JITTER_FACTOR" default:"0.1"`
}

type CacheConfig struct {
	TTL time.Duration `json:"ttl" env:"CACHE_TTL" default:"5m"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"METRICS_ENABLED" default:"true"`
	Path    string `json:"path" env:"METRICS_PATH" default:"/metrics"`
}

func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func loadFromEnv(config *Config) error {
	var err error

	// Server config
	if config.Server.Port, err = getEnvInt("SERVER_PORT", 9300); err != nil {
		return err
	}

	if config.Server.ShutdownTimeout, err = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second); err != nil {
		return err
	}

	if config.Server.ReadTimeout, err = getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second); err != nil {
		return err
	}

	if config.Server.WriteTimeout, err = getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return err
	}

	// Database config
	config.Database.Host = getEnvString("DB_HOST", "localhost")
	config.Database.Port = getEnvString("DB_PORT", "5432")
	config.Database.User = getEnvString("DB_USER", "devuser")
	config.Database.Password = getEnvString("DB_PASSWORD", "devpassword")
	config.Database.DBName = getEnvString("DB_NAME", "fanpulse")

	if config.Database.MaxConns, err = getEnvInt("DB_MAX_CONNS", 20); err != nil {
		return err
	}

	if config.Database.MinConns, err = getEnvInt("DB_MIN_CONNS", 5); err != nil {
		return err
	}

	if config.Database.ConnectTimeout, err = getEnvDuration("DB_CONNECT_TIMEOUT", 30*time.Second); err != nil {
		return err
	}

	// Redis config
	config.Redis.URL = getEnvString("REDIS_URL", "redis://localhost:6379")

	if config.Redis.Enabled, err = getEnvBool("REDIS_ENABLED", true); err != nil {
		return err
	}

	// Classifier config
	config.Classifier.Host = getEnvString("CLASSIFIER_HOST", "http://sentiment-model:8080")
	config.Classifier.APIPath = getEnvString("CLASSIFIER_API_PATH", "/v1/classify")
	config.Classifier.Model = getEnvString("CLASSIFIER_MODEL", "distilbert-sst2")

	if config.Classifier.Timeout, err = getEnvDuration("CLASSIFIER_TIMEOUT", 30*time.Second); err != nil {
		return err
	}

	if config.Classifier.MaxTextLength, err = getEnvInt("CLASSIFIER_MAX_TEXT_LENGTH", 512); err != nil {
		return err
	}

	if config.Classifier.BatchSize, err = getEnvInt("CLASSIFIER_BATCH_SIZE", 40); err != nil {
		return err
	}

	if config.Classifier.Interval, err = getEnvDuration("CLASSIFIER_INTERVAL", 20*time.Second); err != nil {
		return err
	}

	if config.Classifier.RatePerSecond, err = getEnvFloat("CLASSIFIER_RATE_PER_SECOND", 5); err != nil {
		return err
	}

	if config.Classifier.BreakerLimit, err = getEnvInt("CLASSIFIER_BREAKER_LIMIT", 5); err != nil {
		return err
	}

	if config.Classifier.BreakerReset, err = getEnvDuration("CLASSIFIER_BREAKER_RESET", 60*time.Second); err != nil {
		return err
	}

	// Ingest config
	if config.Ingest.MaxSample, err = getEnvInt("INGEST_MAX_SAMPLE", 1500); err != nil {
		return err
	}

	if seed, seedErr := getEnvInt("INGEST_SAMPLE_SEED", 42); seedErr != nil {
		return seedErr
	} else {
		config.Ingest.SampleSeed = int64(seed)
	}

	// Retry config
	if config.Retry.MaxAttempts, err = getEnvInt("RETRY_MAX_ATTEMPTS", 3); err != nil {
		return err
	}

	if config.Retry.BaseDelay, err = getEnvDuration("RETRY_BASE_DELAY", time.Second); err != nil {
		return err
	}

	if config.Retry.MaxDelay, err = getEnvDuration("RETRY_MAX_DELAY", 30*time.Second); err != nil {
		return err
	}

	if config.Retry.BackoffFactor, err = getEnvFloat("RETRY_BACKOFF_FACTOR", 2.0); err != nil {
		return err
	}

	if config.Retry.JitterFactor, err = getEnvFloat("RETRY_JITTER_FACTOR", 0.1); err != nil {
		return err
	}

	// Cache config
	if config.Cache.TTL, err = getEnvDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return err
	}

	// Metrics config
	if config.Metrics.Enabled, err = getEnvBool("METRICS_ENABLED", true); err != nil {
		return err
	}

	config.Metrics.Path = getEnvString("METRICS_PATH", "/metrics")

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}

	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}

	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", key, value)
	}

	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}

	return parsed, nil
}
