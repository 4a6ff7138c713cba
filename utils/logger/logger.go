// ABOUTME: This file provides the service-wide slog logger configuration
// ABOUTME: Emits JSON logs with time/level/msg fields plus service metadata
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the process-wide logger. Init must be called from main before use.
var Logger *slog.Logger

// Config represents logger configuration loaded from the environment.
type Config struct {
	Level       string `env:"LOG_LEVEL" default:"info"`
	ServiceName string `env:"SERVICE_NAME" default:"fan-pulse"`
}

// LoadConfigFromEnv loads logger configuration from environment variables.
func LoadConfigFromEnv() *Config {
	return &Config{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		ServiceName: getEnvOrDefault("SERVICE_NAME", "fan-pulse"),
	}
}

// Init configures the global logger from the environment and returns it.
func Init() *slog.Logger {
	cfg := LoadConfigFromEnv()
	Logger = NewWithLevel(os.Stdout, cfg.ServiceName, cfg.Level)

	return Logger
}

// NewWithLevel creates a logger writing JSON to output at the given level.
func NewWithLevel(output io.Writer, serviceName, level string) *slog.Logger {
	var slogLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	options := &slog.HandlerOptions{
		Level:     slogLevel,
		AddSource: false,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "time", Value: a.Value}
			case slog.LevelKey:
				// Lowercase for log-forwarder compatibility
				if level, ok := a.Value.Any().(slog.Level); ok {
					return slog.Attr{Key: "level", Value: slog.StringValue(strings.ToLower(level.String()))}
				}
				return a
			case slog.MessageKey:
				return slog.Attr{Key: "msg", Value: a.Value}
			default:
				return a
			}
		},
	}

	handler := slog.NewJSONHandler(output, options)

	return slog.New(handler).With("service", serviceName, "version", "1.0.0")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
