package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger from LOG_LEVEL and LOG_FORMAT
// environment variables. Defaults to production JSON at info level.
func NewLogger() *zap.Logger {
	level := strings.ToLower(getEnv("LOG_LEVEL", "info"))
	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))

	var zapConfig zap.Config
	if level == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if err := zapConfig.Level.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Invalid LOG_LEVEL '%s', defaulting to 'info'. Error: %v\n", level, err)
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	if format == "console" || format == "text" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	log, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to build zap logger, using no-op: %v\n", err)
		return zap.NewNop()
	}
	return log
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
