// Package logging builds the framework's zap logger from the environment.
package logging

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables consulted by FromEnv. EnvLevel takes precedence over
// EnvLevelFallback; EnvPretty switches the JSON encoder to a human-readable
// console encoder.
const (
	EnvLevel         = "FASTMCP_LOG_LEVEL"
	EnvLevelFallback = "LOG_LEVEL"
	EnvPretty        = "FASTMCP_LOG_PRETTY"
)

// FromEnv constructs a logger writing to stderr. Stdout is never used: the
// stdio transport owns it.
func FromEnv() *zap.Logger {
	level := levelFromEnv()

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if pretty() {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func levelFromEnv() zapcore.Level {
	raw := os.Getenv(EnvLevel)
	if raw == "" {
		raw = os.Getenv(EnvLevelFallback)
	}
	return ParseLevel(raw)
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func pretty() bool {
	v, err := strconv.ParseBool(os.Getenv(EnvPretty))
	return err == nil && v
}
