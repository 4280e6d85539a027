package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestLevelPrecedence(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvLevelFallback, "error")
	assert.Equal(t, zapcore.DebugLevel, levelFromEnv())

	t.Setenv(EnvLevel, "")
	assert.Equal(t, zapcore.ErrorLevel, levelFromEnv())
}

func TestFromEnv_PrettyToggle(t *testing.T) {
	t.Setenv(EnvPretty, "true")
	logger := FromEnv()
	assert.NotNil(t, logger)
	logger.Debug("pretty encoder constructed")

	t.Setenv(EnvPretty, "0")
	assert.NotNil(t, FromEnv())
}
