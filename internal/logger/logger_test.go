package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"unitoken/config"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with JSON format", func(t *testing.T) {
		l, err := New(config.LoggingConfig{Level: "info", Format: "json"})

		assert.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		l, err := New(config.LoggingConfig{Level: "debug", Format: "console"})

		assert.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("defaults to info level for invalid level", func(t *testing.T) {
		l, err := New(config.LoggingConfig{Level: "invalid"})

		assert.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("respects warn level", func(t *testing.T) {
		l, err := New(config.LoggingConfig{Level: "warn", Format: "console"})

		assert.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	})
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l, _ := New(config.LoggingConfig{Level: "info"})
	assert.Same(t, l, OrNop(l))
}
