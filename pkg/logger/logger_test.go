package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tgminiapp/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestLoggerMethods(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewRequestIDContext(context.Background(), "req-1")

	assert.NotPanics(t, func() {
		log.Debug(ctx, "debug message", zap.String("owner", "alice"))
		log.Info(ctx, "info message")
		log.Warn(ctx, "warn message")
		log.Error(ctx, "error message", zap.Int("folder_id", 1))
	})

	//nolint:staticcheck
	assert.NotPanics(t, func() { log.Info(nil, "nil context") })
}

func TestLog(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("returns logger from context when available", func(t *testing.T) {
		contextLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		globalLogger, err := logger.NewLogger(logger.Production, "error")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		ctx := logger.NewContext(context.Background(), contextLogger)

		assert.Same(t, contextLogger, logger.Log(ctx))
	})

	t.Run("returns global logger when no logger in context", func(t *testing.T) {
		globalLogger, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(globalLogger)

		assert.Same(t, globalLogger, logger.Log(context.Background()))
	})

	t.Run("returns the same fallback logger each time", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		first := logger.Log(context.Background())
		second := logger.Log(context.Background())

		require.NotNil(t, first)
		assert.Same(t, first, second)
	})
}

func TestInitGlobalLogger(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	require.NoError(t, logger.InitGlobalLogger(logger.Production, "warn"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLogger(logger.Development, "debug"))
	assert.Same(t, first, logger.Log(context.Background()), "second init should keep the existing global logger")
}

func TestSetGlobalLoggerReturnsPrevious(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	first, err := logger.NewLogger(logger.Development, "info")
	require.NoError(t, err)
	second, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	assert.Nil(t, logger.SetGlobalLogger(first))
	assert.Same(t, first, logger.SetGlobalLogger(second))
	assert.Same(t, second, logger.Log(context.Background()))
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("empty or malformed id is generated", func(t *testing.T) {
		for _, raw := range []string{"", "has space", "line\nbreak", strings.Repeat("a", logger.MaxRequestIDLength+1)} {
			ctx := logger.NewRequestIDContext(context.Background(), raw)

			id, ok := logger.GetRequestID(ctx)
			assert.True(t, ok)
			assert.Len(t, id, 36, "raw id %q", raw)
		}
	})

	t.Run("absent id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"req-42", true},
		{"0b8f7c1e-2f44-4c1a-9d55-6f0f4a0c9a11", true},
		{"trace_id.v1", true},
		{"", false},
		{"a b", false},
		{"id;drop", false},
		{"идентификатор", false},
		{strings.Repeat("x", logger.MaxRequestIDLength), true},
		{strings.Repeat("x", logger.MaxRequestIDLength+1), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logger.ValidRequestID(tt.id), "id %q", tt.id)
	}
}

func TestOwnerContext(t *testing.T) {
	ctx := logger.NewOwnerContext(context.Background(), "alice")

	owner, ok := logger.GetOwner(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", owner)

	_, ok = logger.GetOwner(logger.NewOwnerContext(context.Background(), ""))
	assert.False(t, ok)
}
