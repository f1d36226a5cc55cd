package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers verifies the stored logger wins over the global one
// and that WithName/WithKV enrich the request-scoped logger.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "packager")
	ctx = WithKV(ctx, "request_id", "42")

	InfoKV(ctx, "packaging started", "os", "mac64")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "packaging started", entries[0].Message)
	require.Equal(t, "packager", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	require.Equal(t, "42", fields["request_id"])
	require.Equal(t, "mac64", fields["os"])
}

// TestFromContextFallback returns the global logger for bare contexts.
func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(context.Background()))
}
