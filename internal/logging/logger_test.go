package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromCore(core).Named("http").With(String("request_id", "r-1"))

	log.Info("request completed",
		Int("status", 200),
		Float64("margin", 0.05),
		Bool("cached", false),
		Duration("latency", 3*time.Millisecond),
		Err(errors.New("boom")),
		Any("family", "AR"),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http", entry.LoggerName)
	assert.Equal(t, "request completed", entry.Message)

	ctx := entry.ContextMap()
	assert.Equal(t, "r-1", ctx["request_id"])
	assert.Equal(t, int64(200), ctx["status"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, false, ctx["cached"])
}

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := NewFromCore(core)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("shown")

	assert.Equal(t, 2, logs.Len())
}

func TestNewBuildsLogger(t *testing.T) {
	log, err := New(Config{Level: "debug", Format: "console", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	log.Debug("hello")

	_, err = New(Config{OutputPaths: []string{"/nonexistent-dir/x/y.log"}})
	assert.Error(t, err)
}

func TestDefaultLogger(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	nop := NewNop()
	SetDefault(nop)
	assert.Equal(t, nop, Default())

	SetDefault(nil)
	assert.Equal(t, nop, Default())
	assert.NoError(t, nop.Sync())
}
