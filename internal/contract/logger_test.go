package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, Logger())
	Logger().Debug("dropped")
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	Logger().Debug("dd statement dropped", zap.String("path", "NIGHTLY.jcl"), zap.Int("line", 12))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "dd statement dropped", entry.Message)
	assert.Equal(t, "NIGHTLY.jcl", entry.ContextMap()["path"])
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(zapcore.ErrorLevel))
	t.Cleanup(func() { SetLogger(nil) })

	assert.False(t, Logger().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, Logger().Core().Enabled(zapcore.ErrorLevel))
}
