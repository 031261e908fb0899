package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

func TestZapLoggerLevels(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	log := NewZapLoggerWithCore(observed, core.LogLevelWarn)

	log.Debug("dropped", nil)
	log.Info("dropped", nil)
	log.Warn("kept warn", map[string]any{"transaction_id": uint64(42)})
	log.Error("kept error", nil)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "kept warn", logs.All()[0].Message)
	assert.Equal(t, uint64(42), logs.All()[0].ContextMap()["transaction_id"])

	log.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())

	log.Debug("now kept", nil)
	assert.Equal(t, 3, logs.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, core.LogLevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, core.LogLevelWarn, ParseLevel("warning"))
	assert.Equal(t, core.LogLevelError, ParseLevel("error"))
	assert.Equal(t, core.LogLevelInfo, ParseLevel(""))
}
