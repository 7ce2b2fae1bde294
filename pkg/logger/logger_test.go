package logger_test

import (
	"testing"

	"orderservice/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	require.NoError(t, logger.Init("development"))
	assert.NotNil(t, logger.Get())
	require.NoError(t, logger.Init("production"))
	assert.NotNil(t, logger.Get())
}

func TestSetRoutesGlobalCalls(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	logger.Info("order created", zap.String("order_id", "abc"))
	logger.Debug("dropped below level")
	logger.Warn("publish failed")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "order created", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["order_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
