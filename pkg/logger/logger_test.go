package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLevelsAreForwarded(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Init("development")

	Info("order %s created", "o-1")
	Warn("donation record failed: %v", "boom")
	Error("wallet credit failed")

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "order o-1 created", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	}
}

func TestDebugSuppressedOutsideDevelopment(t *testing.T) {
	Init("production")
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Init("development")

	Debug("hidden")

	assert.Equal(t, 0, logs.Len())
}

func TestWithAttachesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Init("development")

	With("donor_id", "d-1", "orders", 2).Infof("Checkout complete")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "d-1", fields["donor_id"])
		assert.EqualValues(t, 2, fields["orders"])
	}
}
