package voxeltrace

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, false))
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, true))
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, true), "debug wins")
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	SetupLogging(false, true)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}
