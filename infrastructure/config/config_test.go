package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AaronCarney/collabboard-sub001/infrastructure/config"
)

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.UndoEnabled)
	assert.Equal(t, 200.0, cfg.SpatialCellSize)
}

func TestNew_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNDO_ENABLED", "false")
	t.Setenv("SPATIAL_CELL_SIZE", "150.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := config.New()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.UndoEnabled)
	assert.Equal(t, 150.5, cfg.SpatialCellSize)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestNew_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("UNDO_ENABLED", "not-a-bool")
	t.Setenv("SPATIAL_CELL_SIZE", "not-a-number")

	cfg := config.New()

	assert.True(t, cfg.UndoEnabled)
	assert.Equal(t, 200.0, cfg.SpatialCellSize)
}
