package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		require.Len(t, handler.GetRecords(), 2)
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug msg")
		logger.Info("info msg")
		logger.Warn("warn msg")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelWarn), 1)
	})

	t.Run("derived loggers share records and keep attrs", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "series").Info("built")
		logger.Info("plain")

		assert.Equal(t, 2, len(handler.GetRecords()))
		assert.True(t, handler.ContainsAttr("component", "series"))
		assert.Equal(t, 1, handler.CountMessage("built"))
	})
}

func TestScenarioDay(t *testing.T) {
	day := ScenarioDay(NewYork(t))

	require.NotEmpty(t, day.Bars)
	assert.Equal(t, "2024-01-02", day.Key())
	for i := 1; i < len(day.Bars); i++ {
		assert.True(t, day.Bars[i-1].Instant.Before(day.Bars[i].Instant))
	}
}
