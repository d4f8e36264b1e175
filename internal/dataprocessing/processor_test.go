package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrange/internal/shared/testutil"
	"openrange/pkg/contracts/domain"
)

func TestSeriesBuilder_Dedupe(t *testing.T) {
	loc := testutil.NewYork(t)
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, loc)

	first := testutil.MinuteBar(day, 9, 31, 1, 1, 1, 1, 1)
	second := testutil.MinuteBar(day, 9, 30, 2, 2, 2, 2, 2)
	// same instant as first, expressed in UTC
	replacement := first
	replacement.Instant = first.Instant.UTC()
	replacement.Close = 99

	bars := NewSeriesBuilder(loc).Dedupe([]domain.Bar{first, second, replacement})

	require.Len(t, bars, 2)
	assert.Equal(t, 2.0, bars[0].Close)
	assert.Equal(t, 99.0, bars[1].Close)
	assert.Equal(t, loc, bars[1].Instant.Location())
}

func TestSeriesBuilder_Build(t *testing.T) {
	loc := testutil.NewYork(t)
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, loc)
	d2 := time.Date(2024, 1, 3, 0, 0, 0, 0, loc)

	// 2024-01-03 00:30 UTC is still 2024-01-02 in New York
	lateUTC := domain.Bar{Instant: time.Date(2024, 1, 3, 0, 30, 0, 0, time.UTC), Close: 5}

	bars := []domain.Bar{
		testutil.MinuteBar(d2, 9, 31, 0, 0, 0, 3, 0),
		testutil.MinuteBar(d1, 9, 31, 0, 0, 0, 2, 0),
		lateUTC,
		testutil.MinuteBar(d2, 9, 30, 0, 0, 0, 4, 0),
		testutil.MinuteBar(d1, 9, 30, 0, 0, 0, 1, 0),
	}

	days := NewSeriesBuilder(loc).Build(bars)

	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-02", days[0].Key())
	assert.Equal(t, "2024-01-03", days[1].Key())
	assert.True(t, days[0].Date.Equal(d1))

	closes := func(d domain.TradingDay) []float64 {
		var out []float64
		for _, b := range d.Bars {
			out = append(out, b.Close)
		}
		return out
	}
	assert.Equal(t, []float64{1, 2, 5}, closes(days[0]))
	assert.Equal(t, []float64{4, 3}, closes(days[1]))
}

func TestSeriesBuilder_Empty(t *testing.T) {
	assert.Empty(t, NewSeriesBuilder(nil).Build(nil))
}
