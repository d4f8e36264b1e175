package dataprocessing

import (
	"sort"
	"time"

	"openrange/pkg/contracts/domain"
)

// SeriesBuilder de-duplicates bars and groups them into trading days.
type SeriesBuilder struct {
	loc *time.Location
}

// NewSeriesBuilder creates a builder bucketing days in loc.
func NewSeriesBuilder(loc *time.Location) *SeriesBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &SeriesBuilder{loc: loc}
}

// Dedupe keeps one bar per instant, the one appearing last in the input,
// and returns them sorted ascending and expressed in the trading zone.
func (b *SeriesBuilder) Dedupe(bars []domain.Bar) []domain.Bar {
	index := make(map[int64]int, len(bars))
	out := make([]domain.Bar, 0, len(bars))

	for _, bar := range bars {
		bar.Instant = bar.Instant.In(b.loc)
		key := bar.Instant.UnixNano()
		if i, ok := index[key]; ok {
			out[i] = bar
			continue
		}
		index[key] = len(out)
		out = append(out, bar)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Instant.Before(out[j].Instant)
	})
	return out
}

// Build de-duplicates bars and partitions them by trading-zone calendar
// date. Days come back in ascending order, each internally ascending.
func (b *SeriesBuilder) Build(bars []domain.Bar) []domain.TradingDay {
	series := b.Dedupe(bars)

	var days []domain.TradingDay
	for _, bar := range series {
		y, m, d := bar.Instant.Date()
		n := len(days)
		if n == 0 || !sameDate(days[n-1].Date, y, m, d) {
			days = append(days, domain.TradingDay{
				Date: time.Date(y, m, d, 0, 0, 0, 0, b.loc),
			})
			n++
		}
		days[n-1].Bars = append(days[n-1].Bars, bar)
	}
	return days
}

func sameDate(t time.Time, y int, m time.Month, d int) bool {
	ty, tm, td := t.Date()
	return ty == y && tm == m && td == d
}
