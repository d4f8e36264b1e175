package dataprocessing

import (
	"math"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"openrange/pkg/contracts/domain"
)

// Summary metric names, in output order.
const (
	MetricRows                = "rows"
	MetricDroppedDays         = "dropped_days"
	MetricPctMissingClose11am = "pct_missing_close_11am"
	MetricMeanPctChange5Min   = "mean_pct_change_5min"
	MetricMedianPctChange5Min = "median_pct_change_5min"
	MetricMeanPctMove         = "mean_pct_move"
	MetricMedianPctMove       = "median_pct_move"
	MetricHitRate             = "hit_rate"
)

// Summarize computes dataset statistics over the daily rows. Means and
// medians only consider finite values and are NaN over an empty set.
func Summarize(rows []domain.DailyRow, droppedDays int) domain.Summary {
	s := domain.Summary{
		Rows:                len(rows),
		DroppedDays:         droppedDays,
		PctMissingClose11am: math.NaN(),
		HitRate:             math.NaN(),
	}

	var change5, moves []float64
	missingClose, directional, hits := 0, 0, 0
	for _, r := range rows {
		if !isFinite(r.Close11am) {
			missingClose++
		}
		if isFinite(r.PctChange5Min) {
			change5 = append(change5, r.PctChange5Min)
		}
		if isFinite(r.PctMove) {
			moves = append(moves, r.PctMove)
		}
		if r.DirectionPeak != 0 {
			directional++
			hits += r.Hit5MinDir
		}
	}

	if len(rows) > 0 {
		s.PctMissingClose11am = 100 * float64(missingClose) / float64(len(rows))
	}
	if directional > 0 {
		s.HitRate = float64(hits) / float64(directional)
	}
	s.MeanPctChange5Min = mean(change5)
	s.MedianPctChange5Min = median(change5)
	s.MeanPctMove = mean(moves)
	s.MedianPctMove = median(moves)
	return s
}

// FormatSummary renders the summary as a metric/value table with fixed
// decimal precision: percentages 2 places, means and medians 6, hit rate 4.
func FormatSummary(s domain.Summary) []domain.SummaryMetric {
	return []domain.SummaryMetric{
		{Metric: MetricRows, Value: strconv.Itoa(s.Rows)},
		{Metric: MetricDroppedDays, Value: strconv.Itoa(s.DroppedDays)},
		{Metric: MetricPctMissingClose11am, Value: fixed(s.PctMissingClose11am, 2)},
		{Metric: MetricMeanPctChange5Min, Value: fixed(s.MeanPctChange5Min, 6)},
		{Metric: MetricMedianPctChange5Min, Value: fixed(s.MedianPctChange5Min, 6)},
		{Metric: MetricMeanPctMove, Value: fixed(s.MeanPctMove, 6)},
		{Metric: MetricMedianPctMove, Value: fixed(s.MedianPctMove, 6)},
		{Metric: MetricHitRate, Value: fixed(s.HitRate, 4)},
	}
}

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
