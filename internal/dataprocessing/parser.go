package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"openrange/internal/errors"
	"openrange/pkg/contracts/domain"
)

// Canonical field names recognized in a raw row.
const (
	FieldDate     = "date"
	FieldTime     = "time"
	FieldOpen     = "open"
	FieldHigh     = "high"
	FieldLow      = "low"
	FieldClose    = "close"
	FieldVolume   = "volume"
	FieldBarCount = "barcount"
	FieldAverage  = "average"
)

// fieldAliases maps normalized header names onto canonical fields.
var fieldAliases = map[string]string{
	"date":      FieldDate,
	"time":      FieldTime,
	"timestamp": FieldTime,
	"open":      FieldOpen,
	"high":      FieldHigh,
	"low":       FieldLow,
	"close":     FieldClose,
	"volume":    FieldVolume,
	"barcount":  FieldBarCount,
	"average":   FieldAverage,
}

// NormalizeStats counts what happened to a batch of raw rows.
type NormalizeStats struct {
	Rows           int
	Bars           int
	Dropped        int
	MissingNumeric int
}

// Normalizer converts raw rows into canonical bars.
type Normalizer struct {
	resolver *TimestampResolver
	logger   *slog.Logger
	dropLog  rate.Sometimes
}

// NewNormalizer creates a normalizer resolving timestamps with resolver.
func NewNormalizer(resolver *TimestampResolver, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		resolver: resolver,
		logger:   logger.With("component", "normalizer"),
		dropLog:  rate.Sometimes{First: 5, Interval: 10 * time.Second},
	}
}

// Normalize converts one raw row. A row without a resolvable timestamp
// returns an error wrapping errors.ErrUnparseableTimestamp and should be
// skipped. The second result counts numeric fields coerced to NaN.
func (n *Normalizer) Normalize(row domain.RawRow) (domain.Bar, int, error) {
	fields := canonicalFields(row)

	instant, err := n.resolver.Resolve(fields[FieldDate], fields[FieldTime])
	if err != nil {
		return domain.Bar{}, 0, err
	}

	missing := 0
	num := func(name string) float64 {
		v, err := coerceNumber(name, fields[name])
		if err != nil {
			missing++
		}
		return v
	}

	bar := domain.Bar{
		Instant: instant,
		Open:    num(FieldOpen),
		High:    num(FieldHigh),
		Low:     num(FieldLow),
		Close:   num(FieldClose),
		Volume:  num(FieldVolume),
	}
	bar.BarCount = optionalNumber(fields[FieldBarCount])
	bar.Average = optionalNumber(fields[FieldAverage])

	return bar, missing, nil
}

// NormalizeAll converts every row, skipping those that cannot be resolved.
// It never fails; drops are counted and logged at a throttled rate.
func (n *Normalizer) NormalizeAll(ctx context.Context, rows []domain.RawRow) ([]domain.Bar, NormalizeStats) {
	stats := NormalizeStats{Rows: len(rows)}
	bars := make([]domain.Bar, 0, len(rows))

	for i, row := range rows {
		bar, missing, err := n.Normalize(row)
		if err != nil {
			stats.Dropped++
			n.dropLog.Do(func() {
				n.logger.WarnContext(ctx, "dropping row",
					slog.Int("row", i),
					slog.String("error", err.Error()))
			})
			continue
		}
		stats.MissingNumeric += missing
		bars = append(bars, bar)
	}
	stats.Bars = len(bars)

	if stats.Dropped > 0 {
		n.logger.InfoContext(ctx, "rows dropped during normalization",
			slog.Int("dropped", stats.Dropped),
			slog.Int("rows", stats.Rows))
	}
	return bars, stats
}

// canonicalFields folds a raw row into canonical names. Later fields
// overwrite earlier ones that normalize to the same name.
func canonicalFields(row domain.RawRow) map[string]string {
	fields := make(map[string]string, len(row))
	for _, f := range row {
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if canonical, ok := fieldAliases[key]; ok {
			fields[canonical] = f.Value
		}
	}
	return fields
}

// coerceNumber parses a numeric field. Empty, malformed or non-finite input
// yields NaN together with an error wrapping errors.ErrMissingNumericField.
func coerceNumber(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN(), errors.NewMissingNumericFieldError(field, raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), errors.NewMissingNumericFieldError(field, raw)
	}
	return v, nil
}

func optionalNumber(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
