package features

import (
	"context"
	"log/slog"

	"openrange/internal/errors"
	"openrange/pkg/contracts/domain"
)

// Calculator turns trading days into daily feature rows.
type Calculator struct {
	schedule Schedule
	logger   *slog.Logger
}

// NewCalculator creates a calculator for the given schedule.
func NewCalculator(schedule Schedule, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		schedule: schedule,
		logger:   logger.With("component", "features"),
	}
}

// Schedule returns the calculator's clock-time schedule.
func (c *Calculator) Schedule() Schedule {
	return c.schedule
}

// Compute derives the feature row for one day. Bars must be sorted
// ascending. A day missing any opening-range bar returns an error wrapping
// errors.ErrIncompleteOpeningRange.
func (c *Calculator) Compute(day domain.TradingDay) (domain.DailyRow, error) {
	idx := indexDay(day.Bars)

	opening, missing := idx.lookup(c.schedule.OpeningKeys())
	if len(missing) > 0 {
		return domain.DailyRow{}, errors.NewIncompleteOpeningRangeError(day.Key(), missing)
	}

	row := domain.DailyRow{Date: day.Date}
	openingRange(&row, opening)

	outcome := c.outcomeBars(day.Bars)
	outcomeWindow(&row, outcome, idx, c.schedule.CutoffKey())
	labels(&row)
	row.TimeFirstTouch = firstTouch(outcome, row.HighTo11am, row.LowTo11am, c.schedule.TouchTolerance)

	return row, nil
}

// ComputeAll computes every qualifying day in order and returns the rows
// together with the number of dropped days.
func (c *Calculator) ComputeAll(ctx context.Context, days []domain.TradingDay) ([]domain.DailyRow, int) {
	rows := make([]domain.DailyRow, 0, len(days))
	dropped := 0

	for _, day := range days {
		row, err := c.Compute(day)
		if err != nil {
			dropped++
			c.logger.DebugContext(ctx, "day dropped",
				slog.String("date", day.Key()),
				slog.String("error", err.Error()))
			continue
		}
		rows = append(rows, row)
	}

	c.logger.InfoContext(ctx, "daily features computed",
		slog.Int("days", len(days)),
		slog.Int("rows", len(rows)),
		slog.Int("dropped", dropped))
	return rows, dropped
}
