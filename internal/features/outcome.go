package features

import "openrange/pkg/contracts/domain"

// outcomeBars selects the day's bars inside the outcome window, preserving
// their ascending order.
func (c *Calculator) outcomeBars(bars []domain.Bar) []domain.Bar {
	var out []domain.Bar
	for _, b := range bars {
		if c.schedule.InOutcome(b.Instant) {
			out = append(out, b)
		}
	}
	return out
}

// outcomeWindow fills the extrema and cutoff close.
func outcomeWindow(row *domain.DailyRow, bars []domain.Bar, idx dayIndex, cutoffKey string) {
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
	}
	row.HighTo11am = maxFinite(highs)
	row.LowTo11am = minFinite(lows)
	row.RangeTo11am = sub(row.HighTo11am, row.LowTo11am)

	row.Close11am = nan
	if b, ok := idx[cutoffKey]; ok {
		row.Close11am = b.Close
	}
}

// labels derives the excursion labels from the filled blocks.
func labels(row *domain.DailyRow) {
	row.PctChangeTo11am = ratio(sub(row.Close11am, row.OpenDay), row.OpenDay)

	up := ratio(sub(row.HighTo11am, row.OpenDay), row.OpenDay)
	down := ratio(sub(row.OpenDay, row.LowTo11am), row.OpenDay)

	row.PctMove = nan
	if finite(up) && finite(down) {
		if up >= down {
			row.PctMove = up
		} else {
			row.PctMove = -down
		}
	}

	// 0 covers both a flat day and a day with no usable excursion.
	row.DirectionPeak = sign(row.PctMove)

	row.Hit5MinDir = 0
	if row.DirectionPeak != 0 && sign(row.PctChange5Min) == row.DirectionPeak {
		row.Hit5MinDir = 1
	}
}
