package features

import "openrange/pkg/contracts/domain"

// openingRange fills the opening-range block from the ordered opening bars.
func openingRange(row *domain.DailyRow, bars []domain.Bar) {
	first, last := bars[0], bars[len(bars)-1]

	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	volume := 0.0
	for i, b := range bars {
		highs[i] = b.High
		lows[i] = b.Low
		if finite(b.Volume) {
			volume += b.Volume
		}
	}

	row.OpenDay = first.Open
	row.Close5Min = last.Close
	row.High5Min = maxFinite(highs)
	row.Low5Min = minFinite(lows)
	row.Range5Min = sub(row.High5Min, row.Low5Min)
	row.Body5Min = sub(row.Close5Min, row.OpenDay)
	row.PctChange5Min = ratio(row.Body5Min, row.OpenDay)
	row.Volume5Min = volume
	row.VWAP5Min = vwap(bars)
}

// vwap weights each bar's price by its volume. Bars without a positive
// finite volume or a usable price are skipped entirely.
func vwap(bars []domain.Bar) float64 {
	num, den := 0.0, 0.0
	for _, b := range bars {
		if !finite(b.Volume) || b.Volume <= 0 {
			continue
		}
		p := barPrice(b)
		if !finite(p) {
			continue
		}
		num += p * b.Volume
		den += b.Volume
	}
	if den == 0 {
		return nan
	}
	return num / den
}

// barPrice prefers the source-supplied average, then the typical price.
func barPrice(b domain.Bar) float64 {
	if b.Average != nil && finite(*b.Average) {
		return *b.Average
	}
	if finite(b.High) && finite(b.Low) && finite(b.Close) {
		return (b.High + b.Low + b.Close) / 3
	}
	return nan
}
