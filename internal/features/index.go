package features

import "openrange/pkg/contracts/domain"

// dayIndex maps canonical HH:MM:SS keys to a day's bars. Only bars sitting
// exactly on a second boundary are indexed.
type dayIndex map[string]domain.Bar

func indexDay(bars []domain.Bar) dayIndex {
	idx := make(dayIndex, len(bars))
	for _, b := range bars {
		if b.Instant.Nanosecond() != 0 {
			continue
		}
		key := b.Instant.Format(clockKeyLayout)
		if _, ok := idx[key]; !ok {
			idx[key] = b
		}
	}
	return idx
}

// lookup returns the bars for keys in order plus the keys with no bar.
func (idx dayIndex) lookup(keys []string) ([]domain.Bar, []string) {
	bars := make([]domain.Bar, 0, len(keys))
	var missing []string
	for _, k := range keys {
		b, ok := idx[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		bars = append(bars, b)
	}
	return bars, missing
}
