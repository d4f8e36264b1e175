package dataprocessing

import (
	"strings"
	"time"

	"openrange/internal/errors"
)

// Layouts carrying an explicit UTC or offset marker. The absolute instant
// they denote is converted into the trading zone.
var offsetLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05 Z07:00",
	"20060102T150405Z07:00",
}

// ISO layouts without a zone. Wall-clock fields are trading-zone local.
var localISOLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"20060102T150405",
}

// Explicit layouts, tried in order after the ISO forms.
var explicitLayouts = []string{
	"20060102 15:04:05",
	"20060102 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"20060102",
	"2006-01-02",
}

// TimestampResolver turns textual date/time pairs into instants in a single
// trading zone.
type TimestampResolver struct {
	loc *time.Location
}

// NewTimestampResolver creates a resolver for the given trading zone.
// A nil location means UTC.
func NewTimestampResolver(loc *time.Location) *TimestampResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &TimestampResolver{loc: loc}
}

// Location returns the trading zone.
func (r *TimestampResolver) Location() *time.Location {
	return r.loc
}

// Resolve parses date, optionally combined with a separate clock string.
// The first candidate and layout that parse win. It returns an error
// wrapping errors.ErrUnparseableTimestamp when nothing matches.
func (r *TimestampResolver) Resolve(date, clock string) (time.Time, error) {
	date = collapseSpaces(date)
	clock = collapseSpaces(clock)
	if date == "" {
		return time.Time{}, errors.NewUnparseableTimestampError(date, clock)
	}

	candidates := make([]string, 0, 2)
	if clock != "" && !looksCombined(date) {
		candidates = append(candidates, date+" "+clock)
	}
	candidates = append(candidates, date)

	for _, candidate := range candidates {
		if t, ok := r.parse(candidate); ok {
			return t, nil
		}
	}
	return time.Time{}, errors.NewUnparseableTimestampError(date, clock)
}

func (r *TimestampResolver) parse(s string) (time.Time, bool) {
	// "20240102 09:30:00 US/Eastern" style exports name the zone last.
	if i := strings.LastIndexByte(s, ' '); i > 0 {
		if zone := s[i+1:]; isZoneName(zone) {
			if loc, err := time.LoadLocation(zone); err == nil {
				if t, ok := parseIn(s[:i], loc); ok {
					return t.In(r.loc), true
				}
			}
		}
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(r.loc), true
		}
	}
	return parseIn(s, r.loc)
}

func parseIn(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range localISOLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	for _, layout := range explicitLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// looksCombined reports whether a date string already carries a time part.
func looksCombined(date string) bool {
	return strings.ContainsAny(date, ": T")
}

func isZoneName(s string) bool {
	return s == "UTC" || strings.Contains(s, "/")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
