package features

import (
	"fmt"
	"time"

	"openrange/internal/config"
)

// clockKeyLayout is the canonical time-of-day key of the day index.
const clockKeyLayout = config.ClockLayout

// Schedule fixes the clock-time buckets of a trading day. Offsets are
// wall-clock durations since local midnight.
type Schedule struct {
	Open           time.Duration
	OpeningMinutes int
	Cutoff         time.Duration
	TouchTolerance float64
}

// DefaultSchedule is the US equity session: opening range 09:30-09:34,
// outcome window through 11:00.
func DefaultSchedule() Schedule {
	return Schedule{
		Open:           9*time.Hour + 30*time.Minute,
		OpeningMinutes: config.DefaultOpeningMinutes,
		Cutoff:         11 * time.Hour,
		TouchTolerance: config.DefaultTouchTolerance,
	}
}

// ScheduleFromConfig builds a schedule from session settings.
func ScheduleFromConfig(cfg config.SessionConfig) (Schedule, error) {
	open, err := config.ParseClock(cfg.OpenTime)
	if err != nil {
		return Schedule{}, err
	}
	cutoff, err := config.ParseClock(cfg.CutoffTime)
	if err != nil {
		return Schedule{}, err
	}
	if cfg.OpeningMinutes < 1 {
		return Schedule{}, fmt.Errorf("opening minutes must be positive, got %d", cfg.OpeningMinutes)
	}
	return Schedule{
		Open:           open,
		OpeningMinutes: cfg.OpeningMinutes,
		Cutoff:         cutoff,
		TouchTolerance: cfg.TouchTolerance,
	}, nil
}

// OpeningKeys lists the mandatory opening-range clock keys in order.
func (s Schedule) OpeningKeys() []string {
	keys := make([]string, s.OpeningMinutes)
	for i := range keys {
		keys[i] = clockKey(s.Open + time.Duration(i)*time.Minute)
	}
	return keys
}

// OutcomeStart is the first clock time of the outcome window.
func (s Schedule) OutcomeStart() time.Duration {
	return s.Open + time.Duration(s.OpeningMinutes)*time.Minute
}

// CutoffKey is the clock key of the bar whose close is close_11am.
func (s Schedule) CutoffKey() string {
	return clockKey(s.Cutoff)
}

// InOutcome reports whether t's wall clock lies in [OutcomeStart, Cutoff].
func (s Schedule) InOutcome(t time.Time) bool {
	c := clockOf(t)
	return c >= s.OutcomeStart() && c <= s.Cutoff
}

func clockKey(d time.Duration) string {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format(clockKeyLayout)
}

// clockOf returns the wall-clock offset of t from its local midnight,
// independent of DST transitions earlier in the day.
func clockOf(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}
