package domain

import (
	"time"
)

// FirstTouch records which outcome-window extreme was reached first.
type FirstTouch string

const (
	FirstTouchNone FirstTouch = ""
	FirstTouchUp   FirstTouch = "up"
	FirstTouchDown FirstTouch = "down"
)

// IsSet reports whether a side was resolved.
func (f FirstTouch) IsSet() bool {
	return f == FirstTouchUp || f == FirstTouchDown
}

// DailyRow is one trading day's feature record. Float fields hold NaN when
// the value could not be derived.
type DailyRow struct {
	Date time.Time `json:"date"`

	// Opening range, 09:30-09:34
	OpenDay       float64 `json:"open_day"`
	High5Min      float64 `json:"high_5min"`
	Low5Min       float64 `json:"low_5min"`
	Close5Min     float64 `json:"close_5min"`
	Range5Min     float64 `json:"range_5min"`
	Body5Min      float64 `json:"body_5min"`
	PctChange5Min float64 `json:"pct_change_5min"`
	Volume5Min    float64 `json:"volume_5min"`
	VWAP5Min      float64 `json:"vwap_5min"`

	// Outcome window, 09:35-11:00
	HighTo11am      float64 `json:"high_to_11am"`
	LowTo11am       float64 `json:"low_to_11am"`
	Close11am       float64 `json:"close_11am"`
	RangeTo11am     float64 `json:"range_to_11am"`
	PctChangeTo11am float64 `json:"pct_change_to_11am"`

	// Labels
	PctMove        float64    `json:"pct_move"`
	DirectionPeak  int        `json:"direction_peak"`
	Hit5MinDir     int        `json:"hit_5min_dir"`
	TimeFirstTouch FirstTouch `json:"time_first_touch"`
}

// DailyColumns is the fixed column order of the daily feature table.
var DailyColumns = []string{
	"date",
	"open_day",
	"high_5min",
	"low_5min",
	"close_5min",
	"range_5min",
	"body_5min",
	"pct_change_5min",
	"volume_5min",
	"vwap_5min",
	"high_to_11am",
	"low_to_11am",
	"close_11am",
	"range_to_11am",
	"pct_change_to_11am",
	"pct_move",
	"direction_peak",
	"hit_5min_dir",
	"time_first_touch",
}
