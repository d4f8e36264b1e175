package domain

import (
	"time"
)

// RawField is one name/value pair of a source row, exactly as read.
type RawField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawRow is an ordered list of fields for one source row. Order matters:
// when two names collide after normalization the later field wins.
type RawRow []RawField

// NewRawRow zips a header and a record into a RawRow. Extra header
// entries get empty values; extra record entries are ignored.
func NewRawRow(header, record []string) RawRow {
	row := make(RawRow, len(header))
	for i, name := range header {
		value := ""
		if i < len(record) {
			value = record[i]
		}
		row[i] = RawField{Name: name, Value: value}
	}
	return row
}

// Bar represents one minute of market activity for a single security.
// Missing prices and volume are stored as NaN; BarCount and Average are
// nil when the source did not supply a finite value.
type Bar struct {
	Instant  time.Time `json:"instant"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
	BarCount *float64  `json:"bar_count,omitempty"`
	Average  *float64  `json:"average,omitempty"`
}

// TradingDay holds one calendar day's bars in the trading zone, sorted
// ascending by instant.
type TradingDay struct {
	Date time.Time `json:"date"`
	Bars []Bar     `json:"bars"`
}

// Key returns the canonical YYYY-MM-DD key of the day.
func (d TradingDay) Key() string {
	return d.Date.Format(DateLayout)
}

// DateLayout is the layout used for every date column produced by the system.
const DateLayout = "2006-01-02"
