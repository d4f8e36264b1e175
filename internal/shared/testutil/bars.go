package testutil

import (
	"fmt"
	"testing"
	"time"

	"openrange/pkg/contracts/domain"

	_ "time/tzdata"
)

// NewYork loads the America/New_York zone or fails the test.
func NewYork(t testing.TB) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

// MinuteBar builds a bar at hh:mm on day's date in day's location.
func MinuteBar(day time.Time, hh, mm int, open, high, low, close, volume float64) domain.Bar {
	y, m, d := day.Date()
	return domain.Bar{
		Instant: time.Date(y, m, d, hh, mm, 0, 0, day.Location()),
		Open:    open,
		High:    high,
		Low:     low,
		Close:   close,
		Volume:  volume,
	}
}

// ScenarioBar is one row of the reference trading day.
type ScenarioBar struct {
	Clock                  string
	Open, High, Low, Close float64
	Volume                 float64
}

// ScenarioBars describes 2024-01-02: opening range 100 → 100.9 with extremes
// 101.5/99.5, then a push to 103.5 at 09:50 and a fade to 98.5 at 11:00.
// The 11:01 bar lies outside the outcome window.
var ScenarioBars = []ScenarioBar{
	{"09:30", 100.0, 100.6, 99.5, 100.5, 1000},
	{"09:31", 100.5, 101.0, 100.2, 100.8, 1200},
	{"09:32", 100.8, 101.5, 100.6, 101.2, 900},
	{"09:33", 101.2, 101.3, 100.7, 101.0, 1100},
	{"09:34", 101.0, 101.1, 100.8, 100.9, 800},
	{"09:35", 100.9, 101.6, 100.5, 101.0, 700},
	{"09:50", 102.0, 103.5, 101.9, 103.0, 1500},
	{"10:30", 102.0, 102.5, 99.0, 99.5, 1300},
	{"11:00", 99.0, 99.2, 98.5, 98.8, 600},
	{"11:01", 98.8, 110.0, 90.0, 98.9, 400},
}

// ScenarioDate is the calendar date of ScenarioBars.
const ScenarioDate = "2024-01-02"

// ScenarioDay returns ScenarioBars as a trading day in loc.
func ScenarioDay(loc *time.Location) domain.TradingDay {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, loc)
	day := domain.TradingDay{Date: date}
	for _, b := range ScenarioBars {
		var hh, mm int
		fmt.Sscanf(b.Clock, "%d:%d", &hh, &mm)
		day.Bars = append(day.Bars, MinuteBar(date, hh, mm, b.Open, b.High, b.Low, b.Close, b.Volume))
	}
	return day
}

// RawBarRow builds a raw row the way a CSV reader would hand it over.
func RawBarRow(date, clock string, open, high, low, close, volume float64) domain.RawRow {
	f := func(v float64) string { return fmt.Sprintf("%g", v) }
	return domain.RawRow{
		{Name: "date", Value: date},
		{Name: "time", Value: clock},
		{Name: "open", Value: f(open)},
		{Name: "high", Value: f(high)},
		{Name: "low", Value: f(low)},
		{Name: "close", Value: f(close)},
		{Name: "volume", Value: f(volume)},
	}
}

// ScenarioRows returns ScenarioBars as raw rows dated date (YYYYMMDD),
// skipping the given clock times.
func ScenarioRows(date string, skip ...string) []domain.RawRow {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var rows []domain.RawRow
	for _, b := range ScenarioBars {
		if skipped[b.Clock] {
			continue
		}
		rows = append(rows, RawBarRow(date, b.Clock+":00", b.Open, b.High, b.Low, b.Close, b.Volume))
	}
	return rows
}
