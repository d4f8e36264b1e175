package synthetic

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"openrange/internal/config"
	"openrange/internal/exporter"
	"openrange/pkg/contracts/domain"
)

// BarsPerDay is the number of one-minute bars from 09:30 up to 16:00.
const BarsPerDay = 390

// Config configures synthetic session generation
type Config struct {
	Days       int            // weekdays to generate
	Start      time.Time      // first candidate date; weekends are skipped
	Location   *time.Location // trading zone, UTC when nil
	BasePrice  float64        // first open
	Volatility float64        // daily volatility as a fraction, e.g. 0.02
	// MissingOpeningRate is the chance that a day loses one of its first
	// five bars and so cannot produce a feature row.
	MissingOpeningRate float64
}

// DefaultConfig returns a config for a month of sessions
func DefaultConfig() Config {
	return Config{
		Days:               20,
		Start:              time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		BasePrice:          480,
		Volatility:         0.02,
		MissingOpeningRate: 0.1,
	}
}

// Generator creates seeded minute-bar sessions
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a specific seed
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Generate returns cfg.Days sessions of bars in time order
func (g *Generator) Generate(cfg Config) []domain.Bar {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if cfg.BasePrice <= 0 {
		cfg.BasePrice = DefaultConfig().BasePrice
	}

	y, m, d := cfg.Start.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, loc)
	price := cfg.BasePrice

	bars := make([]domain.Bar, 0, cfg.Days*BarsPerDay)
	for generated := 0; generated < cfg.Days; date = date.AddDate(0, 0, 1) {
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		day := g.generateDay(date, price, cfg)
		if g.rng.Float64() < cfg.MissingOpeningRate {
			gap := g.rng.Intn(5)
			day = append(day[:gap], day[gap+1:]...)
		}
		bars = append(bars, day...)
		price = day[len(day)-1].Close
		generated++
	}
	return bars
}

// generateDay builds one session as a random walk that starts from open
func (g *Generator) generateDay(date time.Time, open float64, cfg Config) []domain.Bar {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 9, 30, 0, 0, date.Location())
	minuteVol := cfg.Volatility / math.Sqrt(BarsPerDay)

	bars := make([]domain.Bar, BarsPerDay)
	prevClose := open
	for i := 0; i < BarsPerDay; i++ {
		// Opening minutes are busier
		vol := minuteVol
		if i < 30 {
			vol *= 2
		}
		close := prevClose * (1 + g.rng.NormFloat64()*vol)
		bars[i] = g.generateBar(start.Add(time.Duration(i)*time.Minute), prevClose, close, open)
		prevClose = bars[i].Close
	}
	return bars
}

// generateBar derives a bar around the open/close pair with small wicks
func (g *Generator) generateBar(ts time.Time, prevClose, close, basePrice float64) domain.Bar {
	gap := (g.rng.Float64() - 0.5) * 0.001
	open := cents(prevClose * (1 + gap))
	close = cents(close)

	wick := basePrice * 0.001
	high := cents(math.Max(open, close) + g.rng.Float64()*wick)
	low := cents(math.Min(open, close) - g.rng.Float64()*wick)
	if low <= 0 {
		low = 0.01
	}

	move := math.Abs(close-open) / basePrice
	volume := float64(5000+g.rng.Intn(10000)) * (1 + move*20)

	return domain.Bar{
		Instant: ts,
		Open:    open,
		High:    high,
		Low:     low,
		Close:   close,
		Volume:  math.Round(volume),
	}
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Columns is the header of generated tables.
var Columns = []string{"date", "time", "open", "high", "low", "close", "volume"}

// Records renders bars as date/time/OHLCV string records in their own zone
func Records(bars []domain.Bar) [][]string {
	records := make([][]string, len(bars))
	for i, b := range bars {
		records[i] = []string{
			b.Instant.Format(domain.DateLayout),
			b.Instant.Format(config.ClockLayout),
			fmt.Sprint(b.Open),
			fmt.Sprint(b.High),
			fmt.Sprint(b.Low),
			fmt.Sprint(b.Close),
			fmt.Sprint(b.Volume),
		}
	}
	return records
}

// RawRows renders bars the way the tabular reader hands rows over
func RawRows(bars []domain.Bar) []domain.RawRow {
	records := Records(bars)
	rows := make([]domain.RawRow, len(records))
	for i, rec := range records {
		rows[i] = domain.NewRawRow(Columns, rec)
	}
	return rows
}

// WriteCSV writes bars as a CSV table to w
func WriteCSV(w io.Writer, bars []domain.Bar) error {
	return exporter.EncodeCSV(w, exporter.WriteOptions{
		Headers: Columns,
		Records: Records(bars),
	})
}
