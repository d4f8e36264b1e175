package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"openrange/internal/config"
	"openrange/internal/files"
	"openrange/internal/infrastructure"
	"openrange/internal/synthetic"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run writes a synthetic minute-bar CSV and returns the exit code
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("demo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	out := flags.String("out", "data/demo/bars.csv", "output CSV path")
	days := flags.Int("days", 20, "number of weekdays to generate")
	seed := flags.Int64("seed", 1, "random seed")
	start := flags.String("start", "2024-01-02", "first date (YYYY-MM-DD)")
	tz := flags.String("tz", config.DefaultTimezone, "trading timezone")
	missing := flags.Float64("missing", 0.1, "share of days that lose one opening-range bar")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	logger := infrastructure.NewLogger(config.LoggingConfig{Level: "info", Format: "text"}, stderr)

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		logger.Error("Unknown timezone", slog.String("tz", *tz), slog.String("error", err.Error()))
		return 1
	}
	startDate, err := time.ParseInLocation("2006-01-02", *start, loc)
	if err != nil {
		logger.Error("Invalid start date", slog.String("start", *start), slog.String("error", err.Error()))
		return 1
	}

	cfg := synthetic.DefaultConfig()
	cfg.Days = *days
	cfg.Start = startDate
	cfg.Location = loc
	cfg.MissingOpeningRate = *missing

	bars := synthetic.NewGenerator(*seed).Generate(cfg)
	err = files.NewManager(logger).WriteAtomic(*out, func(w io.Writer) error {
		return synthetic.WriteCSV(w, bars)
	})
	if err != nil {
		logger.Error("Failed to write demo bars", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("Demo bars written",
		slog.String("path", *out),
		slog.Int("days", *days),
		slog.Int("bars", len(bars)),
		slog.Int64("seed", *seed))
	fmt.Fprintln(stderr, *out)
	return 0
}
