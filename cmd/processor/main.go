package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"openrange/internal/app"
	"openrange/internal/config"
	"openrange/internal/exporter"
	"openrange/internal/operations"
	"openrange/internal/synthetic"
	"openrange/pkg/contracts"
	"openrange/pkg/contracts/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, builds the daily feature and summary tables and prints
// the summary to stdout. It returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("processor", flag.ContinueOnError)
	flags.SetOutput(stderr)
	inPath := flags.String("in", "", "input .csv/.xlsx file or directory of minute bars")
	outDir := flags.String("out", "", "output directory (overrides config)")
	configPath := flags.String("config", "", "path to a YAML config file")
	demoDays := flags.Int("demo", 0, "generate N weekdays of synthetic bars instead of reading -in")
	seed := flags.Int64("seed", 1, "seed for -demo")
	parquetFile := flags.String("parquet", "", "also write the daily table as Parquet under this file name")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	showVersion := flags.Bool("version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}
	if *inPath == "" && *demoDays <= 0 {
		fmt.Fprintln(stderr, "either -in or -demo is required")
		flags.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *parquetFile != "" {
		cfg.Output.ParquetFile = *parquetFile
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "failed to start: %v\n", err)
		return 1
	}
	defer application.Stop(context.Background())

	req := operations.OperationRequest{InputPath: *inPath}
	if *demoDays > 0 {
		rows, err := demoRows(cfg, *demoDays, *seed)
		if err != nil {
			fmt.Fprintf(stderr, "failed to generate demo data: %v\n", err)
			return 1
		}
		req = operations.OperationRequest{Rows: rows}
		application.Logger.Info("Using synthetic bars",
			slog.Int("days", *demoDays),
			slog.Int64("seed", *seed),
			slog.Int("rows", len(rows)))
	}

	resp, err := application.Run(ctx, req)
	if err != nil {
		application.Logger.Error("Run failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "run failed: %v\n", err)
		return 1
	}

	if err := exporter.NewSummaryExporter(nil, false).WriteTo(stdout, resp.Batch.Metrics); err != nil {
		fmt.Fprintf(stderr, "failed to print summary: %v\n", err)
		return 1
	}
	for _, path := range resp.Batch.Outputs {
		fmt.Fprintf(stderr, "wrote %s\n", path)
	}
	return 0
}

// demoRows generates days weekdays of bars in the session zone
func demoRows(cfg *config.Config, days int, seed int64) ([]domain.RawRow, error) {
	loc, err := cfg.Session.Location()
	if err != nil {
		return nil, err
	}
	gen := synthetic.DefaultConfig()
	gen.Days = days
	gen.Location = loc
	return synthetic.RawRows(synthetic.NewGenerator(seed).Generate(gen)), nil
}
