package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"openrange/internal/config"
	"openrange/internal/dataprocessing"
	"openrange/internal/exporter"
	"openrange/internal/features"
	"openrange/internal/files"
	"openrange/internal/infrastructure"
	"openrange/internal/operations"
	"openrange/internal/validation"
	"openrange/pkg/contracts"
)

// Application wires configuration, logging, telemetry and the step
// pipeline for one process.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Validator     *validation.FileValidator
	Manager       *operations.Manager

	ownsLogger bool
}

// Option customizes NewApplication
type Option func(*options)

type options struct {
	logger    *slog.Logger
	traceOut  io.Writer
	opsConfig *operations.Config
}

// WithLogger uses logger instead of initializing the process logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTraceWriter sends stdout-exported spans to w
func WithTraceWriter(w io.Writer) Option {
	return func(o *options) { o.traceOut = w }
}

// WithOperationsConfig overrides step timeouts and row validation
func WithOperationsConfig(cfg *operations.Config) Option {
	return func(o *options) { o.opsConfig = cfg }
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	o := options{traceOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	app := &Application{Config: cfg}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger, err := infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		app.Logger = logger
		app.ownsLogger = true
	}

	app.Logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("timezone", cfg.Session.Timezone))

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, o.traceOut, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	app.OTelProviders = providers
	app.Validator = validation.NewFileValidator(app.Logger)

	if err := app.initializePipeline(o.opsConfig); err != nil {
		// Providers are already running.
		_ = providers.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	return app, nil
}

// initializePipeline builds the collaborators and registers the steps
func (a *Application) initializePipeline(opsConfig *operations.Config) error {
	loc, err := a.Config.Session.Location()
	if err != nil {
		return fmt.Errorf("failed to load session timezone: %w", err)
	}
	schedule, err := features.ScheduleFromConfig(a.Config.Session)
	if err != nil {
		return err
	}
	if opsConfig == nil {
		opsConfig = operations.NewConfig()
	}

	fileManager := files.NewManager(a.Logger)
	csvWriter := exporter.NewCSVWriter(fileManager, a.Logger)

	var parquet *exporter.ParquetExporter
	if a.Config.Output.ParquetPath() != "" {
		parquet = exporter.NewParquetExporter(fileManager, a.Logger)
	}

	registry := operations.NewRegistry()
	err = operations.RegisterDefaultSteps(registry, operations.Dependencies{
		Logger:       a.Logger,
		Reader:       files.NewReader(a.Logger),
		Normalizer:   dataprocessing.NewNormalizer(dataprocessing.NewTimestampResolver(loc), a.Logger),
		Series:       dataprocessing.NewSeriesBuilder(loc),
		Calculator:   features.NewCalculator(schedule, a.Logger),
		Daily:        exporter.NewDailyExporter(csvWriter, a.Config.Output.BOM),
		Summary:      exporter.NewSummaryExporter(csvWriter, a.Config.Output.BOM),
		Parquet:      parquet,
		Output:       a.Config.Output,
		Metrics:      a.OTelProviders.Metrics,
		ValidateRows: opsConfig.ValidateRows,
	})
	if err != nil {
		return err
	}

	tracer := operations.NewOperationTracer(a.OTelProviders)
	a.Manager = operations.NewManager(registry, opsConfig, tracer, a.Logger)
	return nil
}

// Run executes one batch. Inputs named by req.InputPath and the output
// directory are checked before any step runs.
func (a *Application) Run(ctx context.Context, req operations.OperationRequest) (*operations.OperationResponse, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	ctx, cancel := context.WithTimeout(ctx, config.DefaultRunTimeout)
	defer cancel()

	if req.InputPath != "" {
		if _, err := a.Validator.ValidateInput(req.InputPath); err != nil {
			return nil, err
		}
	}
	if err := a.Validator.ValidateOutputDirectory(a.Config.Output.Dir); err != nil {
		return nil, err
	}

	resp, err := a.Manager.Execute(ctx, req)

	if werr := a.OTelProviders.WriteMetricsTextfile(); werr != nil {
		a.Logger.WarnContext(ctx, "Failed to write metrics textfile",
			slog.String("error", werr.Error()))
	}
	return resp, err
}

// Stop flushes telemetry and closes the log file
func (a *Application) Stop(ctx context.Context) error {
	var firstErr error
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
			firstErr = err
		}
	}
	a.Logger.InfoContext(ctx, "Application shutdown complete")

	if a.ownsLogger {
		if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
