package operations

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"openrange/internal/config"
	"openrange/internal/dataprocessing"
	"openrange/internal/exporter"
	"openrange/internal/features"
	"openrange/internal/files"
	"openrange/internal/infrastructure"
	"openrange/internal/validation"
)

// Dependencies holds the collaborators the standard steps run against.
type Dependencies struct {
	Logger     *slog.Logger
	Reader     *files.Reader
	Normalizer *dataprocessing.Normalizer
	Series     *dataprocessing.SeriesBuilder
	Calculator *features.Calculator
	Daily      *exporter.DailyExporter
	Summary    *exporter.SummaryExporter
	Parquet    *exporter.ParquetExporter
	Output     config.OutputConfig
	Metrics    *infrastructure.PipelineMetrics

	// ValidateRows checks label invariants of every produced row.
	ValidateRows bool
}

// RegisterDefaultSteps registers load → normalize → series → features →
// summary → export on r.
func RegisterDefaultSteps(r *Registry, deps Dependencies) error {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	steps := []Step{
		NewLoadStep(deps.Reader, deps.Logger),
		NewNormalizeStep(deps.Normalizer, deps.Metrics),
		NewSeriesStep(deps.Series, deps.Metrics),
		NewFeaturesStep(deps.Calculator, deps.Metrics, deps.ValidateRows),
		NewSummaryStep(),
		NewExportStep(deps.Daily, deps.Summary, deps.Parquet, deps.Output, deps.Logger),
	}
	for _, step := range steps {
		if err := r.Register(step); err != nil {
			return fmt.Errorf("failed to register step %s: %w", step.ID(), err)
		}
	}
	return nil
}

// LoadStep discovers the input files and reads their rows
type LoadStep struct {
	BaseStep
	reader *files.Reader
	logger *slog.Logger
}

// NewLoadStep creates a new input loading step
func NewLoadStep(reader *files.Reader, logger *slog.Logger) *LoadStep {
	if reader == nil {
		reader = files.NewReader(logger)
	}
	return &LoadStep{
		BaseStep: NewBaseStep(StepIDLoad, StepNameLoad),
		reader:   reader,
		logger:   logger,
	}
}

// Validate requires either an input path or inline rows
func (s *LoadStep) Validate(state *OperationState) error {
	if state.Batch.InputPath == "" && len(state.Batch.Rows) == 0 {
		return fmt.Errorf("no input path and no inline rows")
	}
	return nil
}

// Execute reads every discovered file in name order
func (s *LoadStep) Execute(ctx context.Context, state *OperationState) error {
	batch := state.Batch
	step := state.GetStep(s.ID())

	if batch.InputPath == "" {
		step.SetMetadata("source", "inline")
		step.SetMetadata("rows", len(batch.Rows))
		return nil
	}

	inputs, err := files.Discover(batch.InputPath)
	if err != nil {
		return err
	}
	batch.Files = inputs

	rows, err := s.reader.ReadAll(ctx, inputs)
	if err != nil {
		return err
	}
	batch.Rows = rows

	step.SetMetadata("files", len(inputs))
	step.SetMetadata("rows", len(rows))
	s.logger.InfoContext(ctx, "input loaded",
		slog.String("path", batch.InputPath),
		slog.Int("files", len(inputs)),
		slog.Int("rows", len(rows)))
	return nil
}

// NormalizeStep turns raw rows into bars
type NormalizeStep struct {
	BaseStep
	normalizer *dataprocessing.Normalizer
	metrics    *infrastructure.PipelineMetrics
}

// NewNormalizeStep creates a new normalization step
func NewNormalizeStep(normalizer *dataprocessing.Normalizer, metrics *infrastructure.PipelineMetrics) *NormalizeStep {
	return &NormalizeStep{
		BaseStep:   NewBaseStep(StepIDNormalize, StepNameNormalize, StepIDLoad),
		normalizer: normalizer,
		metrics:    metrics,
	}
}

// Validate requires a normalizer
func (s *NormalizeStep) Validate(state *OperationState) error {
	if s.normalizer == nil {
		return fmt.Errorf("normalizer not configured")
	}
	return nil
}

// Execute normalizes every row; unresolvable rows are dropped, not fatal
func (s *NormalizeStep) Execute(ctx context.Context, state *OperationState) error {
	batch := state.Batch
	batch.Bars, batch.NormalizeStats = s.normalizer.NormalizeAll(ctx, batch.Rows)

	s.metrics.RecordRows(ctx, batch.NormalizeStats.Rows, batch.NormalizeStats.Dropped)
	step := state.GetStep(s.ID())
	step.SetMetadata("bars", batch.NormalizeStats.Bars)
	step.SetMetadata("dropped_rows", batch.NormalizeStats.Dropped)
	step.SetMetadata("missing_numeric", batch.NormalizeStats.MissingNumeric)
	return ctx.Err()
}

// SeriesStep de-duplicates bars and groups them into trading days
type SeriesStep struct {
	BaseStep
	builder *dataprocessing.SeriesBuilder
	metrics *infrastructure.PipelineMetrics
}

// NewSeriesStep creates a new series building step
func NewSeriesStep(builder *dataprocessing.SeriesBuilder, metrics *infrastructure.PipelineMetrics) *SeriesStep {
	return &SeriesStep{
		BaseStep: NewBaseStep(StepIDSeries, StepNameSeries, StepIDNormalize),
		builder:  builder,
		metrics:  metrics,
	}
}

// Validate requires a series builder
func (s *SeriesStep) Validate(state *OperationState) error {
	if s.builder == nil {
		return fmt.Errorf("series builder not configured")
	}
	return nil
}

// Execute builds the ordered trading days
func (s *SeriesStep) Execute(ctx context.Context, state *OperationState) error {
	batch := state.Batch
	batch.Days = s.builder.Build(batch.Bars)

	distinct := 0
	for _, day := range batch.Days {
		distinct += len(day.Bars)
	}
	s.metrics.RecordSeries(ctx, distinct, len(batch.Days))
	step := state.GetStep(s.ID())
	step.SetMetadata("bars", distinct)
	step.SetMetadata("days", len(batch.Days))
	return ctx.Err()
}

// FeaturesStep computes one feature row per qualifying day
type FeaturesStep struct {
	BaseStep
	calculator   *features.Calculator
	metrics      *infrastructure.PipelineMetrics
	validateRows bool
}

// NewFeaturesStep creates a new daily feature step
func NewFeaturesStep(calculator *features.Calculator, metrics *infrastructure.PipelineMetrics, validateRows bool) *FeaturesStep {
	return &FeaturesStep{
		BaseStep:     NewBaseStep(StepIDFeatures, StepNameFeatures, StepIDSeries),
		calculator:   calculator,
		metrics:      metrics,
		validateRows: validateRows,
	}
}

// Validate requires a calculator
func (s *FeaturesStep) Validate(state *OperationState) error {
	if s.calculator == nil {
		return fmt.Errorf("feature calculator not configured")
	}
	return nil
}

// Execute computes the rows; days without a complete opening range are
// counted as dropped
func (s *FeaturesStep) Execute(ctx context.Context, state *OperationState) error {
	batch := state.Batch
	batch.DailyRows, batch.DroppedDays = s.calculator.ComputeAll(ctx, batch.Days)

	if s.validateRows {
		for _, row := range batch.DailyRows {
			if err := validation.ValidateDailyRow(row); err != nil {
				return fmt.Errorf("row %s: %w", row.Date.Format("2006-01-02"), err)
			}
		}
	}

	s.metrics.RecordFeatures(ctx, len(batch.DailyRows), batch.DroppedDays)
	step := state.GetStep(s.ID())
	step.SetMetadata("rows", len(batch.DailyRows))
	step.SetMetadata("dropped_days", batch.DroppedDays)
	return ctx.Err()
}

// SummaryStep aggregates the daily rows
type SummaryStep struct {
	BaseStep
}

// NewSummaryStep creates a new summary step
func NewSummaryStep() *SummaryStep {
	return &SummaryStep{
		BaseStep: NewBaseStep(StepIDSummary, StepNameSummary, StepIDFeatures),
	}
}

// Execute computes and formats the summary
func (s *SummaryStep) Execute(ctx context.Context, state *OperationState) error {
	batch := state.Batch
	batch.Summary = dataprocessing.Summarize(batch.DailyRows, batch.DroppedDays)
	batch.Metrics = dataprocessing.FormatSummary(batch.Summary)
	return ctx.Err()
}

// ExportStep writes the output tables concurrently
type ExportStep struct {
	BaseStep
	daily   *exporter.DailyExporter
	summary *exporter.SummaryExporter
	parquet *exporter.ParquetExporter
	output  config.OutputConfig
	logger  *slog.Logger
}

// NewExportStep creates a new export step. A nil parquet exporter or an
// empty parquet file name disables the Parquet copy.
func NewExportStep(daily *exporter.DailyExporter, summary *exporter.SummaryExporter, parquet *exporter.ParquetExporter, output config.OutputConfig, logger *slog.Logger) *ExportStep {
	if daily == nil {
		daily = exporter.NewDailyExporter(nil, output.BOM)
	}
	if summary == nil {
		summary = exporter.NewSummaryExporter(nil, output.BOM)
	}
	return &ExportStep{
		BaseStep: NewBaseStep(StepIDExport, StepNameExport, StepIDSummary),
		daily:    daily,
		summary:  summary,
		parquet:  parquet,
		output:   output,
		logger:   logger,
	}
}

// Validate requires an output directory
func (s *ExportStep) Validate(state *OperationState) error {
	if s.output.Dir == "" {
		return fmt.Errorf("output directory not configured")
	}
	return nil
}

// Execute writes the daily CSV, the summary CSV and the optional Parquet
// copy. Each file is replaced atomically.
func (s *ExportStep) Execute(ctx context.Context, state *OperationState) error {
	batch := state.Batch
	g, gctx := errgroup.WithContext(ctx)

	outputs := []string{s.output.DailyPath(), s.output.SummaryPath()}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return s.daily.Export(s.output.DailyPath(), batch.DailyRows)
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return s.summary.Export(s.output.SummaryPath(), batch.Metrics)
	})

	if path := s.output.ParquetPath(); path != "" && s.parquet != nil {
		outputs = append(outputs, path)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.parquet.Export(path, batch.DailyRows)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	batch.Outputs = outputs
	state.GetStep(s.ID()).SetMetadata("outputs", outputs)
	s.logger.InfoContext(ctx, "outputs written",
		slog.Any("files", outputs),
		slog.Int("daily_rows", len(batch.DailyRows)))
	return nil
}
