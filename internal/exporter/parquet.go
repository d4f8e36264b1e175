package exporter

import (
	"io"
	"log/slog"

	"github.com/parquet-go/parquet-go"

	"openrange/internal/files"
	"openrange/pkg/contracts/domain"
)

// ParquetDailyRow is the columnar layout of a daily feature row. Missing
// floats stay NaN; a missing first touch is a null.
type ParquetDailyRow struct {
	Date            string  `parquet:"date"`
	OpenDay         float64 `parquet:"open_day"`
	High5Min        float64 `parquet:"high_5min"`
	Low5Min         float64 `parquet:"low_5min"`
	Close5Min       float64 `parquet:"close_5min"`
	Range5Min       float64 `parquet:"range_5min"`
	Body5Min        float64 `parquet:"body_5min"`
	PctChange5Min   float64 `parquet:"pct_change_5min"`
	Volume5Min      float64 `parquet:"volume_5min"`
	VWAP5Min        float64 `parquet:"vwap_5min"`
	HighTo11am      float64 `parquet:"high_to_11am"`
	LowTo11am       float64 `parquet:"low_to_11am"`
	Close11am       float64 `parquet:"close_11am"`
	RangeTo11am     float64 `parquet:"range_to_11am"`
	PctChangeTo11am float64 `parquet:"pct_change_to_11am"`
	PctMove         float64 `parquet:"pct_move"`
	DirectionPeak   int32   `parquet:"direction_peak"`
	Hit5MinDir      int32   `parquet:"hit_5min_dir"`
	TimeFirstTouch  *string `parquet:"time_first_touch,optional"`
}

// ToParquetRow converts a daily row to its columnar layout
func ToParquetRow(r domain.DailyRow) ParquetDailyRow {
	out := ParquetDailyRow{
		Date:            r.Date.Format(domain.DateLayout),
		OpenDay:         r.OpenDay,
		High5Min:        r.High5Min,
		Low5Min:         r.Low5Min,
		Close5Min:       r.Close5Min,
		Range5Min:       r.Range5Min,
		Body5Min:        r.Body5Min,
		PctChange5Min:   r.PctChange5Min,
		Volume5Min:      r.Volume5Min,
		VWAP5Min:        r.VWAP5Min,
		HighTo11am:      r.HighTo11am,
		LowTo11am:       r.LowTo11am,
		Close11am:       r.Close11am,
		RangeTo11am:     r.RangeTo11am,
		PctChangeTo11am: r.PctChangeTo11am,
		PctMove:         r.PctMove,
		DirectionPeak:   int32(r.DirectionPeak),
		Hit5MinDir:      int32(r.Hit5MinDir),
	}
	if r.TimeFirstTouch.IsSet() {
		touch := string(r.TimeFirstTouch)
		out.TimeFirstTouch = &touch
	}
	return out
}

// ParquetExporter writes the daily feature table as Parquet
type ParquetExporter struct {
	manager *files.Manager
	logger  *slog.Logger
}

// NewParquetExporter creates a new Parquet exporter
func NewParquetExporter(manager *files.Manager, logger *slog.Logger) *ParquetExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if manager == nil {
		manager = files.NewManager(logger)
	}
	return &ParquetExporter{manager: manager, logger: logger}
}

// Export writes rows to path
func (p *ParquetExporter) Export(path string, rows []domain.DailyRow) error {
	out := make([]ParquetDailyRow, len(rows))
	for i, r := range rows {
		out[i] = ToParquetRow(r)
	}

	p.logger.Info("Writing Parquet file",
		slog.String("file_path", path),
		slog.Int("record_count", len(out)))

	return p.manager.WriteAtomic(path, func(w io.Writer) error {
		return parquet.Write(w, out)
	})
}
