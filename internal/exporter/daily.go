package exporter

import (
	"log/slog"

	"openrange/pkg/contracts/domain"
)

// DailyExporter writes the daily feature table
type DailyExporter struct {
	csvWriter *CSVWriter
	bom       bool
}

// NewDailyExporter creates a new daily feature exporter
func NewDailyExporter(csvWriter *CSVWriter, bom bool) *DailyExporter {
	if csvWriter == nil {
		csvWriter = NewCSVWriter(nil, slog.Default())
	}
	return &DailyExporter{csvWriter: csvWriter, bom: bom}
}

// Export writes rows to path in the fixed column order
func (d *DailyExporter) Export(path string, rows []domain.DailyRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = DailyRecord(row)
	}
	return d.csvWriter.WriteCSV(path, WriteOptions{
		Headers:   domain.DailyColumns,
		Records:   records,
		BOMPrefix: d.bom,
	})
}

// DailyRecord renders one row in domain.DailyColumns order. A missing
// first touch is an empty cell.
func DailyRecord(r domain.DailyRow) []string {
	return []string{
		r.Date.Format(domain.DateLayout),
		formatFloat(r.OpenDay),
		formatFloat(r.High5Min),
		formatFloat(r.Low5Min),
		formatFloat(r.Close5Min),
		formatFloat(r.Range5Min),
		formatFloat(r.Body5Min),
		formatFloat(r.PctChange5Min),
		formatFloat(r.Volume5Min),
		formatFloat(r.VWAP5Min),
		formatFloat(r.HighTo11am),
		formatFloat(r.LowTo11am),
		formatFloat(r.Close11am),
		formatFloat(r.RangeTo11am),
		formatFloat(r.PctChangeTo11am),
		formatFloat(r.PctMove),
		formatInt(r.DirectionPeak),
		formatInt(r.Hit5MinDir),
		string(r.TimeFirstTouch),
	}
}
