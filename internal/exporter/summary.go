package exporter

import (
	"io"
	"log/slog"

	"openrange/pkg/contracts/domain"
)

// SummaryExporter writes the metric/value table
type SummaryExporter struct {
	csvWriter *CSVWriter
	bom       bool
}

// NewSummaryExporter creates a new summary exporter
func NewSummaryExporter(csvWriter *CSVWriter, bom bool) *SummaryExporter {
	if csvWriter == nil {
		csvWriter = NewCSVWriter(nil, slog.Default())
	}
	return &SummaryExporter{csvWriter: csvWriter, bom: bom}
}

// Export writes the metrics to path
func (s *SummaryExporter) Export(path string, metrics []domain.SummaryMetric) error {
	return s.csvWriter.WriteCSV(path, WriteOptions{
		Headers:   domain.SummaryColumns,
		Records:   summaryRecords(metrics),
		BOMPrefix: s.bom,
	})
}

// WriteTo renders the metrics as CSV to out, without a BOM
func (s *SummaryExporter) WriteTo(out io.Writer, metrics []domain.SummaryMetric) error {
	return EncodeCSV(out, WriteOptions{
		Headers: domain.SummaryColumns,
		Records: summaryRecords(metrics),
	})
}

func summaryRecords(metrics []domain.SummaryMetric) [][]string {
	records := make([][]string, len(metrics))
	for i, m := range metrics {
		records[i] = []string{m.Metric, m.Value}
	}
	return records
}
