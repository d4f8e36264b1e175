package files

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"openrange/internal/errors"
	"openrange/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads tabular bar files into raw rows. The first row of each file
// is its header.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger.With("component", "reader")}
}

// ReadAll reads every file in order and concatenates their rows.
func (r *Reader) ReadAll(ctx context.Context, files []FileInfo) ([]domain.RawRow, error) {
	var rows []domain.RawRow
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileRows, err := r.ReadFile(ctx, f.Path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// ReadFile reads one .csv or .xlsx file.
func (r *Reader) ReadFile(ctx context.Context, path string) ([]domain.RawRow, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		records, err = readCSVFile(path)
	case ".xlsx":
		records, err = readXLSXFile(path)
	default:
		return nil, errors.NewAppValidationError(fmt.Sprintf("unsupported input file %s", path))
	}
	if err != nil {
		return nil, errors.NewStorageError("failed to read input", err).WithContext("path", path)
	}

	rows := toRawRows(records)
	r.logger.InfoContext(ctx, "input read",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// ReadCSV parses CSV content from an arbitrary reader.
func ReadCSV(in io.Reader) ([]domain.RawRow, error) {
	records, err := parseCSV(in)
	if err != nil {
		return nil, err
	}
	return toRawRows(records), nil
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCSV(f)
}

func parseCSV(in io.Reader) ([][]string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

// readXLSXFile returns the rows of the first sheet that has any.
func readXLSXFile(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}

// toRawRows pairs every record with the header, skipping blank records.
func toRawRows(records [][]string) []domain.RawRow {
	if len(records) == 0 {
		return nil
	}
	header := records[0]
	rows := make([]domain.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, domain.NewRawRow(header, rec))
	}
	return rows
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
