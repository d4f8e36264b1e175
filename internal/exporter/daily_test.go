package exporter

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrange/internal/shared/testutil"
	"openrange/pkg/contracts/domain"
)

func nan() float64 { return math.NaN() }

func sampleRows(t *testing.T) []domain.DailyRow {
	loc := testutil.NewYork(t)
	return []domain.DailyRow{
		{
			Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, loc),
			OpenDay:         100,
			High5Min:        101.5,
			Low5Min:         99.5,
			Close5Min:       100.9,
			Range5Min:       2,
			Body5Min:        0.9,
			PctChange5Min:   0.9,
			Volume5Min:      5000,
			VWAP5Min:        100.75,
			HighTo11am:      103.5,
			LowTo11am:       98.5,
			Close11am:       98.8,
			RangeTo11am:     5,
			PctChangeTo11am: -1.2,
			PctMove:         -2.08,
			DirectionPeak:   1,
			Hit5MinDir:      0,
			TimeFirstTouch:  domain.FirstTouchUp,
		},
		{
			Date:            time.Date(2024, 1, 3, 0, 0, 0, 0, loc),
			OpenDay:         100,
			High5Min:        101,
			Low5Min:         99,
			Close5Min:       100,
			Range5Min:       2,
			Body5Min:        0,
			PctChange5Min:   0,
			Volume5Min:      500,
			VWAP5Min:        100,
			HighTo11am:      nan(),
			LowTo11am:       nan(),
			Close11am:       nan(),
			RangeTo11am:     nan(),
			PctChangeTo11am: nan(),
			PctMove:         nan(),
			DirectionPeak:   0,
			Hit5MinDir:      0,
			TimeFirstTouch:  domain.FirstTouchNone,
		},
	}
}

func TestDailyRecord(t *testing.T) {
	rows := sampleRows(t)

	first := DailyRecord(rows[0])
	require.Len(t, first, len(domain.DailyColumns))
	assert.Equal(t, "2024-01-02", first[0])
	assert.Equal(t, "100.75", first[9])
	assert.Equal(t, "-2.08", first[15])
	assert.Equal(t, "1", first[16])
	assert.Equal(t, "up", first[18])

	second := DailyRecord(rows[1])
	assert.Equal(t, "NaN", second[10])
	assert.Equal(t, "NaN", second[15])
	assert.Equal(t, "0", second[16])
	assert.Equal(t, "", second[18])
}

func TestDailyRecord_NonFiniteWrittenAsNaN(t *testing.T) {
	row := sampleRows(t)[0]
	row.OpenDay = math.Inf(1)
	row.Close11am = math.Inf(-1)

	record := DailyRecord(row)
	assert.Equal(t, "NaN", record[1])
	assert.Equal(t, "NaN", record[12])
	assert.NotContains(t, strings.Join(record, ","), "Inf")
}

func TestDailyExporter_Export(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "daily.csv")

	exp := NewDailyExporter(NewCSVWriter(nil, logger), false)
	require.NoError(t, exp.Export(path, sampleRows(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.DailyColumns, records[0])
	assert.Equal(t, "2024-01-03", records[2][0])
}

func TestDailyExporter_EmptyTableKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, NewDailyExporter(nil, true).Export(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	assert.Equal(t, strings.Join(domain.DailyColumns, ",")+"\n", content)
}
