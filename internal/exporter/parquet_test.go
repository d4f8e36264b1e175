package exporter

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrange/internal/shared/testutil"
)

func TestToParquetRow(t *testing.T) {
	rows := sampleRows(t)

	up := ToParquetRow(rows[0])
	assert.Equal(t, "2024-01-02", up.Date)
	assert.Equal(t, int32(1), up.DirectionPeak)
	require.NotNil(t, up.TimeFirstTouch)
	assert.Equal(t, "up", *up.TimeFirstTouch)

	none := ToParquetRow(rows[1])
	assert.Nil(t, none.TimeFirstTouch)
	assert.True(t, math.IsNaN(none.PctMove))
}

func TestParquetExporter_RoundTrip(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "daily.parquet")

	require.NoError(t, NewParquetExporter(nil, logger).Export(path, sampleRows(t)))

	got, err := parquet.ReadFile[ParquetDailyRow](path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2024-01-02", got[0].Date)
	assert.InDelta(t, 100.75, got[0].VWAP5Min, 1e-12)
	require.NotNil(t, got[0].TimeFirstTouch)
	assert.Equal(t, "up", *got[0].TimeFirstTouch)

	assert.Equal(t, "2024-01-03", got[1].Date)
	assert.Nil(t, got[1].TimeFirstTouch)
	assert.True(t, math.IsNaN(got[1].Close11am))
}
