package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openrange/internal/config"
	"openrange/internal/errors"
	"openrange/internal/operations"
	"openrange/internal/shared/testutil"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Output.ParquetFile = "daily.parquet"
	cfg.Telemetry.MetricsTextfile = filepath.Join(dir, "openrange.prom")
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, opts ...Option) (*Application, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	app, err := NewApplication(cfg, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	return app, handler
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,time,open,high,low,close,volume\n")
	for _, bar := range testutil.ScenarioBars {
		fmt.Fprintf(&b, "2024-01-02,%s,%g,%g,%g,%g,%g\n", bar.Clock, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	path := filepath.Join(dir, "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestNewApplication_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Timezone = "Mars/Olympus_Mons"

	logger, _ := testutil.NewTestLogger(t)
	_, err := NewApplication(cfg, WithLogger(logger))
	assert.Error(t, err)
}

func TestApplication_Run(t *testing.T) {
	cfg := testConfig(t)
	app, logs := newTestApp(t, cfg)

	input := writeInput(t, t.TempDir())
	resp, err := app.Run(context.Background(), operations.OperationRequest{InputPath: input})
	require.NoError(t, err)

	assert.Equal(t, operations.OperationStatusCompleted, resp.Status)
	require.Len(t, resp.Batch.DailyRows, 1)
	assert.Len(t, resp.Batch.Outputs, 3)
	for _, path := range []string{cfg.Output.DailyPath(), cfg.Output.SummaryPath(), cfg.Output.ParquetPath()} {
		assert.FileExists(t, path)
	}

	prom, err := os.ReadFile(cfg.Telemetry.MetricsTextfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "openrange_rows_read_total")
	assert.Contains(t, string(prom), "openrange_daily_rows_total")

	assert.True(t, logs.ContainsMessage("Application starting"))
	assert.True(t, logs.ContainsMessage("outputs written"))
}

func TestApplication_RunMissingInput(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	resp, err := app.Run(context.Background(), operations.OperationRequest{
		InputPath: filepath.Join(t.TempDir(), "missing.csv"),
	})
	require.Error(t, err)
	assert.Nil(t, resp)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrTypeNotFound, appErr.Type)
}

func TestApplication_TracingToWriter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.ParquetFile = ""
	cfg.Telemetry.EnableTracing = true
	cfg.Telemetry.TraceExporter = "stdout"

	var spans bytes.Buffer
	app, _ := newTestApp(t, cfg, WithTraceWriter(&spans))

	_, err := app.Run(context.Background(), operations.OperationRequest{Rows: testutil.ScenarioRows("20240102")})
	require.NoError(t, err)
	require.NoError(t, app.OTelProviders.Shutdown(context.Background()))

	assert.Contains(t, spans.String(), "operation.execute")
	assert.Contains(t, spans.String(), "operation.step.features")
}
