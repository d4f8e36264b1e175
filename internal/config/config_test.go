package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "America/New_York", cfg.Session.Timezone)
	assert.Equal(t, "09:30:00", cfg.Session.OpenTime)
	assert.Equal(t, 5, cfg.Session.OpeningMinutes)
	assert.Equal(t, "11:00:00", cfg.Session.CutoffTime)
	assert.InDelta(t, 1e-9, cfg.Session.TouchTolerance, 0)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Output.ParquetFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		env         map[string]string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults when file is empty",
			file: "",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
				assert.Equal(t, "info", cfg.Logging.Level)
			},
		},
		{
			name: "yaml overrides defaults",
			file: "session:\n  timezone: America/Chicago\n  open_time: \"08:30:00\"\n  cutoff_time: \"10:00:00\"\noutput:\n  parquet_file: daily.parquet\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "America/Chicago", cfg.Session.Timezone)
				assert.Equal(t, "08:30:00", cfg.Session.OpenTime)
				assert.Equal(t, 5, cfg.Session.OpeningMinutes)
				assert.Equal(t, "daily.parquet", cfg.Output.ParquetFile)
			},
		},
		{
			name: "environment overrides yaml",
			file: "logging:\n  level: warn\n",
			env: map[string]string{
				"ORB_LOGGING_LEVEL":           "debug",
				"ORB_SESSION_TOUCH_TOLERANCE": "0.001",
				"ORB_OUTPUT_DIR":              "/tmp/out",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.InDelta(t, 0.001, cfg.Session.TouchTolerance, 1e-12)
				assert.Equal(t, "/tmp/out", cfg.Output.Dir)
			},
		},
		{
			name:    "invalid timezone",
			file:    "session:\n  timezone: Mars/Olympus\n",
			wantErr: true,
		},
		{
			name:    "invalid clock",
			file:    "session:\n  open_time: \"9h30\"\n",
			wantErr: true,
		},
		{
			name:    "cutoff before opening range ends",
			file:    "session:\n  cutoff_time: \"09:32:00\"\n",
			wantErr: true,
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"ORB_LOGGING_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "session: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfigFile(t, tt.file)

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"09:30:00", 9*time.Hour + 30*time.Minute, false},
		{"11:00", 11 * time.Hour, false},
		{" 15:59:30 ", 15*time.Hour + 59*time.Minute + 30*time.Second, false},
		{"25:00:00", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputPaths(t *testing.T) {
	out := OutputConfig{Dir: "out", DailyFile: "d.csv", SummaryFile: "s.csv"}

	assert.Equal(t, filepath.Join("out", "d.csv"), out.DailyPath())
	assert.Equal(t, filepath.Join("out", "s.csv"), out.SummaryPath())
	assert.Empty(t, out.ParquetPath())

	out.ParquetFile = "d.parquet"
	assert.Equal(t, filepath.Join("out", "d.parquet"), out.ParquetPath())
}

func TestSessionLocation(t *testing.T) {
	loc, err := Default().Session.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}
