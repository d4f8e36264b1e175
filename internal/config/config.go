package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Session   SessionConfig   `yaml:"session" envconfig:"SESSION"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// SessionConfig describes the trading calendar the engine buckets bars into.
type SessionConfig struct {
	Timezone       string  `yaml:"timezone" envconfig:"TIMEZONE" validate:"required,timezone"`
	OpenTime       string  `yaml:"open_time" envconfig:"OPEN_TIME" validate:"required,clock"`
	OpeningMinutes int     `yaml:"opening_minutes" envconfig:"OPENING_MINUTES" validate:"min=1,max=60"`
	CutoffTime     string  `yaml:"cutoff_time" envconfig:"CUTOFF_TIME" validate:"required,clock"`
	TouchTolerance float64 `yaml:"touch_tolerance" envconfig:"TOUCH_TOLERANCE" validate:"gte=0"`
}

// OutputConfig contains output file configuration
type OutputConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR" validate:"required"`
	DailyFile   string `yaml:"daily_file" envconfig:"DAILY_FILE" validate:"required"`
	SummaryFile string `yaml:"summary_file" envconfig:"SUMMARY_FILE" validate:"required"`
	ParquetFile string `yaml:"parquet_file" envconfig:"PARQUET_FILE"`
	BOM         bool   `yaml:"bom" envconfig:"BOM"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	EnableMetrics   bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	EnableTracing   bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	TraceExporter   string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
	Environment     string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load assembles configuration from defaults, an optional YAML file and the
// environment. An empty path searches the usual locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable keep their current value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("clock", isClock); err != nil {
		return err
	}
	if err := v.RegisterValidation("timezone", isTimezone); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return err
	}

	open, _ := ParseClock(c.Session.OpenTime)
	cutoff, _ := ParseClock(c.Session.CutoffTime)
	openingEnd := open + time.Duration(c.Session.OpeningMinutes)*time.Minute
	if cutoff < openingEnd {
		return fmt.Errorf("cutoff %s precedes the end of the opening range", c.Session.CutoffTime)
	}
	return nil
}

func isClock(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}

func isTimezone(fl validator.FieldLevel) bool {
	_, err := time.LoadLocation(fl.Field().String())
	return err == nil
}

// ParseClock converts an HH:MM:SS (or HH:MM) string into an offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid clock time %q", s)
}

// Location resolves the session timezone.
func (s SessionConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// DailyPath returns the full path of the daily feature CSV.
func (o OutputConfig) DailyPath() string {
	return filepath.Join(o.Dir, o.DailyFile)
}

// SummaryPath returns the full path of the summary CSV.
func (o OutputConfig) SummaryPath() string {
	return filepath.Join(o.Dir, o.SummaryFile)
}

// ParquetPath returns the full path of the Parquet copy, or "" when disabled.
func (o OutputConfig) ParquetPath() string {
	if o.ParquetFile == "" {
		return ""
	}
	return filepath.Join(o.Dir, o.ParquetFile)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Session: SessionConfig{
			Timezone:       DefaultTimezone,
			OpenTime:       DefaultOpenTime,
			OpeningMinutes: DefaultOpeningMinutes,
			CutoffTime:     DefaultCutoffTime,
			TouchTolerance: DefaultTouchTolerance,
		},
		Output: OutputConfig{
			Dir:         DefaultOutputDir,
			DailyFile:   DefaultDailyFile,
			SummaryFile: DefaultSummaryFile,
		},
		Telemetry: TelemetryConfig{
			EnableMetrics: true,
			TraceExporter: "none",
			Environment:   "development",
		},
	}
}
