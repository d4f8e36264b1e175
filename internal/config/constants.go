package config

import "time"

// Application constants
const (
	AppName = "openrange"

	// EnvPrefix namespaces every environment override, e.g. ORB_SESSION_TIMEZONE.
	EnvPrefix = "ORB"

	// Trading session defaults: US equities, opening range 09:30-09:34,
	// outcome window through 11:00 local.
	DefaultTimezone       = "America/New_York"
	DefaultOpenTime       = "09:30:00"
	DefaultOpeningMinutes = 5
	DefaultCutoffTime     = "11:00:00"
	DefaultTouchTolerance = 1e-9

	// Output defaults
	DefaultOutputDir   = "data/features"
	DefaultDailyFile   = "daily_features.csv"
	DefaultSummaryFile = "summary.csv"

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/openrange.log"

	// Operation timeouts
	DefaultRunTimeout = 10 * time.Minute

	// ClockLayout is the canonical time-of-day layout used for session
	// boundaries and bar bucket keys.
	ClockLayout = "15:04:05"
)

// Input file extensions accepted by the tabular reader.
var SupportedInputExtensions = []string{".csv", ".xlsx"}
