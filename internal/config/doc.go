// Package config provides configuration management for the feature builder.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later sources
// overriding earlier ones:
//
//	1. Default values (Default)
//	2. A YAML file (explicit path, or config.yaml / configs/config.yaml)
//	3. Environment variables prefixed with ORB_
//
// # Environment Variables
//
// Nested sections map to underscore-joined names:
//
//	ORB_LOGGING_LEVEL=debug
//	ORB_SESSION_TIMEZONE=America/Chicago
//	ORB_SESSION_TOUCH_TOLERANCE=1e-6
//	ORB_OUTPUT_DIR=/data/out
//	ORB_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/openrange.prom
//
// # Validation
//
// Load validates the assembled configuration with struct tags. Session
// times must be HH:MM:SS clock values and the timezone must resolve through
// the IANA database.
package config
