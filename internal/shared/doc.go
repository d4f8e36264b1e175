// Package shared holds helpers used across the feature builder's packages.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log output and minute-bar fixtures for building trading days in tests:
//
//	logger, handler := testutil.NewTestLogger(t)
//	day := testutil.ScenarioDay(testutil.NewYork(t))
package shared
