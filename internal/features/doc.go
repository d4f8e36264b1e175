// Package features derives one DailyRow per trading day from its minute bars.
//
// A day qualifies only when every opening-range minute (09:30:00 through
// 09:34:00 by default) has a bar. The calculator then summarizes the opening
// range, scans the outcome window through the cutoff (11:00:00 inclusive) and
// labels the day with its dominant excursion, whether the opening move
// pointed that way and which extreme was touched first.
//
// Missing values are NaN and propagate: any derived quantity with a missing
// operand is itself missing.
package features
