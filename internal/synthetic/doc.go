// Package synthetic generates seeded one-minute bar sessions for demos and
// tests. Sessions run 09:30 to 16:00 on weekdays as a random walk with a
// busier opening half hour; a configurable share of days loses one
// opening-range bar.
package synthetic
