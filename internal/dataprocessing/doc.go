// Package dataprocessing turns raw tabular rows into trading-day bar series
// and summarizes the resulting daily feature rows.
//
// # Pipeline
//
//	[]domain.RawRow → Normalizer → []domain.Bar → SeriesBuilder → []domain.TradingDay
//	[]domain.DailyRow → Summarize → domain.Summary → FormatSummary → metric/value table
//
// The feature calculation between the two halves lives in package features.
//
// # Timestamps
//
// TimestampResolver accepts ISO-8601 timestamps with or without an offset,
// compact YYYYMMDD forms, dashed dates, date-only values and a trailing IANA
// zone name:
//
//	resolver := dataprocessing.NewTimestampResolver(loc)
//	t, err := resolver.Resolve("20240102", "09:30:00")
//
// Instants carrying an offset are converted into the trading zone. Local
// wall-clock values are read as trading-zone time.
//
// # Missing data
//
// Rows with an unresolvable timestamp are dropped and counted. Numeric
// fields that do not parse become NaN and propagate; they are never zero.
package dataprocessing
