// Package operations runs a feature-building batch as a sequence of steps.
//
// The standard steps are:
//
//	load      discover and read .csv/.xlsx inputs (or take inline rows)
//	normalize raw rows to bars, dropping unresolvable rows
//	series    de-duplicate bars and group them into trading days
//	features  one daily feature row per day with a complete opening range
//	summary   dataset statistics over the daily rows
//	export    daily CSV, summary CSV and optional Parquet, written concurrently
//
// Manager executes registered steps in dependency order. Each step gets
// its own timeout, span and duration metric, and a StepState that records
// its status and metadata. The first failing step ends the run and the
// remaining steps are marked skipped. Data-quality problems never fail a
// step; they are counted in the batch instead.
package operations
