// Package exporter writes the feature builder's output tables.
//
// The daily table follows domain.DailyColumns. Floats use the shortest
// round-trip representation and missing values are written as NaN; an
// unresolved first touch is an empty cell. The summary table has the
// columns metric,value. A Parquet copy of the daily table is available for
// columnar consumers.
//
// Every file is written to a temporary sibling and renamed into place.
package exporter
