// Package files reads bar data from disk and writes output files safely.
//
// Discover resolves an input path (a single .csv/.xlsx file or a directory
// of them) into files; Reader turns each file into ordered raw rows keyed by
// the file's header. Manager writes outputs through a temporary file and a
// rename so readers never observe a half-written table.
//
//	inputs, err := files.Discover("data/bars")
//	rows, err := files.NewReader(logger).ReadAll(ctx, inputs)
package files
