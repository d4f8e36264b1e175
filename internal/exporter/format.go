package exporter

import (
	"math"
	"strconv"
)

// nanToken is how missing values appear in exported tables.
const nanToken = "NaN"

// formatFloat renders the shortest representation that round-trips.
// Missing and non-finite values become NaN.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nanToken
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
