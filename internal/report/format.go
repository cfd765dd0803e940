package report

import (
	"fmt"
	"strconv"
)

// FormatFloat prints v with the fewest digits that round-trip.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// rangeLabel returns "lo - hi" in parsecs, e.g. "110 - 150".
func rangeLabel(lo, hi float64) string {
	return fmt.Sprintf("%s - %s", FormatFloat(lo), FormatFloat(hi))
}
