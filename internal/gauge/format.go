package gauge

import (
	"math"
	"strconv"
)

// Placeholder is printed for values that cannot be formatted.
const Placeholder = "—"

// FormatValue prints v with a fixed number of decimals.
func FormatValue(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
