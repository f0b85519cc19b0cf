package gauge

import "animated_gauge/internal/models"

// FallbackColor is used when no severity band covers the value.
const FallbackColor = "#3b82f6"

// DefaultBands returns the built-in green/amber/red bands over 0..100.
// A fresh slice is returned on every call so callers may keep it.
func DefaultBands() []models.SeverityBand {
	return []models.SeverityBand{
		{From: 0, To: 33, Color: "#4caf50"},
		{From: 33, To: 66, Color: "#ff9800"},
		{From: 66, To: 100, Color: "#f44336"},
	}
}

// ResolveColor returns the color of the first band with From <= value < To.
// A value equal to the last band's To takes the last band's color, so the
// top of the scale is still colored. Anything else gets fallback.
func ResolveColor(value float64, bands []models.SeverityBand, fallback string) string {
	if len(bands) == 0 {
		return fallback
	}
	for _, b := range bands {
		if value >= b.From && value < b.To {
			return b.Color
		}
	}
	if last := bands[len(bands)-1]; value == last.To {
		return last.Color
	}
	return fallback
}
