package gauge

// DefaultSweep is the arc extent used when a configuration does not set one.
const DefaultSweep = 240.0

// Scale maps data values onto the dial. Every visual layer goes through the
// same Scale so bands, needle, ticks and labels stay aligned.
type Scale struct {
	Min   float64
	Max   float64
	Sweep float64
}

// NewScale returns the scale for [min, max] spread over sweep degrees.
// The caller guarantees max > min.
func NewScale(min, max, sweep float64) Scale {
	return Scale{Min: min, Max: max, Sweep: sweep}
}

// Start is the angle of Min. The arc opens symmetrically at the bottom.
func (s Scale) Start() float64 {
	return 180 + (360-s.Sweep)/2
}

// End is the angle of Max. It may exceed 360.
func (s Scale) End() float64 {
	return s.Start() + s.Sweep
}

// Fraction returns the position of v on the scale, clamped to [0, 1].
func (s Scale) Fraction(v float64) float64 {
	return clamp((v-s.Min)/(s.Max-s.Min), 0, 1)
}

// Angle returns the dial angle of v.
func (s Scale) Angle(v float64) float64 {
	return s.Start() + s.Fraction(v)*s.Sweep
}

// Clamp limits v to [Min, Max].
func (s Scale) Clamp(v float64) float64 {
	return clamp(v, s.Min, s.Max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
