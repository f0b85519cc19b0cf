package gauge

import (
	"math"
	"strconv"
)

// Tick planning defaults.
const (
	DefaultTickTarget = 5 // major ticks wanted across the range
	MinorPerMajor     = 5
)

// TickMark is one position on the scale.
type TickMark struct {
	Value float64
	Major bool
}

// NiceStep returns a human friendly step close to rng/target: 1, 2, 5 or 10
// times a power of ten. It returns 0 when no step can be derived.
func NiceStep(rng float64, target int) float64 {
	if target <= 0 {
		return 0
	}
	rough := rng / float64(target)
	if !(rough > 0) || math.IsInf(rough, 0) {
		return 0
	}
	pow := math.Pow(10, math.Floor(math.Log10(rough)))
	norm := rough / pow

	var nice float64
	switch {
	case norm <= 1:
		nice = 1
	case norm <= 2:
		nice = 2
	case norm <= 5:
		nice = 5
	default:
		nice = 10
	}
	return nice * pow
}

// PlanTicks enumerates minor-step positions from min to max inclusive and
// flags the ones that fall on a multiple of the major step.
func PlanTicks(min, max float64, target int) []TickMark {
	major := NiceStep(max-min, target)
	if major == 0 {
		return nil
	}
	minor := major / MinorPerMajor

	// Positions come from an integer index, never from a running float sum.
	steps := int(math.Round((max - min) / minor))
	ticks := make([]TickMark, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := min + float64(i)*minor
		if v > max+minor*0.01 {
			break
		}
		ticks = append(ticks, TickMark{Value: v, Major: onMultiple(v, major, minor*0.1)})
	}
	return ticks
}

// onMultiple reports whether v is within tol of a multiple of step.
func onMultiple(v, step, tol float64) bool {
	r := math.Abs(math.Mod(v, step))
	return r < tol || step-r < tol
}

// FormatTick renders a tick or min/max label: thousands get a "k" suffix,
// integral values print bare and everything else gets one decimal.
func FormatTick(v float64) string {
	switch abs := math.Abs(v); {
	case abs >= 10000:
		return strconv.FormatFloat(v/1000, 'f', 0, 64) + "k"
	case abs >= 1000:
		return strconv.FormatFloat(v/1000, 'f', 1, 64) + "k"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
}
