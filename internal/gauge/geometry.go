// Package gauge turns a gauge configuration and an instantaneous value into
// a scene description: arcs, needle, ticks and labels in SVG user space.
//
// Angles are in degrees with 0 at the top of the dial, increasing clockwise.
package gauge

import (
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// minArcDelta is the smallest angular span ArcPath will draw.
const minArcDelta = 0.01

// PointOnCircle returns the point at distance r from center in direction angle.
func PointOnCircle(center vec.Vec2, r, angle float64) vec.Vec2 {
	rad := (angle - 90) * math.Pi / 180
	return vec.Vec2{
		X: center.X + r*math.Cos(rad),
		Y: center.Y + r*math.Sin(rad),
	}
}

// ArcPath returns SVG path data for a clockwise arc of radius r around
// center, from start to end. Spans shorter than 0.01° yield "", and callers
// must skip drawing in that case. A full circle is emitted as two half arcs
// since an SVG arc with equal endpoints draws nothing.
func ArcPath(center vec.Vec2, r, start, end float64) string {
	if math.Abs(end-start) < minArcDelta {
		return ""
	}
	p1 := PointOnCircle(center, r, start)

	var b strings.Builder
	b.WriteString("M")
	b.WriteString(formatCoord(p1.X))
	b.WriteString(",")
	b.WriteString(formatCoord(p1.Y))

	if end-start >= 360-minArcDelta {
		writeArc(&b, r, "0", PointOnCircle(center, r, start+180))
		writeArc(&b, r, "0", PointOnCircle(center, r, start+360))
		return b.String()
	}

	large := "0"
	if normalizeDegrees(end-start) > 180 {
		large = "1"
	}
	writeArc(&b, r, large, PointOnCircle(center, r, end))
	return b.String()
}

// writeArc appends a clockwise arc segment ending at p.
func writeArc(b *strings.Builder, r float64, large string, p vec.Vec2) {
	b.WriteString(" A")
	b.WriteString(formatNumber(r))
	b.WriteString(",")
	b.WriteString(formatNumber(r))
	b.WriteString(" 0 ")
	b.WriteString(large)
	b.WriteString(" 1 ")
	b.WriteString(formatCoord(p.X))
	b.WriteString(",")
	b.WriteString(formatCoord(p.Y))
}

// normalizeDegrees maps a to [0, 360).
func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// formatCoord prints a coordinate with two decimals.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatNumber prints v in its shortest exact form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
