// Package render turns a composed gauge.Scene into SVG markup.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"animated_gauge/internal/gauge"

	"seehuhn.de/go/geom/vec"
)

// GradientID is the id of the active arc gradient inside the document.
const GradientID = "ag"

// Readout placement below the pivot.
const (
	valueY        = 138.0
	valueFontSize = 20.0
	unitFontSize  = 10.0
	nameY         = 154.0
	nameFontSize  = 9.0
)

// SVG returns the standalone document for scene.
func SVG(scene gauge.Scene) string {
	var b strings.Builder
	_ = Write(&b, scene)
	return b.String()
}

// Write renders scene to w in paint order: track, severity segments,
// active arc, glow, needle, ticks, labels, readout.
func Write(w io.Writer, scene gauge.Scene) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`,
		num(scene.Width), num(scene.Height))

	writeStroke(&buf, scene.Track)
	for _, seg := range scene.Segments {
		writeStroke(&buf, seg)
	}

	if a := scene.Active; a != nil {
		g := a.Gradient
		fmt.Fprintf(&buf, `<defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			GradientID, coord(g.From.X), coord(g.From.Y), coord(g.To.X), coord(g.To.Y))
		for _, s := range g.Stops {
			fmt.Fprintf(&buf, `<stop offset="%s%%" stop-color="%s" stop-opacity="%s"/>`,
				num(s.Offset*100), attr(s.Color), num(s.Opacity))
		}
		buf.WriteString(`</linearGradient></defs>`)
		fmt.Fprintf(&buf, `<path d="%s" fill="none" stroke="url(#%s)" stroke-width="%s" stroke-linecap="round"/>`,
			a.Path, GradientID, num(a.Width))
	}

	if g := scene.Glow; g != nil {
		writeCircle(&buf, *g)
	}

	if n := scene.Needle; n != nil {
		fmt.Fprintf(&buf, `<polygon points="%s %s %s" fill="%s" opacity="%s"/>`,
			point(n.Tip), point(n.Base1), point(n.Base2), attr(n.Color), num(n.Opacity))
		writeCircle(&buf, n.Pivot)
		writeCircle(&buf, n.Cutout)
	}

	for _, t := range scene.Ticks {
		fmt.Fprintf(&buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
			coord(t.From.X), coord(t.From.Y), coord(t.To.X), coord(t.To.Y), attr(t.Color), num(t.Width))
	}

	for _, l := range scene.Labels {
		fmt.Fprintf(&buf, `<text x="%s" y="%s" fill="%s" font-size="%s" text-anchor="middle" dominant-baseline="central">%s</text>`,
			coord(l.Pos.X), coord(l.Pos.Y), attr(l.Color), num(l.FontSize), text(l.Text))
	}

	cx := num(scene.Width / 2)
	if v := scene.Value; v != nil {
		fmt.Fprintf(&buf, `<text x="%s" y="%s" fill="%s" font-size="%s" font-weight="600" text-anchor="middle" dominant-baseline="central">%s`,
			cx, num(valueY), attr(v.Color), num(valueFontSize), text(v.Text))
		if v.Unit != "" {
			fmt.Fprintf(&buf, `<tspan dx="2" font-size="%s" fill="%s">%s</tspan>`,
				num(unitFontSize), gauge.SecondaryTextColor, text(v.Unit))
		}
		buf.WriteString(`</text>`)
	}
	if scene.ShowName && scene.Name != "" {
		fmt.Fprintf(&buf, `<text x="%s" y="%s" fill="%s" font-size="%s" text-anchor="middle" dominant-baseline="central">%s</text>`,
			cx, num(nameY), gauge.SecondaryTextColor, num(nameFontSize), text(scene.Name))
	}

	buf.WriteString(`</svg>`)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeStroke(buf *bytes.Buffer, s gauge.Stroke) {
	if s.Path == "" {
		return
	}
	fmt.Fprintf(buf, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="%s"`,
		s.Path, attr(s.Color), num(s.Width), s.Linecap)
	if s.Opacity != 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(s.Opacity))
	}
	buf.WriteString(`/>`)
}

func writeCircle(buf *bytes.Buffer, c gauge.Circle) {
	fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"`,
		coord(c.Center.X), coord(c.Center.Y), num(c.Radius), attr(c.Fill))
	if c.Opacity != 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(c.Opacity))
	}
	buf.WriteString(`/>`)
}

func point(p vec.Vec2) string {
	return coord(p.X) + "," + coord(p.Y)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func text(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// attr escapes a user supplied color for use inside a double quoted attribute.
func attr(s string) string {
	return text(s)
}
