package gauge

import (
	"math"

	"animated_gauge/internal/models"

	"seehuhn.de/go/geom/vec"
)

// Fixed dial layout in SVG user units.
const (
	ViewWidth   = 200.0
	ViewHeight  = 160.0
	OuterRadius = 80.0
)

// Center is the pivot of the dial.
var Center = vec.Vec2{X: ViewWidth / 2, Y: 105}

// Colors and fills shared by all gauges.
const (
	TrackColor         = "rgba(148,163,184,0.12)"
	LabelColor         = "rgba(148,163,184,0.45)"
	TickLabelColor     = "rgba(148,163,184,0.5)"
	MajorTickColor     = "rgba(148,163,184,0.4)"
	MinorTickColor     = "rgba(148,163,184,0.15)"
	SecondaryTextColor = "var(--secondary-text-color)"
	CutoutColor        = "var(--card-background-color, #1e293b)"
)

// Style holds the presentation tuning knobs of the composer.
type Style struct {
	SegmentOpacity   float64 // severity overlay opacity
	ActiveMinSweep   float64 // degrees; shorter active arcs are not drawn
	GlowOpacity      float64
	GlowScale        float64 // glow radius as a fraction of the arc width
	NeedleOpacity    float64
	NeedleBaseRadius float64
	NeedleBaseSpread float64 // degrees either side of the value angle
	PivotRadius      float64
	CutoutRadius     float64
	TickTarget       int
}

// DefaultStyle returns the stock look of the gauge.
func DefaultStyle() Style {
	return Style{
		SegmentOpacity:   0.3,
		ActiveMinSweep:   0.5,
		GlowOpacity:      0.12,
		GlowScale:        0.6,
		NeedleOpacity:    0.85,
		NeedleBaseRadius: 8,
		NeedleBaseSpread: 8,
		PivotRadius:      6,
		CutoutRadius:     3.5,
		TickTarget:       DefaultTickTarget,
	}
}

// Stroke is an arc drawn as a stroked path.
type Stroke struct {
	Path    string  `json:"path"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Linecap string  `json:"linecap"`
	Opacity float64 `json:"opacity"`
}

// GradientStop is one stop of the active arc gradient.
type GradientStop struct {
	Offset  float64 `json:"offset"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Gradient is a linear gradient in user space.
type Gradient struct {
	From  vec.Vec2       `json:"from"`
	To    vec.Vec2       `json:"to"`
	Stops []GradientStop `json:"stops"`
}

// ActiveArc is the filled part of the track, from the scale start to the value.
type ActiveArc struct {
	Path     string   `json:"path"`
	Width    float64  `json:"width"`
	Gradient Gradient `json:"gradient"`
}

// Circle is a filled disc.
type Circle struct {
	Center  vec.Vec2 `json:"center"`
	Radius  float64  `json:"radius"`
	Fill    string   `json:"fill"`
	Opacity float64  `json:"opacity"`
}

// Needle is a triangle pointing at the value, drawn over a pivot disc
// with a cutout in the middle.
type Needle struct {
	Tip     vec.Vec2 `json:"tip"`
	Base1   vec.Vec2 `json:"base1"`
	Base2   vec.Vec2 `json:"base2"`
	Color   string   `json:"color"`
	Opacity float64  `json:"opacity"`
	Pivot   Circle   `json:"pivot"`
	Cutout  Circle   `json:"cutout"`
}

// Tick is one scale mark.
type Tick struct {
	Value float64  `json:"value"`
	From  vec.Vec2 `json:"from"`
	To    vec.Vec2 `json:"to"`
	Major bool     `json:"major"`
	Color string   `json:"color"`
	Width float64  `json:"width"`
}

// Label is a piece of text anchored at its center.
type Label struct {
	Pos      vec.Vec2 `json:"pos"`
	Text     string   `json:"text"`
	FontSize float64  `json:"font_size"`
	Color    string   `json:"color"`
}

// ValueText is the numeric readout.
type ValueText struct {
	Text  string `json:"text"`
	Unit  string `json:"unit"`
	Color string `json:"color"`
}

// Scene is everything needed to draw one frame of a gauge. It is derived
// data: recomputed for every frame and never retained by the composer.
//
// Points are vec.Vec2 values and keep its field names on the wire, so every
// point in the JSON form is an object {"X": x, "Y": y} in viewBox units.
type Scene struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Available bool       `json:"available"`
	Angle     float64    `json:"angle"` // value angle; zero when unavailable
	Track     Stroke     `json:"track"`
	Segments  []Stroke   `json:"segments"`
	Active    *ActiveArc `json:"active,omitempty"`
	Glow      *Circle    `json:"glow,omitempty"`
	Needle    *Needle    `json:"needle,omitempty"`
	Ticks     []Tick     `json:"ticks,omitempty"`
	Labels    []Label    `json:"labels,omitempty"`
	Value     *ValueText `json:"value,omitempty"`
	Name      string     `json:"name,omitempty"`
	ShowName  bool       `json:"show_name"`
}

// Composer builds scenes with a fixed Style.
type Composer struct {
	Style Style
}

// NewComposer returns a composer using style.
func NewComposer(style Style) *Composer {
	return &Composer{Style: style}
}

var defaultComposer = NewComposer(DefaultStyle())

// Compose builds a scene with DefaultStyle.
func Compose(cfg models.GaugeConfig, value float64, sample *models.EntityState, noData string) Scene {
	return defaultComposer.Compose(cfg, value, sample, noData)
}

// Compose builds the scene for cfg showing value. value is the interpolated
// display value; NaN means "use the raw sample value". sample is nil when
// the host has no state for the entity. noData is the localized placeholder.
func (c *Composer) Compose(cfg models.GaugeConfig, value float64, sample *models.EntityState, noData string) Scene {
	st := c.Style
	scale := NewScale(cfg.Min, cfg.Max, cfg.SweepAngle)
	arcW := cfg.ArcWidth
	midR := OuterRadius - arcW/2

	raw, numeric := math.NaN(), false
	if sample != nil {
		raw, numeric = sample.Value()
	}
	available := sample != nil && !sample.Sentinel() && numeric
	if math.IsNaN(value) {
		value = raw
	}

	scene := Scene{
		Width:     ViewWidth,
		Height:    ViewHeight,
		Available: available,
		Track: Stroke{
			Path:    ArcPath(Center, midR, scale.Start(), scale.End()),
			Color:   TrackColor,
			Width:   arcW,
			Linecap: "round",
			Opacity: 1,
		},
	}

	for _, band := range cfg.Severity {
		from := math.Max(band.From, cfg.Min)
		to := math.Min(band.To, cfg.Max)
		if to <= from {
			continue
		}
		path := ArcPath(Center, midR, scale.Angle(from), scale.Angle(to))
		if path == "" {
			continue
		}
		scene.Segments = append(scene.Segments, Stroke{
			Path:    path,
			Color:   band.Color,
			Width:   arcW,
			Linecap: "butt",
			Opacity: st.SegmentOpacity,
		})
	}

	if available && !math.IsNaN(value) {
		clamped := scale.Clamp(value)
		angle := scale.Angle(clamped)
		color := ResolveColor(clamped, cfg.Severity, FallbackColor)
		scene.Angle = angle

		if angle-scale.Start() > st.ActiveMinSweep {
			scene.Active = &ActiveArc{
				Path:  ArcPath(Center, midR, scale.Start(), angle),
				Width: arcW,
				Gradient: Gradient{
					From: PointOnCircle(Center, midR, scale.Start()),
					To:   PointOnCircle(Center, midR, angle),
					Stops: []GradientStop{
						{Offset: 0, Color: color, Opacity: 0.5},
						{Offset: 1, Color: color, Opacity: 1},
					},
				},
			}
		}

		scene.Glow = &Circle{
			Center:  PointOnCircle(Center, midR, angle),
			Radius:  arcW * st.GlowScale,
			Fill:    color,
			Opacity: st.GlowOpacity,
		}

		if cfg.Needle {
			scene.Needle = &Needle{
				Tip:     PointOnCircle(Center, OuterRadius+2, angle),
				Base1:   PointOnCircle(Center, st.NeedleBaseRadius, angle-st.NeedleBaseSpread),
				Base2:   PointOnCircle(Center, st.NeedleBaseRadius, angle+st.NeedleBaseSpread),
				Color:   color,
				Opacity: st.NeedleOpacity,
				Pivot:   Circle{Center: Center, Radius: st.PivotRadius, Fill: color, Opacity: 1},
				Cutout:  Circle{Center: Center, Radius: st.CutoutRadius, Fill: CutoutColor, Opacity: 1},
			}
		}
	}

	if cfg.ShowTicks {
		c.addTicks(&scene, cfg, scale)
	}

	if cfg.ShowMinMax {
		scene.Labels = append(scene.Labels,
			Label{Pos: PointOnCircle(Center, OuterRadius+14, scale.Start()), Text: FormatTick(cfg.Min), FontSize: 10, Color: LabelColor},
			Label{Pos: PointOnCircle(Center, OuterRadius+14, scale.End()), Text: FormatTick(cfg.Max), FontSize: 10, Color: LabelColor},
		)
	}

	if cfg.ShowValue {
		scene.Value = valueText(cfg, sample, raw, available, noData)
	}
	if cfg.ShowName {
		scene.ShowName = true
		scene.Name = displayName(cfg, sample)
	}
	return scene
}

func (c *Composer) addTicks(scene *Scene, cfg models.GaugeConfig, scale Scale) {
	for _, mark := range PlanTicks(cfg.Min, cfg.Max, c.Style.TickTarget) {
		angle := scale.Angle(math.Min(mark.Value, cfg.Max))
		tick := Tick{
			Value: mark.Value,
			From:  PointOnCircle(Center, OuterRadius+2, angle),
			To:    PointOnCircle(Center, OuterRadius+5, angle),
			Major: mark.Major,
			Color: MinorTickColor,
			Width: 0.75,
		}
		if mark.Major {
			tick.To = PointOnCircle(Center, OuterRadius+9, angle)
			tick.Color = MajorTickColor
			tick.Width = 1.5
		}
		scene.Ticks = append(scene.Ticks, tick)

		if mark.Major && cfg.ShowSegmentsLabel {
			scene.Labels = append(scene.Labels, Label{
				Pos:      PointOnCircle(Center, OuterRadius+16, angle),
				Text:     FormatTick(mark.Value),
				FontSize: 8,
				Color:    TickLabelColor,
			})
		}
	}
}

// valueText builds the readout. It shows the raw value, not the animated one.
func valueText(cfg models.GaugeConfig, sample *models.EntityState, raw float64, available bool, noData string) *ValueText {
	unit := cfg.Unit
	if unit == "" && sample != nil {
		unit = sample.Attributes.UnitOfMeasurement
	}
	if !available {
		return &ValueText{Text: noData, Unit: unit, Color: SecondaryTextColor}
	}
	return &ValueText{
		Text:  FormatValue(raw, cfg.Decimals),
		Unit:  unit,
		Color: ResolveColor(clamp(raw, cfg.Min, cfg.Max), cfg.Severity, FallbackColor),
	}
}

func displayName(cfg models.GaugeConfig, sample *models.EntityState) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	if sample != nil && sample.Attributes.FriendlyName != "" {
		return sample.Attributes.FriendlyName
	}
	return cfg.Entity
}
