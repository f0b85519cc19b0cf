package gauge

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"animated_gauge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() models.GaugeConfig {
	return models.GaugeConfig{
		Entity:     "sensor.x",
		Min:        0,
		Max:        100,
		Severity:   DefaultBands(),
		Needle:     true,
		ShowValue:  true,
		ShowName:   true,
		ShowMinMax: true,
		ShowTicks:  true,
		ArcWidth:   20,
		SweepAngle: 240,
	}
}

func sample(state string) *models.EntityState {
	return &models.EntityState{EntityID: "sensor.x", State: state}
}

func TestCompose_FirstRender(t *testing.T) {
	cfg := testConfig()
	scene := Compose(cfg, 75, sample("75"), "N/A")
	scale := NewScale(0, 100, 240)

	require.True(t, scene.Available)
	assert.Equal(t, scale.Angle(75), scene.Angle)

	require.NotNil(t, scene.Active)
	assert.Equal(t, ArcPath(Center, 70, scale.Start(), scale.Angle(75)), scene.Active.Path)
	assert.Equal(t, PointOnCircle(Center, 70, scale.Start()), scene.Active.Gradient.From)
	assert.Equal(t, PointOnCircle(Center, 70, scale.Angle(75)), scene.Active.Gradient.To)

	require.NotNil(t, scene.Needle)
	assert.Equal(t, PointOnCircle(Center, OuterRadius+2, scale.Angle(75)), scene.Needle.Tip)
	assert.Equal(t, "#f44336", scene.Needle.Color)

	require.NotNil(t, scene.Value)
	assert.Equal(t, "75", scene.Value.Text)
	assert.Equal(t, "#f44336", scene.Value.Color)
	assert.Equal(t, "sensor.x", scene.Name)
}

func TestCompose_Unavailable(t *testing.T) {
	for _, st := range []string{models.StateUnavailable, models.StateUnknown, "garbage"} {
		t.Run(st, func(t *testing.T) {
			scene := Compose(testConfig(), math.NaN(), sample(st), "Brak")
			assert.False(t, scene.Available)
			assert.Nil(t, scene.Active)
			assert.Nil(t, scene.Needle)
			assert.Nil(t, scene.Glow)
			require.NotNil(t, scene.Value)
			assert.Equal(t, "Brak", scene.Value.Text)
			assert.Equal(t, SecondaryTextColor, scene.Value.Color)
			assert.NotEmpty(t, scene.Track.Path)
			assert.Len(t, scene.Segments, 3)
		})
	}
}

func TestCompose_MissingEntity(t *testing.T) {
	scene := Compose(testConfig(), 50, nil, "N/A")
	assert.False(t, scene.Available)
	assert.Nil(t, scene.Needle)
	assert.Equal(t, "N/A", scene.Value.Text)
}

func TestCompose_InterpolatedValueDrivesGeometry(t *testing.T) {
	scene := Compose(testConfig(), 30, sample("75"), "N/A")
	assert.Equal(t, NewScale(0, 100, 240).Angle(30), scene.Angle)
	assert.Equal(t, "#4caf50", scene.Needle.Color)
	// The readout always shows the raw value.
	assert.Equal(t, "75", scene.Value.Text)
	assert.Equal(t, "#f44336", scene.Value.Color)
}

func TestCompose_OutOfRangeClampsGeometryNotReadout(t *testing.T) {
	scene := Compose(testConfig(), math.NaN(), sample("150"), "N/A")
	assert.Equal(t, NewScale(0, 100, 240).End(), scene.Angle)
	assert.Equal(t, "150", scene.Value.Text)
	assert.Equal(t, "#f44336", scene.Value.Color)
}

func TestCompose_ValueAtMinSkipsActiveArc(t *testing.T) {
	scene := Compose(testConfig(), math.NaN(), sample("0"), "N/A")
	assert.True(t, scene.Available)
	assert.Nil(t, scene.Active)
	assert.NotNil(t, scene.Glow)
	assert.NotNil(t, scene.Needle)
}

func TestCompose_ActiveArcThresholdIsConfigurable(t *testing.T) {
	style := DefaultStyle()
	style.ActiveMinSweep = 100
	scene := NewComposer(style).Compose(testConfig(), math.NaN(), sample("40"), "N/A")
	assert.Nil(t, scene.Active) // 96 degrees swept
	scene = NewComposer(style).Compose(testConfig(), math.NaN(), sample("50"), "N/A")
	assert.NotNil(t, scene.Active)
}

func TestCompose_SegmentsIntersectRange(t *testing.T) {
	cfg := testConfig()
	cfg.Min = 50
	scene := Compose(cfg, math.NaN(), sample("60"), "N/A")
	scale := NewScale(50, 100, 240)

	require.Len(t, scene.Segments, 2)
	assert.Equal(t, ArcPath(Center, 70, scale.Angle(50), scale.Angle(66)), scene.Segments[0].Path)
	assert.Equal(t, "#ff9800", scene.Segments[0].Color)
	assert.Equal(t, 0.3, scene.Segments[0].Opacity)
	assert.Equal(t, ArcPath(Center, 70, scale.Angle(66), scale.Angle(100)), scene.Segments[1].Path)
}

func TestCompose_TicksAndLabels(t *testing.T) {
	cfg := testConfig()
	cfg.ShowSegmentsLabel = true
	scene := Compose(cfg, math.NaN(), sample("10"), "N/A")

	require.Len(t, scene.Ticks, 26)
	majors := 0
	for _, tk := range scene.Ticks {
		if tk.Major {
			majors++
			assert.Equal(t, 1.5, tk.Width)
		}
	}
	assert.Equal(t, 6, majors)

	// six tick labels plus min and max
	require.Len(t, scene.Labels, 8)
	assert.Equal(t, "0", scene.Labels[0].Text)
	assert.Equal(t, "100", scene.Labels[5].Text)
	assert.Equal(t, "0", scene.Labels[6].Text)
	assert.Equal(t, "100", scene.Labels[7].Text)
	assert.Equal(t, 10.0, scene.Labels[7].FontSize)
}

func TestCompose_HiddenParts(t *testing.T) {
	cfg := testConfig()
	cfg.Needle = false
	cfg.ShowTicks = false
	cfg.ShowMinMax = false
	cfg.ShowValue = false
	cfg.ShowName = false
	scene := Compose(cfg, math.NaN(), sample("42"), "N/A")

	assert.Nil(t, scene.Needle)
	assert.NotNil(t, scene.Active)
	assert.Empty(t, scene.Ticks)
	assert.Empty(t, scene.Labels)
	assert.Nil(t, scene.Value)
	assert.False(t, scene.ShowName)
}

func TestCompose_UnitAndNameFallbacks(t *testing.T) {
	cfg := testConfig()
	s := sample("21.456")
	s.Attributes = models.EntityAttributes{UnitOfMeasurement: "°C", FriendlyName: "Kiln"}
	cfg.Decimals = 1

	scene := Compose(cfg, math.NaN(), s, "N/A")
	assert.Equal(t, "21.5", scene.Value.Text)
	assert.Equal(t, "°C", scene.Value.Unit)
	assert.Equal(t, "Kiln", scene.Name)

	cfg.Unit = "K"
	cfg.Name = "Furnace"
	scene = Compose(cfg, math.NaN(), s, "N/A")
	assert.Equal(t, "K", scene.Value.Unit)
	assert.Equal(t, "Furnace", scene.Name)
}

func TestScene_JSONPointShape(t *testing.T) {
	scene := Compose(testConfig(), 50, sample("50"), "N/A")
	raw, err := json.Marshal(scene)
	require.NoError(t, err)

	var out struct {
		Needle struct {
			Tip map[string]float64 `json:"tip"`
		} `json:"needle"`
		Labels []struct {
			FontSize float64 `json:"font_size"`
		} `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, scene.Needle.Tip.X, out.Needle.Tip["X"])
	assert.Equal(t, scene.Needle.Tip.Y, out.Needle.Tip["Y"])
	require.NotEmpty(t, out.Labels)
	assert.Equal(t, scene.Labels[0].FontSize, out.Labels[0].FontSize)
}

func TestCompose_FullSweepKeepsTrack(t *testing.T) {
	cfg := testConfig()
	cfg.SweepAngle = 360
	scene := Compose(cfg, 100, sample("100"), "N/A")

	assert.Equal(t, 2, strings.Count(scene.Track.Path, " A"))
	require.NotNil(t, scene.Active)
	assert.Equal(t, scene.Track.Path, scene.Active.Path)
}
