package config

import (
	"errors"
	"testing"

	"animated_gauge/internal/gauge"
	"animated_gauge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard_Defaults(t *testing.T) {
	cfg, err := ParseCard(map[string]any{"entity": "sensor.x"})
	require.NoError(t, err)

	assert.Equal(t, "sensor.x", cfg.Entity)
	assert.Equal(t, 0.0, cfg.Min)
	assert.Equal(t, 100.0, cfg.Max)
	assert.Equal(t, 0, cfg.Decimals)
	assert.True(t, cfg.Needle)
	assert.True(t, cfg.ShowValue)
	assert.True(t, cfg.ShowName)
	assert.True(t, cfg.ShowMinMax)
	assert.True(t, cfg.ShowTicks)
	assert.False(t, cfg.ShowSegmentsLabel)
	assert.Equal(t, 20.0, cfg.ArcWidth)
	assert.Equal(t, 240.0, cfg.SweepAngle)
	assert.Equal(t, gauge.DefaultBands(), cfg.Severity)
}

func TestParseCard_MissingEntity(t *testing.T) {
	_, err := ParseCard(map[string]any{"min": 0, "max": 10})
	assert.ErrorIs(t, err, ErrMissingEntity)
}

func TestParseCard_Overrides(t *testing.T) {
	cfg, err := ParseCard(map[string]any{
		"entity":              "sensor.kiln",
		"name":                "Kiln",
		"min":                 -20,
		"max":                 "1200", // strings are accepted
		"unit":                "°C",
		"decimals":            1.0,
		"needle":              false,
		"show_ticks":          "false",
		"show_segments_label": true,
		"arc_width":           12,
		"sweep_angle":         270,
	})
	require.NoError(t, err)

	assert.Equal(t, "Kiln", cfg.Name)
	assert.Equal(t, -20.0, cfg.Min)
	assert.Equal(t, 1200.0, cfg.Max)
	assert.Equal(t, "°C", cfg.Unit)
	assert.Equal(t, 1, cfg.Decimals)
	assert.False(t, cfg.Needle)
	assert.False(t, cfg.ShowTicks)
	assert.True(t, cfg.ShowSegmentsLabel)
	assert.Equal(t, 12.0, cfg.ArcWidth)
	assert.Equal(t, 270.0, cfg.SweepAngle)
}

func TestParseCard_Clamps(t *testing.T) {
	cfg, err := ParseCard(map[string]any{"entity": "sensor.x", "arc_width": 90, "decimals": -3})
	require.NoError(t, err)
	assert.Equal(t, MaxArcWidth, cfg.ArcWidth)
	assert.Equal(t, 0, cfg.Decimals)

	cfg, err = ParseCard(map[string]any{"entity": "sensor.x", "arc_width": 1})
	require.NoError(t, err)
	assert.Equal(t, MinArcWidth, cfg.ArcWidth)
}

func TestParseCard_InvalidRangeAndSweep(t *testing.T) {
	_, err := ParseCard(map[string]any{"entity": "sensor.x", "min": 10, "max": 10})
	assert.True(t, errors.Is(err, ErrInvalidRange))

	_, err = ParseCard(map[string]any{"entity": "sensor.x", "sweep_angle": 0})
	assert.ErrorIs(t, err, ErrInvalidSweep)

	_, err = ParseCard(map[string]any{"entity": "sensor.x", "sweep_angle": 400})
	assert.ErrorIs(t, err, ErrInvalidSweep)

	cfg, err := ParseCard(map[string]any{"entity": "sensor.x", "sweep_angle": 360})
	require.NoError(t, err)
	assert.Equal(t, 360.0, cfg.SweepAngle)
}

func TestParseCard_Severity(t *testing.T) {
	t.Run("sorted by from", func(t *testing.T) {
		cfg, err := ParseCard(map[string]any{
			"entity": "sensor.x",
			"severity": []any{
				map[string]any{"from": 50, "to": 100, "color": "red"},
				map[string]any{"from": "0", "to": "50", "color": "green"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []models.SeverityBand{
			{From: 0, To: 50, Color: "green"},
			{From: 50, To: 100, Color: "red"},
		}, cfg.Severity)
	})

	t.Run("segments alias", func(t *testing.T) {
		cfg, err := ParseCard(map[string]any{
			"entity":   "sensor.x",
			"segments": []any{map[string]any{"from": 0, "to": 10, "color": "blue"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []models.SeverityBand{{From: 0, To: 10, Color: "blue"}}, cfg.Severity)
	})

	t.Run("empty list means no bands", func(t *testing.T) {
		cfg, err := ParseCard(map[string]any{"entity": "sensor.x", "severity": []any{}})
		require.NoError(t, err)
		assert.Empty(t, cfg.Severity)
	})

	malformed := map[string]any{
		"string":        "0:green,50:red",
		"single object": map[string]any{"from": 0, "to": 10, "color": "blue"},
		"missing to":    []any{map[string]any{"from": 0, "color": "blue"}},
		"not an object": []any{42},
		"bad number":    []any{map[string]any{"from": "abc", "to": 10, "color": "blue"}},
	}
	for name, sev := range malformed {
		t.Run("malformed "+name, func(t *testing.T) {
			cfg, err := ParseCard(map[string]any{"entity": "sensor.x", "severity": sev})
			require.NoError(t, err)
			assert.Equal(t, gauge.DefaultBands(), cfg.Severity)
		})
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards([]map[string]any{
		{"id": "kiln", "entity": "sensor.kiln"},
		{"entity": "sensor.outdoor"},
	})
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "kiln", cards[0].ID)
	assert.Equal(t, "sensor.outdoor", cards[1].ID)

	_, err = ParseCards([]map[string]any{{"entity": "sensor.a"}, {"entity": "sensor.a"}})
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = ParseCards([]map[string]any{{"entity": "sensor.a"}, {"name": "broken"}})
	assert.ErrorIs(t, err, ErrMissingEntity)
}
