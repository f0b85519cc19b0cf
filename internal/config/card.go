package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"animated_gauge/internal/gauge"
	"animated_gauge/internal/models"

	"github.com/go-viper/mapstructure/v2"
)

// Card configuration errors.
var (
	ErrMissingEntity = errors.New("card config: entity is required")
	ErrInvalidRange  = errors.New("card config: max must be greater than min")
	ErrInvalidSweep  = errors.New("card config: sweep_angle must be in (0, 360]")
	ErrDuplicateCard = errors.New("card config: duplicate card id")
)

// Card defaults and limits.
const (
	DefaultMin      = 0.0
	DefaultMax      = 100.0
	DefaultArcWidth = 20.0
	MinArcWidth     = 5.0
	MaxArcWidth     = 50.0
	MaxDecimals     = 10
)

// rawCard mirrors the user-facing keys. Pointers tell "unset" from zero.
type rawCard struct {
	ID                string   `mapstructure:"id"`
	Entity            string   `mapstructure:"entity"`
	Name              *string  `mapstructure:"name"`
	Min               *float64 `mapstructure:"min"`
	Max               *float64 `mapstructure:"max"`
	Unit              *string  `mapstructure:"unit"`
	Decimals          *int     `mapstructure:"decimals"`
	Severity          any      `mapstructure:"severity"`
	Segments          any      `mapstructure:"segments"`
	Needle            *bool    `mapstructure:"needle"`
	ShowValue         *bool    `mapstructure:"show_value"`
	ShowName          *bool    `mapstructure:"show_name"`
	ShowMinMax        *bool    `mapstructure:"show_min_max"`
	ShowTicks         *bool    `mapstructure:"show_ticks"`
	ShowSegmentsLabel *bool    `mapstructure:"show_segments_label"`
	ArcWidth          *float64 `mapstructure:"arc_width"`
	SweepAngle        *float64 `mapstructure:"sweep_angle"`
}

type rawBand struct {
	From  *float64 `mapstructure:"from"`
	To    *float64 `mapstructure:"to"`
	Color string   `mapstructure:"color"`
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// ParseCard validates a raw card definition and fills in defaults.
// A missing entity is fatal; a malformed severity list silently falls
// back to the default bands.
func ParseCard(raw map[string]any) (models.GaugeConfig, error) {
	var rc rawCard
	if err := decode(raw, &rc); err != nil {
		return models.GaugeConfig{}, fmt.Errorf("card config: %w", err)
	}
	if rc.Entity == "" {
		return models.GaugeConfig{}, ErrMissingEntity
	}

	cfg := models.GaugeConfig{
		Entity:            rc.Entity,
		Name:              deref(rc.Name, ""),
		Min:               deref(rc.Min, DefaultMin),
		Max:               deref(rc.Max, DefaultMax),
		Unit:              deref(rc.Unit, ""),
		Decimals:          clampInt(deref(rc.Decimals, 0), 0, MaxDecimals),
		Needle:            deref(rc.Needle, true),
		ShowValue:         deref(rc.ShowValue, true),
		ShowName:          deref(rc.ShowName, true),
		ShowMinMax:        deref(rc.ShowMinMax, true),
		ShowTicks:         deref(rc.ShowTicks, true),
		ShowSegmentsLabel: deref(rc.ShowSegmentsLabel, false),
		ArcWidth:          clampFloat(deref(rc.ArcWidth, DefaultArcWidth), MinArcWidth, MaxArcWidth),
		SweepAngle:        deref(rc.SweepAngle, gauge.DefaultSweep),
	}
	if !(cfg.Max > cfg.Min) {
		return models.GaugeConfig{}, fmt.Errorf("%w (min=%v, max=%v)", ErrInvalidRange, cfg.Min, cfg.Max)
	}
	if !(cfg.SweepAngle > 0 && cfg.SweepAngle <= 360) {
		return models.GaugeConfig{}, fmt.Errorf("%w (got %v)", ErrInvalidSweep, cfg.SweepAngle)
	}

	severity := rc.Severity
	if severity == nil {
		severity = rc.Segments
	}
	bands, ok := parseSeverity(severity)
	if !ok {
		bands = gauge.DefaultBands()
	}
	cfg.Severity = bands
	return cfg, nil
}

// ParseCards decodes a list of card definitions. A card without an id is
// registered under its entity id.
func ParseCards(raws []map[string]any) ([]models.Card, error) {
	cards := make([]models.Card, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		cfg, err := ParseCard(raw)
		if err != nil {
			return nil, fmt.Errorf("cards[%d]: %w", i, err)
		}
		id, _ := raw["id"].(string)
		if id == "" {
			id = cfg.Entity
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("cards[%d]: %w: %q", i, ErrDuplicateCard, id)
		}
		seen[id] = struct{}{}
		cards = append(cards, models.Card{ID: id, Config: cfg})
	}
	return cards, nil
}

// parseSeverity accepts a list of {from, to, color} objects and returns the
// bands sorted by from. Anything else reports false.
func parseSeverity(v any) ([]models.SeverityBand, bool) {
	if v == nil {
		return nil, false
	}
	if k := reflect.ValueOf(v).Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	var raws []rawBand
	if err := decode(v, &raws); err != nil {
		return nil, false
	}
	bands := make([]models.SeverityBand, 0, len(raws))
	for _, rb := range raws {
		if rb.From == nil || rb.To == nil || rb.Color == "" {
			return nil, false
		}
		bands = append(bands, models.SeverityBand{From: *rb.From, To: *rb.To, Color: rb.Color})
	}
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].From < bands[j].From })
	return bands, true
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
