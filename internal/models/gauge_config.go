package models

// SeverityBand colors the part of the scale between From and To.
// Bands are half-open [From, To) except the last one, whose To is inclusive.
type SeverityBand struct {
	From  float64 `json:"from" mapstructure:"from"`
	To    float64 `json:"to" mapstructure:"to"`
	Color string  `json:"color" mapstructure:"color"`
}

// GaugeConfig is the validated configuration of one gauge card.
// It is replaced as a whole on every edit and never mutated by the rendering path.
type GaugeConfig struct {
	Entity            string         `json:"entity"`
	Name              string         `json:"name,omitempty"` // "" falls back to friendly_name
	Min               float64        `json:"min"`
	Max               float64        `json:"max"`
	Unit              string         `json:"unit,omitempty"` // "" falls back to unit_of_measurement
	Decimals          int            `json:"decimals"`
	Severity          []SeverityBand `json:"severity"` // sorted ascending by From
	Needle            bool           `json:"needle"`
	ShowValue         bool           `json:"show_value"`
	ShowName          bool           `json:"show_name"`
	ShowMinMax        bool           `json:"show_min_max"`
	ShowTicks         bool           `json:"show_ticks"`
	ShowSegmentsLabel bool           `json:"show_segments_label"` // labels on major ticks
	ArcWidth          float64        `json:"arc_width"`           // 5..50
	SweepAngle        float64        `json:"sweep_angle"`         // degrees, opening at the bottom
}

// Card is a gauge configuration registered under a dashboard slot id.
type Card struct {
	ID     string      `json:"id"`
	Config GaugeConfig `json:"config"`
}
