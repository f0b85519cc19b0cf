package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Sentinel states reported by the host when an entity has no usable value.
const (
	StateUnavailable = "unavailable"
	StateUnknown     = "unknown"
)

// EntityAttributes carries the display metadata the gauge falls back to.
type EntityAttributes struct {
	UnitOfMeasurement string `json:"unit_of_measurement,omitempty"`
	FriendlyName      string `json:"friendly_name,omitempty"`
}

// EntityState is one live snapshot of a host entity.
type EntityState struct {
	EntityID    string           `json:"entity_id" binding:"required"`
	State       string           `json:"state"` // string-encoded number or a sentinel
	Attributes  EntityAttributes `json:"attributes"`
	LastUpdated time.Time        `json:"last_updated"`
}

// Value parses State as a float. Sentinels, non-numeric and non-finite
// states ("inf", "NaN") report false.
func (s EntityState) Value() (float64, bool) {
	raw := strings.TrimSpace(s.State)
	if raw == "" || raw == StateUnavailable || raw == StateUnknown {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Sentinel reports whether the state is one of the host's no-data markers.
func (s EntityState) Sentinel() bool {
	return s.State == StateUnavailable || s.State == StateUnknown
}
