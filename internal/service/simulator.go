package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"animated_gauge/internal/config"
	"animated_gauge/internal/models"
)

// Ramp modes of a simulated sensor.
const (
	ModeHeat = "HEAT"
	ModeCool = "COOL"
)

const (
	defaultRisePerSec = 3.0
	defaultFallPerSec = 5.0
	stateDecimals     = 1
)

// simEntity is the running state of one simulated sensor.
type simEntity struct {
	spec      config.SimulatedEntity
	value     float64
	mode      string
	updatedAt time.Time
}

// SimulatorService publishes sensor values that ramp up to High, then cool
// down to Low, so gauges have something to animate without a real host.
type SimulatorService struct {
	states States

	mu       sync.Mutex
	entities []*simEntity
}

// NewSimulatorService returns a simulator for specs. Every sensor starts at
// Low, heating.
func NewSimulatorService(states States, specs []config.SimulatedEntity) *SimulatorService {
	s := &SimulatorService{states: states}
	for _, spec := range specs {
		if spec.Entity == "" || spec.High <= spec.Low {
			continue
		}
		if spec.RisePerSec <= 0 {
			spec.RisePerSec = defaultRisePerSec
		}
		if spec.FallPerSec <= 0 {
			spec.FallPerSec = defaultFallPerSec
		}
		s.entities = append(s.entities, &simEntity{spec: spec, value: spec.Low, mode: ModeHeat})
	}
	return s
}

// Entities returns the ids of the simulated sensors.
func (s *SimulatorService) Entities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entities))
	for _, e := range s.entities {
		ids = append(ids, e.spec.Entity)
	}
	return ids
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	if len(s.entities) == 0 {
		return
	}
	s.step(ctx, time.Now())

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.step(ctx, now)
		}
	}
}

// step advances every sensor to now and publishes the ones that changed.
func (s *SimulatorService) step(ctx context.Context, now time.Time) {
	s.mu.Lock()
	var out []models.EntityState
	for _, e := range s.entities {
		if e.updatedAt.IsZero() {
			e.updatedAt = now
			out = append(out, e.snapshot(now))
			continue
		}
		elapsed := now.Sub(e.updatedAt).Seconds()
		if elapsed <= 0 {
			continue
		}
		var changed bool
		switch e.mode {
		case ModeHeat:
			changed = handleHeat(e, elapsed)
		default:
			changed = handleCooling(e, elapsed)
		}
		e.updatedAt = now
		if changed {
			out = append(out, e.snapshot(now))
		}
	}
	s.mu.Unlock()

	for _, st := range out {
		_, _ = s.states.Publish(ctx, st)
	}
}

// handleHeat ramps towards High and flips to COOL once it gets there.
// Returns true if the value changed.
func handleHeat(e *simEntity, elapsed float64) bool {
	prev := e.value
	e.value = min(prev+e.spec.RisePerSec*elapsed, e.spec.High)
	if e.value >= e.spec.High {
		e.mode = ModeCool
	}
	return e.value != prev
}

// handleCooling ramps towards Low and flips to HEAT once it gets there.
// Returns true if the value changed.
func handleCooling(e *simEntity, elapsed float64) bool {
	prev := e.value
	e.value = max(prev-e.spec.FallPerSec*elapsed, e.spec.Low)
	if e.value <= e.spec.Low {
		e.mode = ModeHeat
	}
	return e.value != prev
}

func (e *simEntity) snapshot(now time.Time) models.EntityState {
	return models.EntityState{
		EntityID: e.spec.Entity,
		State:    strconv.FormatFloat(e.value, 'f', stateDecimals, 64),
		Attributes: models.EntityAttributes{
			UnitOfMeasurement: e.spec.Unit,
			FriendlyName:      e.spec.FriendlyName,
		},
		LastUpdated: now.UTC(),
	}
}
