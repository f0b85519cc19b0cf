// Package card is one gauge widget instance: it owns the configuration,
// watches incoming entity snapshots and animates the gauge between values.
//
// A Card is not safe for concurrent use. It must only be driven from the
// goroutine that fires its animation.FrameLoop.
package card

import (
	"math"
	"time"

	"animated_gauge/internal/animation"
	"animated_gauge/internal/gauge"
	"animated_gauge/internal/locale"
	"animated_gauge/internal/models"
)

// Size is the layout hint reported to the dashboard grid.
const Size = 3

// Surface receives every composed scene.
type Surface interface {
	Draw(scene gauge.Scene, value float64)
}

// Card is a gauge widget bound to one entity.
type Card struct {
	cfg      models.GaugeConfig
	strings  locale.Strings
	composer *gauge.Composer
	surface  Surface
	sched    *animation.Scheduler

	state    *models.EntityState // latest snapshot
	observed float64             // last numeric value seen, NaN if none
	torn     bool
}

// New builds a card for cfg that draws on surface. Frames and now come from
// the owning loop.
func New(cfg models.GaugeConfig, frames animation.Frames, now func() time.Time, surface Surface) *Card {
	c := &Card{
		cfg:      cfg,
		strings:  locale.Default(),
		composer: gauge.NewComposer(gauge.DefaultStyle()),
		surface:  surface,
		observed: math.NaN(),
	}
	c.sched = animation.NewScheduler(frames, now, c.render)
	return c
}

// Config returns the active configuration.
func (c *Card) Config() models.GaugeConfig {
	return c.cfg
}

// SetLocale selects the display strings.
func (c *Card) SetLocale(s locale.Strings) {
	c.strings = s
}

// SetStyle replaces the composer tuning.
func (c *Card) SetStyle(style gauge.Style) {
	c.composer = gauge.NewComposer(style)
}

// Scheduler exposes the animation state, mainly for diagnostics.
func (c *Card) Scheduler() *animation.Scheduler {
	return c.sched
}

// SetConfig swaps the configuration as a whole. Any running transition is
// dropped and the gauge is redrawn statically at the current value.
func (c *Card) SetConfig(cfg models.GaugeConfig) {
	if c.torn {
		return
	}
	c.cfg = cfg
	c.sched.Reset()
	c.observed = math.NaN()
	if c.state != nil {
		if v, ok := c.state.Value(); ok {
			c.observed = v
		}
		c.render(math.NaN())
	}
}

// SetState ingests a host snapshot. A changed numeric value starts (or
// retargets) a transition; otherwise the gauge is redrawn in place unless
// a transition is already painting frames.
func (c *Card) SetState(st *models.EntityState) {
	if c.torn {
		return
	}
	prev := c.observed
	c.state = st

	next, ok := math.NaN(), false
	if st != nil {
		next, ok = st.Value()
	}
	if ok {
		c.observed = next
	} else {
		c.observed = math.NaN()
	}

	if ok && next != prev {
		origin := prev
		if math.IsNaN(origin) {
			origin = c.cfg.Min
		}
		c.sched.Retarget(origin, next)
		return
	}
	if !c.sched.Animating() {
		c.render(c.displayed())
	}
}

// Teardown cancels the pending frame. The card ignores all input afterwards.
func (c *Card) Teardown() {
	c.sched.Stop()
	c.torn = true
}

// Scene composes the current frame without drawing it.
func (c *Card) Scene() gauge.Scene {
	return c.composer.Compose(c.cfg, c.displayed(), c.state, c.strings.NoData)
}

// displayed is the animated value on screen, or NaN to fall back to the raw value.
func (c *Card) displayed() float64 {
	if v, ok := c.sched.Displayed(); ok {
		return v
	}
	return math.NaN()
}

func (c *Card) render(value float64) {
	if c.surface == nil {
		return
	}
	scene := c.composer.Compose(c.cfg, value, c.state, c.strings.NoData)
	c.surface.Draw(scene, value)
}
