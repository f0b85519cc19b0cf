package animation

import (
	"math"
	"time"
)

// Duration is the length of every value transition.
const Duration = 800 * time.Millisecond

// Phase is the scheduler state.
type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Transition is the in-flight interpolation; only meaningful while Animating.
type Transition struct {
	From  float64
	To    float64
	Start time.Time
}

// State is the scheduler's explicit state machine.
type State struct {
	Phase      Phase
	Transition Transition
}

// EaseOutCubic decelerates towards the end: 1 - (1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Scheduler owns the single value transition of one gauge. Each frame it
// publishes the interpolated value through onFrame; the last frame of a
// transition publishes the target exactly.
type Scheduler struct {
	frames   Frames
	now      func() time.Time
	onFrame  func(value float64)
	duration time.Duration

	state       State
	displayed   float64
	hasValue    bool
	handle      FrameHandle
	lastElapsed time.Duration
}

// NewScheduler returns an idle scheduler. now supplies transition start
// times and onFrame receives every displayed value.
func NewScheduler(frames Frames, now func() time.Time, onFrame func(value float64)) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		frames:   frames,
		now:      now,
		onFrame:  onFrame,
		duration: Duration,
	}
}

// State returns a copy of the current state.
func (s *Scheduler) State() State {
	return s.state
}

// Animating reports whether a transition is in flight.
func (s *Scheduler) Animating() bool {
	return s.state.Phase == Animating
}

// Displayed returns the value currently on screen, if any frame was shown.
func (s *Scheduler) Displayed() (float64, bool) {
	return s.displayed, s.hasValue
}

// Retarget starts a transition towards to. It departs from the displayed
// value when there is one, otherwise from origin. Retargeting to the target
// already being animated towards keeps the running curve.
func (s *Scheduler) Retarget(origin, to float64) {
	switch s.state.Phase {
	case Animating:
		if s.state.Transition.To == to {
			return
		}
	case Idle:
	}

	from := origin
	if s.hasValue {
		from = s.displayed
	}

	s.cancel()
	s.state = State{
		Phase:      Animating,
		Transition: Transition{From: from, To: to, Start: s.now()},
	}
	s.lastElapsed = 0
	s.handle = s.frames.RequestFrame(s.tick)
}

// Stop cancels the pending frame and leaves the displayed value where it is.
func (s *Scheduler) Stop() {
	s.cancel()
	s.state = State{Phase: Idle}
}

// Reset cancels any transition and forgets the displayed value.
func (s *Scheduler) Reset() {
	s.Stop()
	s.displayed = 0
	s.hasValue = false
}

func (s *Scheduler) cancel() {
	if s.handle != 0 {
		s.frames.CancelFrame(s.handle)
		s.handle = 0
	}
}

func (s *Scheduler) tick(now time.Time) {
	s.handle = 0
	if s.state.Phase != Animating {
		return
	}
	tr := s.state.Transition

	// Frame time never runs backwards within a transition.
	elapsed := now.Sub(tr.Start)
	if elapsed < s.lastElapsed {
		elapsed = s.lastElapsed
	}
	s.lastElapsed = elapsed

	progress := math.Min(math.Max(float64(elapsed)/float64(s.duration), 0), 1)
	s.hasValue = true
	if progress < 1 {
		s.displayed = tr.From + (tr.To-tr.From)*EaseOutCubic(progress)
		s.handle = s.frames.RequestFrame(s.tick)
	} else {
		s.displayed = tr.To
		s.state = State{Phase: Idle}
	}
	if s.onFrame != nil {
		s.onFrame(s.displayed)
	}
}
