// Package animation drives eased value transitions one frame at a time.
//
// Nothing in this package is safe for concurrent use: a FrameLoop, and every
// Scheduler registered on it, belong to the single goroutine that calls Fire.
package animation

import "time"

// FrameFunc is called with the timestamp of the frame it runs in.
type FrameFunc func(now time.Time)

// FrameHandle identifies a requested frame. The zero value is never issued.
type FrameHandle uint64

// Frames is a single-slot "next frame" registration.
type Frames interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)
}

// FrameLoop is a Frames implementation driven by explicit Fire calls, usually
// from a ticker in the owning goroutine's select loop.
type FrameLoop struct {
	next    FrameHandle
	pending FrameHandle
	fn      FrameFunc
}

// NewFrameLoop returns an idle loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// RequestFrame arms fn for the next Fire. An already pending callback is
// replaced; callers are expected to cancel it first.
func (l *FrameLoop) RequestFrame(fn FrameFunc) FrameHandle {
	l.next++
	l.pending = l.next
	l.fn = fn
	return l.pending
}

// CancelFrame disarms h. Stale or zero handles are ignored.
func (l *FrameLoop) CancelFrame(h FrameHandle) {
	if h == 0 || h != l.pending {
		return
	}
	l.pending = 0
	l.fn = nil
}

// Pending reports whether a callback is armed.
func (l *FrameLoop) Pending() bool {
	return l.fn != nil
}

// Fire runs the armed callback, if any, and reports whether one ran.
// The slot is cleared before the callback so it may re-arm itself.
func (l *FrameLoop) Fire(now time.Time) bool {
	fn := l.fn
	if fn == nil {
		return false
	}
	l.pending = 0
	l.fn = nil
	fn(now)
	return true
}
