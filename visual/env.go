package visual

import (
	"github.com/vcrobe/neonjsx/dom"
	"github.com/vcrobe/neonjsx/storage"
)

// FrameScheduler runs fn once before the next repaint with a monotonically
// increasing timestamp in milliseconds (requestAnimationFrame).
type FrameScheduler interface {
	RequestFrame(fn func(timestampMs float64))
}

// LongTaskSource observes main-thread work that blocked beyond the platform's
// threshold. Observe reports batches of task durations until stop is called.
type LongTaskSource interface {
	Observe(fn func(durationsMs []float64)) (stop func(), err error)
}

// Env is everything the monitor needs from the platform.
type Env struct {
	Document dom.Document
	// Body receives the data-visual attribute and the floating UI.
	Body dom.Element

	// Local persists the mode; Session holds the dismissal flag. Either may
	// be nil or fail, in which case in-memory defaults apply.
	Local   storage.Store
	Session storage.Store

	Frames FrameScheduler
	// Now returns the same clock the frame timestamps use.
	Now func() float64

	// LongTasks is nil when the platform cannot observe long tasks.
	LongTasks LongTaskSource
	Hints     DeviceHints

	PrefersReducedMotion func() bool
	// Visible reports page visibility; nil means always visible.
	Visible func() bool
}

func (e Env) visible() bool {
	return e.Visible == nil || e.Visible()
}

func (e Env) prefersReducedMotion() bool {
	return e.PrefersReducedMotion != nil && e.PrefersReducedMotion()
}
