package visual

// ManualFrames is a FrameScheduler driven by hand: callbacks queue until
// Fire. The trace simulator and tests use it in place of the browser.
type ManualFrames struct {
	pending []func(float64)
}

func (f *ManualFrames) RequestFrame(fn func(float64)) {
	f.pending = append(f.pending, fn)
}

// Pending returns the number of queued callbacks.
func (f *ManualFrames) Pending() int {
	return len(f.pending)
}

// Fire runs every queued callback with ts and returns how many ran.
// Callbacks requested while firing wait for the next Fire.
func (f *ManualFrames) Fire(ts float64) int {
	cbs := f.pending
	f.pending = nil
	for _, cb := range cbs {
		cb(ts)
	}
	return len(cbs)
}

// ManualLongTasks is a LongTaskSource fed by Report.
type ManualLongTasks struct {
	fn       func([]float64)
	gen      int
	Acquired int
	Released int
}

func (l *ManualLongTasks) Observe(fn func([]float64)) (func(), error) {
	l.fn = fn
	l.gen++
	l.Acquired++
	gen, done := l.gen, false
	return func() {
		if done {
			return
		}
		done = true
		if l.gen == gen {
			l.fn = nil
		}
		l.Released++
	}, nil
}

// Active reports whether an observer is currently connected.
func (l *ManualLongTasks) Active() bool {
	return l.fn != nil
}

// Report delivers durations to the connected observer, if any.
func (l *ManualLongTasks) Report(durationsMs ...float64) {
	if l.fn != nil {
		l.fn(durationsMs)
	}
}
