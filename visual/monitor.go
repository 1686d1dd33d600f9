package visual

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/vcrobe/neonjsx/signals"
)

// Metrics is a snapshot of the latest measurement.
type Metrics struct {
	Mode      Mode
	Measuring bool

	Frames int
	FPS    float64
	Jank   int
	// LongTaskMs is meaningful only when LongTaskAvailable is true.
	LongTaskMs        float64
	LongTaskAvailable bool

	// Completed is set once a window ran to the end; Degraded is its verdict.
	Completed bool
	Degraded  bool
}

// Monitor drives the visual mode from frame-timing measurements and owns the
// floating status stick, the detail panel and the degrade banner.
//
// A Monitor is not safe for concurrent use; in the browser every callback
// runs on the event loop.
type Monitor struct {
	cfg    Config
	env    Env
	mode   *signals.Signal[Mode]
	logger *slog.Logger

	lowPower bool
	limits   Limits
	hwLabel  string

	win     *window
	last    Metrics
	prompts int

	// starting suppresses persistence while Start applies the resolved
	// default, so only explicit choices reach durable storage.
	starting bool
	// dismissedHere records a dismissal when session storage refuses it.
	dismissedHere bool

	ui          ui
	unsubscribe func()
}

// window is one active measurement. A callback whose window is no longer
// m.win belongs to a cancelled or superseded measurement.
type window struct {
	start, last float64
	frames      int
	jank        int
	longTask    float64
	observing   bool
	stop        func()
}

// New creates a monitor bound to mode. Nothing happens until Start.
func New(env Env, mode *signals.Signal[Mode], cfg Config, logger *slog.Logger) (*Monitor, error) {
	if env.Document == nil || env.Body == nil {
		return nil, errors.New("visual: env needs a document and a body")
	}
	if env.Frames == nil || env.Now == nil {
		return nil, errors.New("visual: env needs a frame scheduler and a clock")
	}
	if mode == nil {
		return nil, errors.New("visual: mode signal is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating monitor: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lowPower := env.Hints.LowPower(cfg)
	m := &Monitor{
		cfg:      cfg,
		env:      env,
		mode:     mode,
		logger:   logger.With("component", "visual"),
		lowPower: lowPower,
		limits:   cfg.Limits(lowPower),
		hwLabel:  env.Hints.Label(),
	}
	m.last.Mode = mode.Get()
	m.unsubscribe = mode.Subscribe(m.apply)
	return m, nil
}

// Start resolves the initial mode (stored value, then the reduced-motion
// preference, then Full), applies it, and opens a measurement window unless
// the mode is Low or the page is hidden. The resolved mode is not persisted.
func (m *Monitor) Start() {
	mode := Full
	if stored, ok := m.storedMode(); ok {
		mode = stored
	} else if m.env.prefersReducedMotion() {
		mode = Low
	}

	m.logger.Debug("visual: start", "mode", mode, "low_power", m.lowPower, "hints", m.hwLabel)
	m.starting = true
	m.mode.Set(mode)
	m.starting = false

	if mode == Low || !m.env.visible() {
		return
	}
	m.MeasurePerformance()
}

// MeasurePerformance opens a measurement window if none is active and the
// mode is Full.
func (m *Monitor) MeasurePerformance() {
	if m.win != nil || m.mode.Get() == Low {
		return
	}
	m.ui.ensureStick(m)

	now := m.env.Now()
	w := &window{start: now, last: now}
	m.win = w
	m.last = Metrics{Mode: m.mode.Get(), Measuring: true}

	if m.env.LongTasks != nil {
		stop, err := m.env.LongTasks.Observe(func(durations []float64) {
			if m.win != w {
				return
			}
			for _, d := range durations {
				w.longTask += d
			}
		})
		if err != nil {
			m.logger.Debug("visual: long-task observer unavailable", "error", err)
		} else {
			w.observing = true
			w.stop = stop
		}
	}

	m.env.Frames.RequestFrame(func(ts float64) { m.tick(w, ts) })
}

func (m *Monitor) tick(w *window, now float64) {
	if m.win != w {
		return
	}
	if m.mode.Get() == Low {
		m.stopWindow()
		m.ui.updateStick(m, Low, nil)
		return
	}

	if now-w.last > m.cfg.JankFrameMs {
		w.jank++
	}
	w.frames++
	w.last = now
	elapsed := now - w.start

	if w.frames%m.cfg.StatusEvery == 0 {
		m.publish(w, elapsed)
	}

	if elapsed < m.cfg.SampleWindowMs {
		m.env.Frames.RequestFrame(func(ts float64) { m.tick(w, ts) })
		return
	}

	m.stopWindow()
	metrics := m.publish(w, elapsed)
	degraded := w.jank >= m.limits.JankFrames ||
		metrics.FPS < m.limits.MinFPS ||
		(w.observing && w.longTask > m.limits.LongTaskMs)

	m.last.Completed = true
	m.last.Degraded = degraded
	m.logger.Info("visual: measurement complete",
		"fps", math.Round(metrics.FPS),
		"jank", w.jank,
		"long_task_ms", longTaskLabel(w),
		"low_power", m.lowPower,
		"degraded", degraded,
	)

	if degraded {
		m.showBanner()
	}
}

func (m *Monitor) publish(w *window, elapsed float64) Metrics {
	fps := 0.0
	if elapsed > 0 {
		fps = float64(w.frames) / (elapsed / 1000)
	}
	m.last = Metrics{
		Mode:              m.mode.Get(),
		Measuring:         m.win == w,
		Frames:            w.frames,
		FPS:               fps,
		Jank:              w.jank,
		LongTaskMs:        w.longTask,
		LongTaskAvailable: w.observing,
	}
	m.ui.updateStick(m, m.last.Mode, &m.last)
	return m.last
}

// stopWindow ends the active window and releases the long-task observer.
func (m *Monitor) stopWindow() {
	w := m.win
	if w == nil {
		return
	}
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}
	m.win = nil
	m.last.Measuring = false
}

// SetMode is the manual toggle. Low halts any active window; Full on a
// visible page starts a fresh one. An open banner is removed either way.
func (m *Monitor) SetMode(mode Mode) {
	m.ui.removeBanner()
	if mode == Full {
		m.stopWindow()
	}
	m.mode.Set(mode)
	if mode == Full && m.env.visible() {
		m.MeasurePerformance()
	}
}

// Reduce is the banner's primary action: switch to Low.
func (m *Monitor) Reduce() {
	m.mode.Set(Low)
	m.ui.removeBanner()
}

// Dismiss is the banner's secondary action: hide it and suppress further
// prompts for the rest of the session. The mode is unchanged.
func (m *Monitor) Dismiss() {
	m.markDismissed()
	m.ui.removeBanner()
}

// apply runs on every mode change, whoever made it.
func (m *Monitor) apply(mode Mode) {
	if mode == Low {
		m.stopWindow()
	}
	m.env.Body.SetAttribute("data-visual", string(mode))
	if !m.starting {
		m.writeStoredMode(mode)
	}
	m.last.Mode = mode
	m.ui.updateStick(m, mode, nil)
	m.ui.updatePanel(mode)
}

func (m *Monitor) showBanner() {
	if m.dismissed() || m.mode.Get() == Low || m.ui.banner != nil {
		return
	}
	m.ui.showBanner(m)
	m.prompts++
	m.logger.Info("visual: suggested reducing visuals")
}

// TogglePanel opens the detail panel, or closes it when open.
func (m *Monitor) TogglePanel() {
	m.ui.togglePanel(m)
}

// Snapshot returns the latest metrics.
func (m *Monitor) Snapshot() Metrics {
	s := m.last
	s.Mode = m.mode.Get()
	s.Measuring = m.win != nil
	return s
}

// Measuring reports whether a window is active.
func (m *Monitor) Measuring() bool {
	return m.win != nil
}

// LowPower reports the device classification.
func (m *Monitor) LowPower() bool {
	return m.lowPower
}

// Prompts returns how many times the degrade banner was shown.
func (m *Monitor) Prompts() int {
	return m.prompts
}

// BannerVisible reports whether the degrade banner is on screen.
func (m *Monitor) BannerVisible() bool {
	return m.ui.banner != nil
}

// Close stops measuring, detaches from the mode signal and removes the UI.
func (m *Monitor) Close() {
	m.stopWindow()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.ui.removeAll()
}

func (m *Monitor) storedMode() (Mode, bool) {
	if m.env.Local == nil {
		return Full, false
	}
	v, ok, err := m.env.Local.Get(m.cfg.StorageKey)
	if err != nil {
		m.logger.Debug("visual: reading stored mode", "error", err)
		return Full, false
	}
	if !ok {
		return Full, false
	}
	return ParseMode(v), true
}

func (m *Monitor) writeStoredMode(mode Mode) {
	if m.env.Local == nil {
		return
	}
	if err := m.env.Local.Set(m.cfg.StorageKey, string(mode)); err != nil {
		m.logger.Debug("visual: persisting mode", "error", err)
	}
}

func (m *Monitor) dismissed() bool {
	if m.dismissedHere {
		return true
	}
	if m.env.Session == nil {
		return false
	}
	v, ok, err := m.env.Session.Get(m.cfg.DismissedKey)
	if err != nil {
		m.logger.Debug("visual: reading dismissal", "error", err)
		return false
	}
	return ok && v == "1"
}

func (m *Monitor) markDismissed() {
	m.dismissedHere = true
	if m.env.Session == nil {
		return
	}
	if err := m.env.Session.Set(m.cfg.DismissedKey, "1"); err != nil {
		m.logger.Debug("visual: recording dismissal", "error", err)
	}
}

func longTaskLabel(w *window) string {
	if !w.observing {
		return "n/a"
	}
	return fmt.Sprintf("%dms", int64(math.Round(w.longTask)))
}
