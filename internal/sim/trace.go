// Package sim replays recorded frame-timing traces through visual.Monitor
// without a browser.
package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTrace is wrapped by every trace validation failure.
var ErrInvalidTrace = errors.New("sim: invalid trace")

// Trace describes one page load: the device, the stored state and the frame
// timings the browser would have delivered.
type Trace struct {
	Name string `yaml:"name"`

	Hints struct {
		Cores    *int     `yaml:"cores"`
		MemoryGB *float64 `yaml:"memory_gb"`
	} `yaml:"hints"`

	ReducedMotion bool   `yaml:"reduced_motion"`
	Hidden        bool   `yaml:"hidden"`
	StoredMode    string `yaml:"stored_mode"`
	Dismissed     bool   `yaml:"dismissed"`

	// Frames are explicit frame deltas in ms. Exactly one of Frames and
	// Generate must be set.
	Frames   []float64 `yaml:"frames"`
	Generate *Generate `yaml:"generate"`

	// LongTasks are task durations reported after the first frame. nil means
	// the platform cannot observe long tasks.
	LongTasks *[]float64 `yaml:"long_tasks"`

	// Respond is what the user does with the degrade banner: "reduce",
	// "dismiss" or nothing.
	Respond string `yaml:"respond"`
}

// Generate synthesizes evenly spread frames: JankFrames of them take JankMs
// each and the rest share the remaining time.
type Generate struct {
	Frames     int     `yaml:"frames"`
	DurationMs float64 `yaml:"duration_ms"`
	JankFrames int     `yaml:"jank_frames"`
	JankMs     float64 `yaml:"jank_ms"`
}

// ParseTrace decodes a YAML (or JSON) trace. Unknown fields are rejected.
func ParseTrace(data []byte) (Trace, error) {
	var tr Trace
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tr); err != nil {
		return Trace{}, fmt.Errorf("parsing trace: %w", err)
	}
	if err := tr.Validate(); err != nil {
		return Trace{}, err
	}
	return tr, nil
}

// LoadTrace reads a trace file.
func LoadTrace(path string) (Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("reading trace: %w", err)
	}
	tr, err := ParseTrace(data)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	if tr.Name == "" {
		tr.Name = path
	}
	return tr, nil
}

// Validate checks the trace is replayable.
func (t Trace) Validate() error {
	switch {
	case t.Generate == nil && len(t.Frames) == 0:
		return fmt.Errorf("%w: one of frames or generate is required", ErrInvalidTrace)
	case t.Generate != nil && len(t.Frames) > 0:
		return fmt.Errorf("%w: frames and generate are exclusive", ErrInvalidTrace)
	}
	for i, d := range t.Frames {
		if d <= 0 {
			return fmt.Errorf("%w: frame %d has non-positive delta %v", ErrInvalidTrace, i, d)
		}
	}
	if t.Generate != nil {
		if err := t.Generate.validate(); err != nil {
			return err
		}
	}
	switch t.StoredMode {
	case "", "full", "low":
	default:
		return fmt.Errorf("%w: stored_mode %q", ErrInvalidTrace, t.StoredMode)
	}
	switch t.Respond {
	case "", "reduce", "dismiss":
	default:
		return fmt.Errorf("%w: respond %q", ErrInvalidTrace, t.Respond)
	}
	return nil
}

func (g Generate) validate() error {
	if g.Frames <= 0 || g.DurationMs <= 0 {
		return fmt.Errorf("%w: generate needs positive frames and duration_ms", ErrInvalidTrace)
	}
	if g.JankFrames < 0 || g.JankFrames > g.Frames {
		return fmt.Errorf("%w: jank_frames out of range", ErrInvalidTrace)
	}
	if g.JankFrames > 0 && g.JankMs <= 0 {
		return fmt.Errorf("%w: jank_ms must be positive", ErrInvalidTrace)
	}
	rest := g.DurationMs - float64(g.JankFrames)*g.JankMs
	if g.JankFrames < g.Frames && rest <= 0 {
		return fmt.Errorf("%w: jank frames leave no time for the others", ErrInvalidTrace)
	}
	return nil
}

// Offsets returns each frame's timestamp relative to the window start.
func (t Trace) Offsets() []float64 {
	if t.Generate != nil {
		return t.Generate.offsets()
	}
	out := make([]float64, len(t.Frames))
	sum := 0.0
	for i, d := range t.Frames {
		sum += d
		out[i] = sum
	}
	return out
}

// offsets spreads the janky frames evenly and pins the last frame to
// DurationMs so rounding never leaves the window a hair short.
func (g Generate) offsets() []float64 {
	smooth := 0.0
	if n := g.Frames - g.JankFrames; n > 0 {
		smooth = (g.DurationMs - float64(g.JankFrames)*g.JankMs) / float64(n)
	}
	out := make([]float64, g.Frames)
	at := 0.0
	for i := range out {
		if (i*g.JankFrames)/g.Frames != ((i+1)*g.JankFrames)/g.Frames {
			at += g.JankMs
		} else {
			at += smooth
		}
		out[i] = at
	}
	out[len(out)-1] = g.DurationMs
	return out
}
