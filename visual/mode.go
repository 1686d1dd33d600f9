// Package visual implements the adaptive visual-performance monitor.
//
// The monitor samples frame timing for a short window after page load,
// classifies the device, and when performance looks strained offers to switch
// the page into a persisted low-visuals mode. The mode lives in a
// signals.Signal owned by the page bootstrap; the monitor applies every change
// to the body's data-visual attribute, which stylesheets use to gate
// expensive effects.
package visual

// Mode is the persisted rendering-quality flag.
type Mode string

const (
	Full Mode = "full"
	Low  Mode = "low"
)

// ParseMode maps a stored value to a Mode. Anything but "low" is Full.
func ParseMode(s string) Mode {
	if s == string(Low) {
		return Low
	}
	return Full
}

func (m Mode) label() string {
	if m == Low {
		return "LOW"
	}
	return "FULL"
}
