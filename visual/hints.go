package visual

import (
	"fmt"
	"strconv"
)

// DeviceHints are the optional hardware hints a platform may expose.
// A nil field means the platform does not report it.
type DeviceHints struct {
	Cores    *int
	MemoryGB *float64
}

// LowPower reports whether either available hint is at or below the
// configured limit. Missing hints never count toward low-power.
func (h DeviceHints) LowPower(cfg Config) bool {
	if h.Cores != nil && *h.Cores <= cfg.LowPowerMaxCores {
		return true
	}
	return h.MemoryGB != nil && *h.MemoryGB <= cfg.LowPowerMaxMemoryGB
}

// Label renders the hints for the status line, e.g. "HW 8C ??G".
func (h DeviceHints) Label() string {
	cores, mem := "??", "??"
	if h.Cores != nil {
		cores = strconv.Itoa(*h.Cores)
	}
	if h.MemoryGB != nil {
		mem = strconv.FormatFloat(*h.MemoryGB, 'f', -1, 64)
	}
	return fmt.Sprintf("HW %sC %sG", cores, mem)
}

// Hints builds DeviceHints from optional values; pass a negative number for
// an unavailable hint.
func Hints(cores int, memoryGB float64) DeviceHints {
	var h DeviceHints
	if cores >= 0 {
		h.Cores = &cores
	}
	if memoryGB >= 0 {
		h.MemoryGB = &memoryGB
	}
	return h
}
