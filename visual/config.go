package visual

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("visual: invalid config")

// Config holds the measurement window and the degrade thresholds.
type Config struct {
	// SampleWindowMs is the length of one measurement window.
	SampleWindowMs float64 `yaml:"sample_window_ms"`
	// JankFrameMs is the frame delta above which a frame counts as jank.
	JankFrameMs float64 `yaml:"jank_frame_ms"`
	// StatusEvery publishes an intermediate status line every N frames.
	StatusEvery int `yaml:"status_every_frames"`

	// A device is low-power when it reports at most this many cores or
	// at most this much memory.
	LowPowerMaxCores    int     `yaml:"low_power_max_cores"`
	LowPowerMaxMemoryGB float64 `yaml:"low_power_max_memory_gb"`

	LowPower Limits `yaml:"low_power"`
	Normal   Limits `yaml:"normal"`

	StorageKey   string `yaml:"storage_key"`
	DismissedKey string `yaml:"dismissed_key"`
}

// Limits are the degrade thresholds for one device class. A window degrades
// when jank >= JankFrames, fps < MinFPS, or long tasks > LongTaskMs.
type Limits struct {
	JankFrames int     `yaml:"jank_frames"`
	MinFPS     float64 `yaml:"min_fps"`
	LongTaskMs float64 `yaml:"long_task_ms"`
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic("visual: embedded defaults: " + err.Error())
	}
	return cfg
}

// ParseConfig overlays YAML data on the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing visual config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML file and passes it to ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading visual config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks that all values are usable.
func (c Config) Validate() error {
	if c.SampleWindowMs <= 0 {
		return fmt.Errorf("%w: sample_window_ms must be positive", ErrInvalidConfig)
	}
	if c.JankFrameMs <= 0 {
		return fmt.Errorf("%w: jank_frame_ms must be positive", ErrInvalidConfig)
	}
	if c.StatusEvery <= 0 {
		return fmt.Errorf("%w: status_every_frames must be positive", ErrInvalidConfig)
	}
	if c.StorageKey == "" || c.DismissedKey == "" {
		return fmt.Errorf("%w: storage keys are required", ErrInvalidConfig)
	}
	for name, l := range map[string]Limits{"low_power": c.LowPower, "normal": c.Normal} {
		if l.JankFrames <= 0 || l.MinFPS <= 0 || l.LongTaskMs <= 0 {
			return fmt.Errorf("%w: %s limits must be positive", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Limits returns the thresholds for the device class.
func (c Config) Limits(lowPower bool) Limits {
	if lowPower {
		return c.LowPower
	}
	return c.Normal
}
