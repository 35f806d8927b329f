package config

import (
	"time"
)

// Section structs are plain values. Mutating a returned section does not
// modify the Config it came from.

// Scroll holds the scrolling physics and gesture settings.
type Scroll struct {
	// Deceleration multiplies the flick velocity every frame. Must lie in (0, 1).
	Deceleration float64 `mapstructure:"deceleration" toml:"deceleration" yaml:"deceleration"`

	// Bounce multiplies the velocity on frames past an edge and enables
	// rubber-band overscroll while dragging. Zero disables both. Must lie in [0, 1].
	Bounce float64 `mapstructure:"bounce" toml:"bounce" yaml:"bounce"`

	// FlickMinDistance is the minimum release travel in px.
	FlickMinDistance float64 `mapstructure:"flick_min_distance" toml:"flick_min_distance" yaml:"flick_min_distance"`

	// FlickMinVelocity is the minimum release speed in px/ms.
	FlickMinVelocity float64 `mapstructure:"flick_min_velocity" toml:"flick_min_velocity" yaml:"flick_min_velocity"`

	// BounceRange is the overscroll allowance in px while dragging.
	BounceRange float64 `mapstructure:"bounce_range" toml:"bounce_range" yaml:"bounce_range"`

	// FrameStepMs is the momentum frame interval in ms.
	FrameStepMs float64 `mapstructure:"frame_step_ms" toml:"frame_step_ms" yaml:"frame_step_ms"`

	// SnapDurationMs is the length of the snap-to-edge transition in ms.
	SnapDurationMs float64 `mapstructure:"snap_duration_ms" toml:"snap_duration_ms" yaml:"snap_duration_ms"`

	// SnapEasing is the easing of the snap-to-edge transition.
	SnapEasing string `mapstructure:"snap_easing" toml:"snap_easing" yaml:"snap_easing"`

	// Easing is the default easing of animated programmatic scrolls.
	Easing string `mapstructure:"easing" toml:"easing" yaml:"easing"`

	// StaleThresholdMs is the drag length in ms after which a release
	// is treated as a completed scroll without momentum.
	StaleThresholdMs float64 `mapstructure:"stale_threshold_ms" toml:"stale_threshold_ms" yaml:"stale_threshold_ms"`

	// SettleThreshold is the speed in px/ms at which momentum stops.
	SettleThreshold float64 `mapstructure:"settle_threshold" toml:"settle_threshold" yaml:"settle_threshold"`
}

// FrameStep returns FrameStepMs as a duration.
func (s Scroll) FrameStep() time.Duration {
	return millis(s.FrameStepMs)
}

// SnapDuration returns SnapDurationMs as a duration.
func (s Scroll) SnapDuration() time.Duration {
	return millis(s.SnapDurationMs)
}

// StaleThreshold returns StaleThresholdMs as a duration.
func (s Scroll) StaleThreshold() time.Duration {
	return millis(s.StaleThresholdMs)
}

// View holds the terminal viewer settings.
type View struct {
	// CellWidth and CellHeight map terminal cells to px.
	CellWidth  float64 `mapstructure:"cell_width" toml:"cell_width" yaml:"cell_width"`
	CellHeight float64 `mapstructure:"cell_height" toml:"cell_height" yaml:"cell_height"`

	// FrameIntervalMs is the redraw interval while a transition plays.
	FrameIntervalMs float64 `mapstructure:"frame_interval_ms" toml:"frame_interval_ms" yaml:"frame_interval_ms"`

	// StatusLine shows offset, velocity and counters on the last row.
	StatusLine bool `mapstructure:"status_line" toml:"status_line" yaml:"status_line"`
}

// FrameInterval returns FrameIntervalMs as a duration.
func (v View) FrameInterval() time.Duration {
	return millis(v.FrameIntervalMs)
}

// Log holds the logging settings.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" toml:"level" yaml:"level"`

	// File is the log file path. Empty logs to stderr, except in the
	// full-screen viewer where it disables logging.
	File string `mapstructure:"file" toml:"file" yaml:"file"`
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
