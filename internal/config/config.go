package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/inertia/internal/config/loader"
	"github.com/dshills/inertia/internal/logging"
	"github.com/dshills/inertia/internal/renderer/transition"
)

// EnvPrefix is the prefix of environment overrides, e.g. INERTIA_SCROLL_BOUNCE.
const EnvPrefix = "INERTIA"

// Config is the complete inertia configuration.
type Config struct {
	Scroll Scroll `mapstructure:"scroll" toml:"scroll" yaml:"scroll"`
	View   View   `mapstructure:"view" toml:"view" yaml:"view"`
	Log    Log    `mapstructure:"log" toml:"log" yaml:"log"`
}

// DefaultScroll returns the built-in scroll settings.
func DefaultScroll() Scroll {
	return Scroll{
		Deceleration:     0.98,
		Bounce:           0.7,
		FlickMinDistance: 10,
		FlickMinVelocity: 0,
		BounceRange:      150,
		FrameStepMs:      10,
		SnapDurationMs:   400,
		SnapEasing:       transition.SnapEasing,
		Easing:           transition.DefaultEasing,
		StaleThresholdMs: 100,
		SettleThreshold:  0.015,
	}
}

// DefaultView returns the built-in viewer settings.
func DefaultView() View {
	return View{
		CellWidth:       8,
		CellHeight:      16,
		FrameIntervalMs: 16,
		StatusLine:      true,
	}
}

// DefaultLog returns the built-in log settings.
func DefaultLog() Log {
	return Log{Level: "info"}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Scroll: DefaultScroll(), View: DefaultView(), Log: DefaultLog()}
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"deceleration":       "scroll.deceleration",
	"bounce":             "scroll.bounce",
	"flick-min-distance": "scroll.flick_min_distance",
	"flick-min-velocity": "scroll.flick_min_velocity",
	"log-level":          "log.level",
	"log-file":           "log.file",
}

// RegisterFlags defines the configuration override flags on fs. Their
// defaults mirror Default so help output stays accurate.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64("deceleration", d.Scroll.Deceleration, "flick velocity multiplier per frame, in (0,1)")
	fs.Float64("bounce", d.Scroll.Bounce, "edge bounce coefficient, in [0,1]; 0 disables overscroll")
	fs.Float64("flick-min-distance", d.Scroll.FlickMinDistance, "minimum flick travel in px")
	fs.Float64("flick-min-velocity", d.Scroll.FlickMinVelocity, "minimum flick speed in px/ms")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.String("log-file", d.Log.File, "log file path")
}

type options struct {
	file      string
	fs        loader.FileSystem
	envPrefix string
	flags     *pflag.FlagSet
	overrides map[string]any
}

// Option configures Load.
type Option func(*options)

// WithFile loads the given config file. A missing explicit file is an
// error; without WithFile the default user file is used if present.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithFileSystem reads config files through fs.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithEnvPrefix changes the environment prefix. An empty prefix disables
// environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithFlags binds the flags registered by RegisterFlags. Only flags the
// user actually set override lower layers.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *options) {
		o.flags = fs
	}
}

// WithOverrides merges a partial configuration tree above the file layer,
// e.g. the config block of a scenario.
func WithOverrides(m map[string]any) Option {
	return func(o *options) {
		o.overrides = m
	}
}

// DefaultFile returns the user config file path, preferring TOML.
func DefaultFile(fs loader.FileSystem) string {
	dir := defaultUserConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := fs.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load builds the layered configuration and validates it.
func Load(opts ...Option) (Config, error) {
	o := options{fs: loader.DefaultFS(), envPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()
	setDefaults(v, Default())

	path := o.file
	if path == "" {
		path = DefaultFile(o.fs)
	}
	if path != "" {
		m, err := loader.LoadFile(o.fs, path)
		if err != nil {
			if errors.Is(err, loader.ErrUnsupportedFormat) {
				return Config{}, errors.Wrap(ErrUnsupportedFormat, path)
			}
			return Config{}, errors.Wrap(err, "loading config")
		}
		if m == nil && o.file != "" {
			return Config{}, errors.Wrap(ErrFileNotFound, o.file)
		}
		if err := v.MergeConfigMap(m); err != nil {
			return Config{}, errors.Wrapf(err, "merging %s", path)
		}
	}

	if o.overrides != nil {
		if err := v.MergeConfigMap(loader.Clone(o.overrides)); err != nil {
			return Config{}, errors.Wrap(err, "merging overrides")
		}
	}

	if o.envPrefix != "" {
		v.SetEnvPrefix(o.envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if o.flags != nil {
		for name, key := range FlagKeys {
			if f := o.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "binding flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, c.Scroll.validate()...)
	errs = append(errs, c.View.validate()...)
	errs = append(errs, c.Log.validate()...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Validate checks the documented domains of the scroll settings.
// The engine never calls it: out-of-domain values are accepted there and
// degrade as documented.
func (s Scroll) Validate() error {
	if errs := s.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (s Scroll) validate() ValidationErrors {
	var errs ValidationErrors
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
		}
	}

	check(finite(s.Deceleration) && s.Deceleration > 0 && s.Deceleration < 1,
		"scroll.deceleration", "must lie in (0, 1)", s.Deceleration)
	check(finite(s.Bounce) && s.Bounce >= 0 && s.Bounce <= 1,
		"scroll.bounce", "must lie in [0, 1]", s.Bounce)
	check(finite(s.FlickMinDistance) && s.FlickMinDistance >= 0,
		"scroll.flick_min_distance", "must not be negative", s.FlickMinDistance)
	check(finite(s.FlickMinVelocity) && s.FlickMinVelocity >= 0,
		"scroll.flick_min_velocity", "must not be negative", s.FlickMinVelocity)
	check(finite(s.BounceRange) && s.BounceRange >= 0,
		"scroll.bounce_range", "must not be negative", s.BounceRange)
	check(finite(s.FrameStepMs) && s.FrameStepMs > 0,
		"scroll.frame_step_ms", "must be positive", s.FrameStepMs)
	check(finite(s.SnapDurationMs) && s.SnapDurationMs >= 0,
		"scroll.snap_duration_ms", "must not be negative", s.SnapDurationMs)
	check(finite(s.StaleThresholdMs) && s.StaleThresholdMs >= 0,
		"scroll.stale_threshold_ms", "must not be negative", s.StaleThresholdMs)
	check(finite(s.SettleThreshold) && s.SettleThreshold >= 0,
		"scroll.settle_threshold", "must not be negative", s.SettleThreshold)
	check(transition.Valid(s.SnapEasing), "scroll.snap_easing", "unknown easing", s.SnapEasing)
	check(transition.Valid(s.Easing), "scroll.easing", "unknown easing", s.Easing)
	return errs
}

func (v View) validate() ValidationErrors {
	var errs ValidationErrors
	if !(v.CellWidth > 0) || !(v.CellHeight > 0) {
		errs = append(errs, &ValidationError{Path: "view.cell_width", Message: "cell size must be positive",
			Value: [2]float64{v.CellWidth, v.CellHeight}})
	}
	if !(v.FrameIntervalMs > 0) {
		errs = append(errs, &ValidationError{Path: "view.frame_interval_ms", Message: "must be positive", Value: v.FrameIntervalMs})
	}
	return errs
}

func (l Log) validate() ValidationErrors {
	if l.Level != "" && !logging.ValidLevel(l.Level) {
		return ValidationErrors{{Path: "log.level", Message: "unknown level", Value: l.Level}}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("scroll.deceleration", c.Scroll.Deceleration)
	v.SetDefault("scroll.bounce", c.Scroll.Bounce)
	v.SetDefault("scroll.flick_min_distance", c.Scroll.FlickMinDistance)
	v.SetDefault("scroll.flick_min_velocity", c.Scroll.FlickMinVelocity)
	v.SetDefault("scroll.bounce_range", c.Scroll.BounceRange)
	v.SetDefault("scroll.frame_step_ms", c.Scroll.FrameStepMs)
	v.SetDefault("scroll.snap_duration_ms", c.Scroll.SnapDurationMs)
	v.SetDefault("scroll.snap_easing", c.Scroll.SnapEasing)
	v.SetDefault("scroll.easing", c.Scroll.Easing)
	v.SetDefault("scroll.stale_threshold_ms", c.Scroll.StaleThresholdMs)
	v.SetDefault("scroll.settle_threshold", c.Scroll.SettleThreshold)

	v.SetDefault("view.cell_width", c.View.CellWidth)
	v.SetDefault("view.cell_height", c.View.CellHeight)
	v.SetDefault("view.frame_interval_ms", c.View.FrameIntervalMs)
	v.SetDefault("view.status_line", c.View.StatusLine)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.file", c.Log.File)
}

func defaultUserConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "inertia")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inertia")
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
