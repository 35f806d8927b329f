// Package scenario replays scripted gestures against a scroll view on a
// manual clock and records every notification.
//
// Scenarios come in two formats. A YAML scenario is a declarative list of
// timed steps; a Lua scenario is a script driving the view through a small
// API (drag_start, flick, wait, ...). Both produce the same ordered trace
// of Records.
package scenario

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inertia/internal/config"
)

// Sentinel errors.
var (
	// ErrUnknownStep is returned for a step whose op is not recognised.
	ErrUnknownStep = errors.New("unknown step")

	// ErrUnsupportedFormat is returned for files that are neither YAML
	// nor Lua.
	ErrUnsupportedFormat = errors.New("unsupported scenario format")

	// ErrInvalidScenario is returned when a scenario fails validation.
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Op names a step operation.
type Op string

// Step operations.
const (
	OpDragStart Op = "dragStart"
	OpDragMove  Op = "dragMove"
	OpDragEnd   Op = "dragEnd"
	OpFlick     Op = "flick"
	OpScrollTo  Op = "scrollTo"
	OpStop      Op = "stop"
	OpResize    Op = "resize"
	OpSync      Op = "sync"
)

var knownOps = map[Op]bool{
	OpDragStart: true,
	OpDragMove:  true,
	OpDragEnd:   true,
	OpFlick:     true,
	OpScrollTo:  true,
	OpStop:      true,
	OpResize:    true,
	OpSync:      true,
}

// Size is a width/height pair in px.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one timed operation.
type Step struct {
	// At is the time of the step in ms from the scenario start.
	At float64 `yaml:"at"`
	Op Op      `yaml:"op"`

	// X and Y are the pointer position for drag steps, the target for
	// scrollTo, or the content size for resize.
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`

	// Flick parameters.
	Velocity  float64 `yaml:"velocity"`
	Direction float64 `yaml:"direction"`
	Axis      string  `yaml:"axis"`
	Distance  float64 `yaml:"distance"`

	// ScrollTo transition.
	Duration float64 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
}

// Scenario is a declarative gesture script.
type Scenario struct {
	Name string `yaml:"name"`

	// Config is the scroll configuration. Keys left out keep their
	// defaults.
	Config config.Scroll `yaml:"config"`

	// overrides holds the config keys a parsed file sets. Nil for a
	// scenario built in code.
	overrides map[string]any

	Viewport Size   `yaml:"viewport"`
	Content  Size   `yaml:"content"`
	Steps    []Step `yaml:"steps"`

	// Until is the time in ms the scenario runs to after the last step.
	// Zero runs until no timer is pending.
	Until float64 `yaml:"until"`
}

// Parse decodes a YAML scenario.
func Parse(data []byte, path string) (*Scenario, error) {
	s := &Scenario{Config: config.DefaultScroll()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "parse scenario %s", path)
	}
	var raw struct {
		Config map[string]any `yaml:"config"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse scenario %s", path)
	}
	s.overrides = raw.Config
	if s.overrides == nil {
		s.overrides = map[string]any{}
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	return s, nil
}

// LoadFile reads a YAML scenario from disk.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	return Parse(data, path)
}

// ConfigOver returns base with the keys the scenario file sets applied on
// top. A scenario built in code returns its Config unchanged.
func (s *Scenario) ConfigOver(base config.Scroll) (config.Scroll, error) {
	if s.overrides == nil {
		return s.Config, nil
	}
	cfg, err := overlayScroll(base, s.overrides)
	if err != nil {
		return base, errors.Wrapf(err, "scenario %s config", s.Name)
	}
	return cfg, nil
}

// Validate checks step order, op names and the scroll configuration.
func (s *Scenario) Validate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	last := 0.0
	for i, st := range s.Steps {
		if !knownOps[st.Op] {
			return errors.Wrapf(ErrUnknownStep, "step %d: %q", i, st.Op)
		}
		if st.At < last {
			return errors.Wrapf(ErrInvalidScenario, "step %d: at=%g before previous step at=%g", i, st.At, last)
		}
		if st.Op == OpFlick {
			if _, err := parseAxis(st.Axis); err != nil {
				return errors.Wrapf(err, "step %d", i)
			}
		}
		last = st.At
	}
	if s.Until != 0 && s.Until < last {
		return errors.Wrapf(ErrInvalidScenario, "until=%g before last step at=%g", s.Until, last)
	}
	return nil
}

// Format identifies a scenario file type.
type Format int

const (
	FormatYAML Format = iota
	FormatLua
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".lua":
		return FormatLua, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}
