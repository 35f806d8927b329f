package transition

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/pkg/errors"
)

// Easing names understood by the default registry.
const (
	Linear    = "linear"
	Ease      = "ease"
	EaseIn    = "ease-in"
	EaseOut   = "ease-out"
	EaseInOut = "ease-in-out"
	Spring    = "spring"

	// DefaultEasing is used by programmatic scrolls that name no easing.
	DefaultEasing = "cubic-bezier(0, 0.1, 0, 1.0)"

	// SnapEasing is used when an out-of-bounds offset returns to an edge.
	SnapEasing = EaseOut
)

// ErrUnknownEasing is returned when an easing name cannot be resolved.
var ErrUnknownEasing = errors.New("unknown easing")

// Func maps linear progress in [0, 1] to eased progress. It must return
// 0 at 0 and 1 at 1.
type Func func(t float64) float64

// Registry resolves easing names to functions. It is safe for concurrent
// use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry creates a registry holding the built-in easings.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.funcs[Linear] = linear
	r.funcs[Ease] = CubicBezier(0.25, 0.1, 0.25, 1)
	r.funcs[EaseIn] = CubicBezier(0.42, 0, 1, 1)
	r.funcs[EaseOut] = CubicBezier(0, 0, 0.58, 1)
	r.funcs[EaseInOut] = CubicBezier(0.42, 0, 0.58, 1)
	r.funcs[Spring] = SpringEasing(6, 1)
	return r
}

// Register adds or replaces a named easing.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Lookup resolves name. The empty name is linear. Names of the form
// "cubic-bezier(x1, y1, x2, y2)" and "spring(frequency, damping)" are
// parsed on demand.
func (r *Registry) Lookup(name string) (Func, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return linear, nil
	}

	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if ok {
		return fn, nil
	}

	switch {
	case strings.HasPrefix(name, "cubic-bezier("):
		args, err := parseArgs(name, "cubic-bezier", 4)
		if err != nil {
			return nil, err
		}
		if args[0] < 0 || args[0] > 1 || args[2] < 0 || args[2] > 1 {
			return nil, errors.Wrapf(ErrUnknownEasing, "%s: x control points must lie in [0, 1]", name)
		}
		fn = CubicBezier(args[0], args[1], args[2], args[3])
	case strings.HasPrefix(name, "spring("):
		args, err := parseArgs(name, "spring", 2)
		if err != nil {
			return nil, err
		}
		if args[0] <= 0 || args[1] < 0 {
			return nil, errors.Wrapf(ErrUnknownEasing, "%s: frequency must be positive", name)
		}
		fn = SpringEasing(args[0], args[1])
	default:
		return nil, errors.Wrap(ErrUnknownEasing, name)
	}

	r.Register(name, fn)
	return fn, nil
}

// Valid reports whether name resolves.
func (r *Registry) Valid(name string) bool {
	_, err := r.Lookup(name)
	return err == nil
}

var defaultRegistry = NewRegistry()

// Lookup resolves name in the default registry.
func Lookup(name string) (Func, error) {
	return defaultRegistry.Lookup(name)
}

// Valid reports whether name resolves in the default registry.
func Valid(name string) bool {
	return defaultRegistry.Valid(name)
}

func parseArgs(name, fn string, n int) ([]float64, error) {
	inner := strings.TrimPrefix(name, fn+"(")
	if !strings.HasSuffix(inner, ")") {
		return nil, errors.Wrapf(ErrUnknownEasing, "%s: missing closing parenthesis", name)
	}
	parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(parts) != n {
		return nil, errors.Wrapf(ErrUnknownEasing, "%s: want %d arguments, got %d", name, n, len(parts))
	}

	args := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrUnknownEasing, "%s: argument %d: %v", name, i+1, err)
		}
		args[i] = v
	}
	return args, nil
}

func linear(t float64) float64 {
	return clamp01(t)
}

// CubicBezier returns the timing function of a cubic Bézier curve through
// (0,0), (x1,y1), (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Func {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			dx := sampleX(t) - x
			if math.Abs(dx) < 1e-7 {
				return t
			}
			d := slopeX(t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 64 && lo < hi; i++ {
			v := sampleX(t)
			if math.Abs(v-x) < 1e-7 {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}

// springSamples is the resolution of a precomputed spring curve.
const springSamples = 120

// SpringEasing returns a damped-spring timing function. The curve is
// simulated once with harmonica over springSamples frames and scaled so
// that the last frame lands on 1.
func SpringEasing(frequency, damping float64) Func {
	spring := harmonica.NewSpring(harmonica.FPS(springSamples), frequency, damping)

	curve := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		curve[i] = pos
	}
	if end := curve[springSamples]; end != 0 {
		for i := range curve {
			curve[i] /= end
		}
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		f := t * springSamples
		i := int(f)
		frac := f - float64(i)
		return curve[i] + (curve[i+1]-curve[i])*frac
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
