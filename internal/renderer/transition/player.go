package transition

import (
	"time"

	"github.com/dshills/inertia/internal/scroll"
)

// Player interpolates a transform over time. The render layer keeps one
// Player per in-flight transform and samples it once per frame.
type Player struct {
	transform Transform
	from      scroll.Vector
	start     time.Time
	ease      Func
}

// NewPlayer starts playing t from the offset currently on screen. Unknown
// easings fall back to linear.
func NewPlayer(from scroll.Vector, t Transform, start time.Time, reg *Registry) *Player {
	if reg == nil {
		reg = defaultRegistry
	}
	ease, err := reg.Lookup(t.Easing)
	if err != nil {
		ease = linear
	}
	return &Player{transform: t, from: from, start: start, ease: ease}
}

// Transform returns the transform being played.
func (p *Player) Transform() Transform {
	return p.transform
}

// At returns the offset at now and whether the transform has finished.
func (p *Player) At(now time.Time) (scroll.Vector, bool) {
	if !p.transform.Animated() {
		return p.transform.Offset, true
	}

	elapsed := now.Sub(p.start)
	if elapsed >= p.transform.Duration {
		return p.transform.Offset, true
	}
	if elapsed < 0 {
		elapsed = 0
	}

	k := p.ease(float64(elapsed) / float64(p.transform.Duration))
	to := p.transform.Offset
	return scroll.Vector{
		X: p.from.X + (to.X-p.from.X)*k,
		Y: p.from.Y + (to.Y-p.from.Y)*k,
	}, false
}
