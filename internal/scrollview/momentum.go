package scrollview

import (
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
	"github.com/dshills/inertia/internal/scroll/momentum"
	"github.com/dshills/inertia/internal/scroll/state"
)

// momentumTarget is the view of a ScrollView the animator drives. Frames
// are hard-clamped and tagged programmatic.
type momentumTarget ScrollView

func (t *momentumTarget) Offset() scroll.Vector {
	return t.state.Offset()
}

func (t *momentumTarget) Bounds() [2]bounds.AxisBounds {
	return t.bounds.All()
}

func (t *momentumTarget) MomentumFrame(_ momentum.FlickState, f momentum.Frame) {
	v := (*ScrollView)(t)
	muts := v.write(f.Candidate, state.Request{Source: state.SourceProgrammatic})
	v.push(muts, 0, "")
	v.notifyChanges(muts, v.session)
}

func (t *momentumTarget) MomentumSettled(s momentum.FlickState, f momentum.Frame) {
	v := (*ScrollView)(t)
	v.log.WithField("session", v.session).Debug("momentum settled after %d frames, exceeded=%t",
		s.Frames, s.BoundaryExceeded())

	end := EndEvent{Session: v.session, BoundaryExceeded: s.BoundaryExceeded()}
	if v.snapTo(f.Candidate, end) {
		return
	}
	muts := v.write(f.Candidate, state.Request{Source: state.SourceProgrammatic})
	v.finish(muts, 0, "", end, PhaseIdle)
}
