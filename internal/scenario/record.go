package scenario

import (
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scrollview"
)

// Record kinds.
const (
	KindStart     = "start"
	KindChange    = "change"
	KindEnd       = "end"
	KindFlick     = "flick"
	KindTransform = "transform"
)

// Record is one entry of a replay trace.
type Record struct {
	// AtMs is the manual clock time in ms from the scenario start.
	AtMs float64 `json:"at_ms"`
	Kind string  `json:"kind"`

	Axis     string        `json:"axis,omitempty"`
	Old      float64       `json:"old,omitempty"`
	New      float64       `json:"new,omitempty"`
	Offset   scroll.Vector `json:"offset"`
	Velocity float64       `json:"velocity,omitempty"`
	Duration float64       `json:"duration_ms,omitempty"`
	Easing   string        `json:"easing,omitempty"`
	Seq      uint64        `json:"seq,omitempty"`
	Source   string        `json:"source,omitempty"`
	Flags    []string      `json:"flags,omitempty"`
}

// HasFlag reports whether the record carries flag.
func (r Record) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// recorder turns scroll view notifications into records.
type recorder struct {
	e *env
}

func (r recorder) ScrollStart(ev scrollview.StartEvent) {
	var flags []string
	if ev.Programmatic {
		flags = append(flags, "programmatic")
	}
	r.e.record(Record{Kind: KindStart, Offset: ev.Offset, Flags: flags})
}

func (r recorder) ScrollChange(ev scrollview.ChangeEvent) {
	offset := r.e.view.Offset()
	r.e.record(Record{
		Kind:     KindChange,
		Axis:     ev.Axis.String(),
		Old:      ev.Old,
		New:      ev.New,
		Offset:   offset,
		Duration: durationMs(ev.Duration),
		Easing:   ev.Easing,
		Source:   ev.Source.String(),
	})
}

func (r recorder) ScrollEnd(ev scrollview.EndEvent) {
	var flags []string
	add := func(set bool, name string) {
		if set {
			flags = append(flags, name)
		}
	}
	add(ev.Stale, "stale")
	add(ev.Snapped, "snapped")
	add(ev.BoundaryExceeded, "boundary")
	add(ev.Programmatic, "programmatic")
	add(ev.Halfway, "halfway")
	add(ev.Forward, "forward")
	r.e.record(Record{Kind: KindEnd, Offset: ev.Offset, Flags: flags})
}

func (r recorder) Flick(ev scrollview.FlickEvent) {
	r.e.record(Record{
		Kind:     KindFlick,
		Axis:     ev.Flick.Axis.String(),
		Offset:   r.e.view.Offset(),
		Velocity: ev.Velocity,
	})
}
