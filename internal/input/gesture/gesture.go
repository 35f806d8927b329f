// Package gesture tracks a single drag-to-release interaction.
//
// A Tracker moves between two states. Begin opens a session (Idle to
// Active); End or Cancel closes it (Active to Idle). Only one session is
// active at a time: beginning a new session while one is active discards
// the old one without release evaluation.
package gesture

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/inertia/internal/scroll"
)

// Phase is the tracker state.
type Phase uint8

const (
	// Idle means no session is open.
	Idle Phase = iota
	// Active means a session is open and accepting moves.
	Active
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Session is the record of one drag interaction.
type Session struct {
	// ID identifies the session in notifications and logs.
	ID uuid.UUID

	// StartOffset is the committed scroll offset when the session opened.
	StartOffset scroll.Vector

	// StartPoint is the client point of the drag start.
	StartPoint scroll.Vector

	// StartTime is when the session opened.
	StartTime time.Time

	// LastPoint is the client point of the most recent move. It equals
	// StartPoint until the first move.
	LastPoint scroll.Vector

	// LastMoveTime is when the most recent move arrived.
	LastMoveTime time.Time

	// Dragging is true once at least one move has been seen.
	Dragging bool

	// Moves counts the move events seen.
	Moves int
}

// Target returns the offset that keeps the content under the pointer at p:
// startOffset - (p - startPoint).
func (s *Session) Target(p scroll.Vector) scroll.Vector {
	return s.StartOffset.Sub(p.Sub(s.StartPoint))
}

// Displacement returns startPoint - lastPoint. Positive values mean the
// pointer moved toward the origin (content scrolled forward).
func (s *Session) Displacement() scroll.Vector {
	return s.StartPoint.Sub(s.LastPoint)
}

// Release summarizes a closed session.
type Release struct {
	Session

	// EndPoint is the client point reported with the release.
	EndPoint scroll.Vector

	// EndTime is when the release arrived.
	EndTime time.Time

	// Axis is the axis the distance was measured on.
	Axis scroll.Axis

	// Distance is startPoint - lastPoint along Axis.
	Distance float64

	// Elapsed is the time from session start to release.
	Elapsed time.Duration
}

// Speed returns |Distance| / Elapsed in px per ms. Zero elapsed time
// yields zero.
func (r Release) Speed() float64 {
	ms := float64(r.Elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		return 0
	}
	return math.Abs(r.Distance) / ms
}

// Tracker owns the active session.
type Tracker struct {
	phase   Phase
	session Session
	newID   func() uuid.UUID
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{newID: uuid.New}
}

// Phase returns the current state.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// Active reports whether a session is open.
func (t *Tracker) Active() bool {
	return t.phase == Active
}

// Session returns the open session.
func (t *Tracker) Session() (Session, bool) {
	if t.phase != Active {
		return Session{}, false
	}
	return t.session, true
}

// Begin opens a session at point p with the given committed offset. If a
// session was already open it is discarded and returned as superseded.
func (t *Tracker) Begin(p scroll.Vector, now time.Time, offset scroll.Vector) (Session, *Session) {
	var superseded *Session
	if t.phase == Active {
		old := t.session
		superseded = &old
	}

	t.phase = Active
	t.session = Session{
		ID:           t.newID(),
		StartOffset:  offset,
		StartPoint:   p,
		StartTime:    now,
		LastPoint:    p,
		LastMoveTime: now,
	}
	return t.session, superseded
}

// Move records a pointer move and returns the target offset for it.
// It returns false when no session is open.
func (t *Tracker) Move(p scroll.Vector, now time.Time) (scroll.Vector, bool) {
	if t.phase != Active {
		return scroll.Vector{}, false
	}

	t.session.Dragging = true
	t.session.LastPoint = p
	t.session.LastMoveTime = now
	t.session.Moves++
	return t.session.Target(p), true
}

// FirstMove reports whether the open session has seen exactly one move.
func (t *Tracker) FirstMove() bool {
	return t.phase == Active && t.session.Moves == 1
}

// End closes the session and measures the release along axis.
// It returns false when no session is open.
func (t *Tracker) End(p scroll.Vector, now time.Time, axis scroll.Axis) (Release, bool) {
	if t.phase != Active {
		return Release{}, false
	}

	s := t.session
	t.reset()

	return Release{
		Session:  s,
		EndPoint: p,
		EndTime:  now,
		Axis:     axis,
		Distance: s.Displacement().Get(axis),
		Elapsed:  now.Sub(s.StartTime),
	}, true
}

// Cancel closes the session without a release.
func (t *Tracker) Cancel() (Session, bool) {
	if t.phase != Active {
		return Session{}, false
	}
	s := t.session
	t.reset()
	return s, true
}

func (t *Tracker) reset() {
	t.phase = Idle
	t.session = Session{}
}
