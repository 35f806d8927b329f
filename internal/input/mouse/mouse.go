package mouse

import (
	"sync"
	"time"

	"github.com/dshills/inertia/internal/input/flick"
	"github.com/dshills/inertia/internal/scroll"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonScrollLeft:
		return "scroll-left"
	case ButtonScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown ||
		b == ButtonScrollLeft || b == ButtonScrollRight
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Modifier is the set of keyboard modifiers held during an event.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool {
	return m&ModShift != 0
}

// Position represents a screen coordinate in cells.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event represents a mouse input event.
type Event struct {
	// Position is the screen coordinates.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers Modifier

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Target receives the drag pipeline produced by a Handler.
type Target interface {
	DragStart(p scroll.Vector)
	DragMove(p scroll.Vector)
	DragEnd(p scroll.Vector)
	DragCancel()
	Flick(f flick.Flick)
}

// Wheeler is implemented by targets that accept wheel scrolling. dx and
// dy are offset deltas in px.
type Wheeler interface {
	Wheel(dx, dy float64)
}

// Config configures mouse handler behavior.
type Config struct {
	// ScrollLines is the number of lines to scroll per wheel tick.
	ScrollLines int

	// ScrollLinesShift is the number of lines when Shift is held.
	ScrollLinesShift int

	// FlickWindow is how far back release velocity is measured.
	FlickWindow time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		ScrollLines:      3,
		ScrollLinesShift: 1,
		FlickWindow:      flick.DefaultWindow,
	}
}

// Handler turns terminal mouse reports into drag gestures.
//
// Terminals report button state, not transitions; Classify recovers
// press, drag and release from consecutive reports. A left-button drag
// becomes DragStart/DragMove/DragEnd on the target, and every release is
// followed by a Flick measured from the recent drag samples.
type Handler struct {
	mu     sync.Mutex
	config Config
	target Target

	toPx func(Position) scroll.Vector
	axis func() scroll.Axis

	estimator *flick.Estimator
	drag      *dragTracker
	held      Button
}

// Option configures a Handler.
type Option func(*Handler)

// WithPointMapper sets the cell to px conversion. The default maps one
// cell to one px.
func WithPointMapper(fn func(Position) scroll.Vector) Option {
	return func(h *Handler) {
		if fn != nil {
			h.toPx = fn
		}
	}
}

// WithAxis sets the function naming the axis a release is measured
// along. The default is vertical.
func WithAxis(fn func() scroll.Axis) Option {
	return func(h *Handler) {
		if fn != nil {
			h.axis = fn
		}
	}
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(config Config, target Target, opts ...Option) *Handler {
	h := &Handler{
		config: config,
		target: target,
		toPx: func(p Position) scroll.Vector {
			return scroll.Vector{X: float64(p.X), Y: float64(p.Y)}
		},
		axis:      func() scroll.Axis { return scroll.AxisY },
		estimator: flick.NewEstimator(config.FlickWindow),
		drag:      newDragTracker(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Classify converts a button-state report into an event.
func (h *Handler) Classify(pos Position, buttons Button, mods Modifier, now time.Time) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev := Event{Position: pos, Button: buttons, Modifiers: mods, Timestamp: now}
	switch {
	case buttons.IsScroll():
		ev.Action = ActionPress
	case buttons != ButtonNone && h.held == ButtonNone:
		ev.Action = ActionPress
		h.held = buttons
	case buttons != ButtonNone:
		ev.Action = ActionDrag
		ev.Button = h.held
	case h.held != ButtonNone:
		ev.Action = ActionRelease
		ev.Button = h.held
		h.held = ButtonNone
	default:
		ev.Action = ActionMove
	}
	return ev
}

// Handle processes a mouse event.
func (h *Handler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Action {
	case ActionPress:
		if event.Button.IsScroll() {
			h.handleWheel(event)
			return
		}
		h.handlePress(event)
	case ActionDrag:
		h.handleDrag(event)
	case ActionRelease:
		h.handleRelease(event)
	}
}

func (h *Handler) handlePress(event Event) {
	if event.Button != ButtonLeft {
		return
	}
	p := h.toPx(event.Position)
	h.drag.start(event.Position, event.Button)
	h.estimator.Begin(p, event.Timestamp)
	h.target.DragStart(p)
}

func (h *Handler) handleDrag(event Event) {
	if !h.drag.isActive() || h.drag.getButton() != event.Button {
		return
	}
	if event.Position.Equal(h.drag.getCurrentPos()) {
		return
	}
	h.drag.update(event.Position)
	p := h.toPx(event.Position)
	h.estimator.Add(p, event.Timestamp)
	h.target.DragMove(p)
}

func (h *Handler) handleRelease(event Event) {
	if !h.drag.isActive() || h.drag.getButton() != event.Button {
		return
	}
	h.drag.end()

	p := h.toPx(event.Position)
	axis := h.axis()
	h.target.DragEnd(p)

	f, ok := h.estimator.Release(p, event.Timestamp, axis)
	if !ok {
		f = flick.Flick{Axis: axis}
	}
	h.target.Flick(f)
}

func (h *Handler) handleWheel(event Event) {
	w, ok := h.target.(Wheeler)
	if !ok {
		return
	}
	lines := h.config.ScrollLines
	if event.Modifiers.HasShift() {
		lines = h.config.ScrollLinesShift
	}
	unit := h.toPx(Position{X: lines, Y: lines}).Sub(h.toPx(Position{}))

	switch ButtonToScrollDirection(event.Button) {
	case ScrollUp:
		w.Wheel(0, -unit.Y)
	case ScrollDown:
		w.Wheel(0, unit.Y)
	case ScrollLeft:
		w.Wheel(-unit.X, 0)
	case ScrollRight:
		w.Wheel(unit.X, 0)
	}
}

// Reset clears all handler state. An active drag is aborted with
// DragCancel on the target and no flick.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.drag.isActive() {
		h.target.DragCancel()
	}
	h.drag.end()
	h.estimator.Reset()
	h.held = ButtonNone
}

// IsDragging returns true if a drag operation is in progress.
func (h *Handler) IsDragging() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.isActive()
}

// DragState returns the current drag state.
func (h *Handler) DragState() DragState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drag.GetState()
}
