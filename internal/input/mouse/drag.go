package mouse

// dragTracker tracks mouse drag state.
type dragTracker struct {
	// active indicates a drag is in progress.
	active bool

	// moved indicates at least one drag report changed the position.
	moved bool

	// button is the mouse button being held.
	button Button

	// startPos is where the drag started.
	startPos Position

	// currentPos is the current drag position.
	currentPos Position
}

func newDragTracker() *dragTracker {
	return &dragTracker{}
}

func (t *dragTracker) start(pos Position, button Button) {
	t.active = true
	t.moved = false
	t.button = button
	t.startPos = pos
	t.currentPos = pos
}

func (t *dragTracker) update(pos Position) {
	if t.active {
		t.currentPos = pos
		t.moved = true
	}
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

func (t *dragTracker) isActive() bool {
	return t.active
}

func (t *dragTracker) getButton() Button {
	return t.button
}

func (t *dragTracker) getCurrentPos() Position {
	return t.currentPos
}

// getDelta returns the distance dragged from start.
func (t *dragTracker) getDelta() Position {
	return Position{
		X: t.currentPos.X - t.startPos.X,
		Y: t.currentPos.Y - t.startPos.Y,
	}
}

// DragState represents the current state of a drag operation.
type DragState struct {
	// Active indicates a drag is in progress.
	Active bool

	// Moved indicates the pointer moved since the press.
	Moved bool

	// Button is the mouse button being held.
	Button Button

	// StartPos is where the drag started.
	StartPos Position

	// CurrentPos is the current drag position.
	CurrentPos Position

	// Delta is CurrentPos - StartPos.
	Delta Position
}

// GetState returns the current drag state.
func (t *dragTracker) GetState() DragState {
	return DragState{
		Active:     t.active,
		Moved:      t.moved,
		Button:     t.button,
		StartPos:   t.startPos,
		CurrentPos: t.currentPos,
		Delta:      t.getDelta(),
	}
}

// ScrollDirection represents the direction of a wheel event.
type ScrollDirection uint8

const (
	// ScrollNone indicates no scroll.
	ScrollNone ScrollDirection = iota
	// ScrollUp indicates scrolling up (content moves down).
	ScrollUp
	// ScrollDown indicates scrolling down (content moves up).
	ScrollDown
	// ScrollLeft indicates scrolling left.
	ScrollLeft
	// ScrollRight indicates scrolling right.
	ScrollRight
)

// String returns a string representation of the scroll direction.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "none"
	}
}

// ButtonToScrollDirection converts a scroll button to a direction.
func ButtonToScrollDirection(b Button) ScrollDirection {
	switch b {
	case ButtonScrollUp:
		return ScrollUp
	case ButtonScrollDown:
		return ScrollDown
	case ButtonScrollLeft:
		return ScrollLeft
	case ButtonScrollRight:
		return ScrollRight
	default:
		return ScrollNone
	}
}
