// Package viewport draws scrollable text content on a terminal backend.
//
// A Viewport is the render layer of the scrolling engine: it implements
// transition.Sync, eases between offsets on every Tick, and reports the end
// of each animated transform through the TransitionEnded callback.
// Offsets are in px; content is laid out on a grid of fixed-size cells.
package viewport

import (
	"math"
	"sync"
	"time"

	"github.com/dshills/inertia/internal/renderer/backend"
	"github.com/dshills/inertia/internal/renderer/core"
	"github.com/dshills/inertia/internal/renderer/transition"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scroll/bounds"
)

const tabWidth = 4

// Viewport represents the visible portion of the content.
type Viewport struct {
	mu sync.RWMutex

	backend backend.Backend
	now     func() time.Time
	reg     *transition.Registry

	// Cell size in px
	cellW float64
	cellH float64

	// Size in screen cells, including the status line
	cols int
	rows int

	statusLine bool
	status     string

	lines    [][]core.Cell
	maxWidth int
	style    core.Style

	// offset is the offset currently on screen.
	offset scroll.Vector
	player *transition.Player

	onEnd func(seq uint64)
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithCellSize sets the px size of one terminal cell.
func WithCellSize(w, h float64) Option {
	return func(v *Viewport) {
		if w > 0 && h > 0 {
			v.cellW, v.cellH = w, h
		}
	}
}

// WithStatusLine reserves the bottom row for a status line.
func WithStatusLine(enabled bool) Option {
	return func(v *Viewport) {
		v.statusLine = enabled
	}
}

// WithRegistry sets the easing registry used to play transforms.
func WithRegistry(reg *transition.Registry) Option {
	return func(v *Viewport) {
		v.reg = reg
	}
}

// WithTransitionEnded sets the callback invoked from Tick when an
// animated transform finishes.
func WithTransitionEnded(fn func(seq uint64)) Option {
	return func(v *Viewport) {
		v.onEnd = fn
	}
}

// New creates a viewport drawing on b. now is the time source for
// transitions.
func New(b backend.Backend, now func() time.Time, opts ...Option) *Viewport {
	v := &Viewport{
		backend: b,
		now:     now,
		cellW:   8,
		cellH:   16,
		style:   core.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.cols, v.rows = b.Size()
	return v
}

// SetContent replaces the displayed lines.
func (v *Viewport) SetContent(lines []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lines = make([][]core.Cell, len(lines))
	v.maxWidth = 0
	for i, line := range lines {
		v.lines[i] = core.CellsFromString(line, v.style, tabWidth)
		v.maxWidth = max(v.maxWidth, len(v.lines[i]))
	}
}

// Resize records the new terminal size in cells.
func (v *Viewport) Resize(cols, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cols, v.rows = max(cols, 0), max(rows, 0)
}

// ContentRows returns the number of rows available to content.
func (v *Viewport) ContentRows() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.contentRows()
}

func (v *Viewport) contentRows() int {
	if v.statusLine && v.rows > 0 {
		return v.rows - 1
	}
	return v.rows
}

// Viewport returns the visible extent in px.
func (v *Viewport) Viewport() bounds.Viewport {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return bounds.Viewport{
		Width:  float64(v.cols) * v.cellW,
		Height: float64(v.contentRows()) * v.cellH,
	}
}

// Content returns the full content extent in px.
func (v *Viewport) Content() bounds.Content {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return bounds.Content{
		ScrollWidth:  float64(v.maxWidth) * v.cellW,
		ScrollHeight: float64(len(v.lines)) * v.cellH,
	}
}

// CellToPx converts a screen cell to the px position of its top-left
// corner.
func (v *Viewport) CellToPx(col, row int) scroll.Vector {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return scroll.Vector{X: float64(col) * v.cellW, Y: float64(row) * v.cellH}
}

// SetStatus sets the status line text. It is drawn on the next Draw.
func (v *Viewport) SetStatus(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = text
}

// Offset returns the offset currently on screen.
func (v *Viewport) Offset() scroll.Vector {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// IsAnimating reports whether a transform is still playing.
func (v *Viewport) IsAnimating() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.player != nil
}

// ApplyTransform implements transition.Sync. A jump is drawn at once; an
// animated transform starts playing from the offset on screen and
// replaces any transform still in flight.
func (v *Viewport) ApplyTransform(t transition.Transform) {
	v.mu.Lock()
	if t.Animated() {
		v.player = transition.NewPlayer(v.offset, t, v.now(), v.reg)
	} else {
		v.player = nil
		v.offset = t.Offset
	}
	v.mu.Unlock()

	v.Draw()
}

// Tick advances the transform in flight and redraws. It reports whether
// a transform is still playing. The TransitionEnded callback runs after
// the final frame is drawn.
func (v *Viewport) Tick() bool {
	v.mu.Lock()
	if v.player == nil {
		v.mu.Unlock()
		return false
	}
	offset, done := v.player.At(v.now())
	v.offset = offset
	seq := v.player.Transform().Seq
	if done {
		v.player = nil
	}
	onEnd := v.onEnd
	v.mu.Unlock()

	v.Draw()
	if done && onEnd != nil {
		onEnd(seq)
	}
	return !done
}

// Draw renders the content at the offset on screen.
func (v *Viewport) Draw() {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rows := v.contentRows()
	top := int(math.Floor(v.offset.Y / v.cellH))
	left := int(math.Floor(v.offset.X / v.cellW))

	for row := 0; row < rows; row++ {
		line := top + row
		var cells []core.Cell
		if line >= 0 && line < len(v.lines) {
			cells = v.lines[line]
		}
		for col, c := range core.Window(cells, left, v.cols) {
			v.backend.SetCell(col, row, c)
		}
	}

	if v.statusLine && v.rows > 0 {
		style := core.DefaultStyle().Reverse()
		status := core.Window(core.CellsFromString(v.status, style, tabWidth), 0, v.cols)
		for col, c := range status {
			c.Style = style
			v.backend.SetCell(col, v.rows-1, c)
		}
	}
	v.backend.Show()
}
