package app

import (
	"math"
	"time"

	"github.com/dshills/inertia/internal/input/flick"
	"github.com/dshills/inertia/internal/input/mouse"
	"github.com/dshills/inertia/internal/renderer/backend"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scrollview"
)

// Compile-time interface checks.
var (
	_ mouse.Target  = (*scrollTarget)(nil)
	_ mouse.Wheeler = (*scrollTarget)(nil)
)

// pageDuration is the length of animated keyboard scrolls.
const pageDuration = 250 * time.Millisecond

// scrollTarget adapts the scroll engine to the mouse handler. Wheel input
// becomes an unanimated ScrollTo.
type scrollTarget struct {
	view *scrollview.ScrollView
}

func (t *scrollTarget) DragStart(p scroll.Vector) { t.view.DragStart(p) }
func (t *scrollTarget) DragMove(p scroll.Vector)  { t.view.DragMove(p) }
func (t *scrollTarget) DragEnd(p scroll.Vector)   { t.view.DragEnd(p) }
func (t *scrollTarget) DragCancel()               { t.view.DragCancel() }
func (t *scrollTarget) Flick(f flick.Flick)       { t.view.Flick(f) }

func (t *scrollTarget) Wheel(dx, dy float64) {
	o := t.view.Offset()
	t.view.ScrollTo(o.X+dx, o.Y+dy)
}

// keyCommand is a scroll triggered from the keyboard.
type keyCommand func(app *Application)

// keyCommands binds navigation keys to scrolls.
var keyCommands = map[backend.Key]keyCommand{
	backend.KeyHome: func(app *Application) {
		app.view.ScrollTo(math.NaN(), 0, scrollview.WithDuration(pageDuration))
	},
	backend.KeyEnd: func(app *Application) {
		app.view.ScrollTo(math.NaN(), app.view.Bounds()[scroll.AxisY].Max, scrollview.WithDuration(pageDuration))
	},
	backend.KeyPageDown: func(app *Application) { app.page(1) },
	backend.KeyPageUp:   func(app *Application) { app.page(-1) },
	backend.KeyDown:     func(app *Application) { app.step(0, 1) },
	backend.KeyUp:       func(app *Application) { app.step(0, -1) },
	backend.KeyRight:    func(app *Application) { app.step(1, 0) },
	backend.KeyLeft:     func(app *Application) { app.step(-1, 0) },
	backend.KeyCtrlL: func(app *Application) {
		app.view.Sync()
		app.viewport.Draw()
	},
}

// runeCommands binds printable keys.
var runeCommands = map[rune]keyCommand{
	'j': func(app *Application) { app.step(0, 1) },
	'k': func(app *Application) { app.step(0, -1) },
	'h': func(app *Application) { app.step(-1, 0) },
	'l': func(app *Application) { app.step(1, 0) },
	' ': func(app *Application) { app.page(1) },
	'b': func(app *Application) { app.page(-1) },
	'g': keyCommands[backend.KeyHome],
	'G': keyCommands[backend.KeyEnd],
	's': func(app *Application) { app.view.Stop() },
}

// page scrolls by one viewport height, animated from the committed offset.
func (app *Application) page(dir float64) {
	h := app.viewport.Viewport().Height
	o := app.view.Offset()
	app.view.ScrollTo(math.NaN(), o.Y+dir*h, scrollview.WithDuration(pageDuration))
}

// step scrolls by one cell.
func (app *Application) step(cols, rows int) {
	unit := app.viewport.CellToPx(1, 1)
	o := app.view.Offset()
	app.view.ScrollTo(o.X+float64(cols)*unit.X, o.Y+float64(rows)*unit.Y)
}
