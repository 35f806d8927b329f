package app

import (
	"github.com/dshills/inertia/internal/input/mouse"
	"github.com/dshills/inertia/internal/renderer/backend"
)

// handleBackendEvent processes a backend event on the loop.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		app.handleMouseEvent(ev)
	case backend.EventFocus:
		if !ev.Focused {
			app.mouse.Reset()
		}
	}
	return nil
}

// handleResize updates the viewport size and the engine bounds. The
// committed offset is left alone.
func (app *Application) handleResize(ev backend.Event) {
	app.viewport.Resize(ev.Width, ev.Height)
	app.view.DimensionsChanged(app.viewport.Viewport(), app.viewport.Content())
	app.updateStatus()
	app.viewport.Draw()
}

// handleKeyEvent runs the command bound to a key.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch {
	case ev.Key == backend.KeyCtrlC, ev.Key == backend.KeyEscape:
		return ErrQuit
	case ev.Key == backend.KeyRune && (ev.Rune == 'q' || ev.Rune == 'Q'):
		return ErrQuit
	}

	var cmd keyCommand
	if ev.Key == backend.KeyRune {
		cmd = runeCommands[ev.Rune]
	} else {
		cmd = keyCommands[ev.Key]
	}
	if cmd != nil {
		cmd(app)
		app.updateStatus()
	}
	return nil
}

// handleMouseEvent feeds a mouse report to the gesture pipeline.
func (app *Application) handleMouseEvent(ev backend.Event) {
	pos := mouse.Position{X: ev.MouseX, Y: ev.MouseY}
	me := app.mouse.Classify(pos, convertButton(ev.MouseButton), convertMod(ev.Mod), app.loop.Now())
	app.mouse.Handle(me)
}

func convertButton(b backend.MouseButton) mouse.Button {
	switch b {
	case backend.MouseLeft:
		return mouse.ButtonLeft
	case backend.MouseMiddle:
		return mouse.ButtonMiddle
	case backend.MouseRight:
		return mouse.ButtonRight
	case backend.MouseWheelUp:
		return mouse.ButtonScrollUp
	case backend.MouseWheelDown:
		return mouse.ButtonScrollDown
	case backend.MouseWheelLeft:
		return mouse.ButtonScrollLeft
	case backend.MouseWheelRight:
		return mouse.ButtonScrollRight
	default:
		return mouse.ButtonNone
	}
}

func convertMod(m backend.ModMask) mouse.Modifier {
	mods := mouse.ModNone
	if m.Has(backend.ModShift) {
		mods |= mouse.ModShift
	}
	if m.Has(backend.ModCtrl) {
		mods |= mouse.ModCtrl
	}
	if m.Has(backend.ModAlt) {
		mods |= mouse.ModAlt
	}
	return mods
}
