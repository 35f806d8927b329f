package app

import (
	"fmt"

	"github.com/dshills/inertia/internal/input/mouse"
	"github.com/dshills/inertia/internal/renderer/backend"
	"github.com/dshills/inertia/internal/renderer/viewport"
	"github.com/dshills/inertia/internal/scroll"
	"github.com/dshills/inertia/internal/scrollview"
)

// bootstrap creates the viewport, engine and mouse handler, in that order,
// and draws the first frame.
func (app *Application) bootstrap(b backend.Backend) {
	vc := app.cfg.View
	vp := viewport.New(b, app.loop.Now,
		viewport.WithCellSize(vc.CellWidth, vc.CellHeight),
		viewport.WithStatusLine(vc.StatusLine),
		viewport.WithTransitionEnded(app.transitionEnded),
	)

	view := scrollview.New(app.loop, vp,
		scrollview.WithConfig(app.cfg.Scroll),
		scrollview.WithLogger(app.log.WithComponent("scrollview")),
	)
	view.Subscribe(app.metrics)
	view.Subscribe(scrollview.ListenerFuncs{
		OnChange: func(scrollview.ChangeEvent) { app.updateStatus() },
		OnEnd:    func(scrollview.EndEvent) { app.updateStatus() },
		OnFlick:  func(scrollview.FlickEvent) { app.updateStatus() },
	})

	handler := mouse.NewHandler(mouse.DefaultConfig(), &scrollTarget{view: view},
		mouse.WithPointMapper(func(p mouse.Position) scroll.Vector {
			return vp.CellToPx(p.X, p.Y)
		}),
		mouse.WithAxis(view.PrimaryAxis),
	)

	app.mu.Lock()
	app.viewport = vp
	app.view = view
	app.mouse = handler
	app.mu.Unlock()

	app.showDocument()
}

// showDocument loads the document into the viewport and announces the new
// dimensions.
func (app *Application) showDocument() {
	app.viewport.SetContent(app.doc.Lines)
	app.view.DimensionsChanged(app.viewport.Viewport(), app.viewport.Content())
	app.updateStatus()
	app.viewport.Draw()
}

// transitionEnded forwards the viewport's completion signal. It runs from
// Tick, on the loop.
func (app *Application) transitionEnded(seq uint64) {
	app.view.TransitionEnded(seq)
}

func (app *Application) updateStatus() {
	if !app.cfg.View.StatusLine {
		return
	}
	app.viewport.SetStatus(app.statusText())
}

func (app *Application) statusText() string {
	st := app.view.Status()
	m := app.metrics.Snapshot()
	return fmt.Sprintf(" %s  %-9s x=%-6.0f y=%-6.0f v=%+.3f px/ms  flicks=%d snaps=%d stale=%d frames=%d  q:quit",
		app.doc.Name, st.Phase, st.Offset.X, st.Offset.Y, st.Velocity,
		m.Flicks, m.Snaps, m.StaleReleases, m.MomentumFrames)
}
