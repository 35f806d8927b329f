// Package app runs the full-screen inertial scrolling viewer. It wires the
// terminal backend, the mouse handler, the scroll engine and the viewport
// together on a single event loop and manages their lifecycle.
package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dshills/inertia/internal/clock"
	"github.com/dshills/inertia/internal/config"
	"github.com/dshills/inertia/internal/input/mouse"
	"github.com/dshills/inertia/internal/logging"
	"github.com/dshills/inertia/internal/renderer/backend"
	"github.com/dshills/inertia/internal/renderer/viewport"
	"github.com/dshills/inertia/internal/scrollview"
)

// DefaultSampleLines is the length of the generated document.
const DefaultSampleLines = 500

// Application is the viewer. All engine and viewport calls happen on the
// loop goroutine. An Application runs once.
type Application struct {
	mu sync.RWMutex

	opts Options
	log  *logging.Logger
	cfg  config.Config
	doc  *Document

	loop     *clock.Loop
	backend  backend.Backend
	view     *scrollview.ScrollView
	viewport *viewport.Viewport
	mouse    *mouse.Handler
	metrics  *Metrics

	running atomic.Bool
	cancel  context.CancelFunc
}

// Options configures the application.
type Options struct {
	// Config is the loaded configuration.
	Config config.Config

	// File is the document to show. Empty shows generated sample text.
	File string

	// ConfigPath is the config file watched for live reload. Empty
	// disables reload.
	ConfigPath string

	// ConfigOptions are passed to config.Load on reload, e.g. the flag
	// layer.
	ConfigOptions []config.Option

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Null()
	}
	app := &Application{
		opts:    opts,
		log:     log.WithComponent("app"),
		cfg:     opts.Config,
		loop:    clock.NewLoop(0),
		metrics: NewMetrics(),
	}

	if err := app.cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if err := RegisterViews(); err != nil {
		return nil, &InitError{Component: "metrics", Err: err}
	}

	if opts.File != "" {
		doc, err := LoadDocument(opts.File)
		if err != nil {
			return nil, &InitError{Component: "document", Err: err}
		}
		app.doc = doc
	} else {
		app.doc = SampleDocument(DefaultSampleLines)
	}
	return app, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and runs the viewer until ctx is
// cancelled, Shutdown is called or the user quits.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	b.EnableMouse()
	defer b.DisableMouse()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.mu.Lock()
	app.cancel = cancel
	app.mu.Unlock()

	app.bootstrap(b)
	app.log.Info("viewer started: document=%s lines=%d", app.doc.Name, len(app.doc.Lines))

	err := app.eventLoop(ctx)
	app.log.Info("viewer stopped")
	return err
}

// Shutdown stops a running viewer.
func (app *Application) Shutdown() {
	app.mu.RLock()
	cancel := app.cancel
	app.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Loop returns the event loop that owns the engine.
func (app *Application) Loop() *clock.Loop {
	return app.loop
}

// ScrollView returns the scroll engine. It is nil before Run and must
// only be used from the loop.
func (app *Application) ScrollView() *scrollview.ScrollView {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.view
}

// Viewport returns the viewport. It is nil before Run.
func (app *Application) Viewport() *viewport.Viewport {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.viewport
}

// Metrics returns the engine counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Document returns the document on display.
func (app *Application) Document() *Document {
	return app.doc
}

// Config returns the active configuration. It must only be called from
// the loop once the viewer runs.
func (app *Application) Config() config.Config {
	return app.cfg
}
