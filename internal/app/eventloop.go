package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/inertia/internal/config"
	"github.com/dshills/inertia/internal/config/watcher"
	"github.com/dshills/inertia/internal/renderer/backend"
)

// eventLoop runs the loop, the event poller, the frame ticker and the file
// watcher until ctx is cancelled or one of them fails.
func (app *Application) eventLoop(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := app.loop.Run(gctx)
		app.Shutdown()
		return err
	})
	g.Go(func() error {
		return app.pollEvents(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		app.loop.Stop()
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
		return nil
	})
	g.Go(func() error {
		app.runFrames(gctx)
		return nil
	})

	if paths := app.watchedPaths(); len(paths) > 0 {
		w, err := watcher.New(watcher.WithLogger(app.log.WithComponent("watcher")))
		if err != nil {
			app.log.Warn("live reload disabled: %v", err)
		} else {
			g.Go(func() error {
				return app.watch(gctx, w, paths)
			})
		}
	}

	return g.Wait()
}

// pollEvents reads backend events and posts them to the loop. An
// interrupt carrying a func() runs it on the loop after every event
// queued before it.
func (app *Application) pollEvents(ctx context.Context) error {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventClosed || ctx.Err() != nil {
			return nil
		}
		var task func()
		switch ev.Type {
		case backend.EventNone:
			continue
		case backend.EventInterrupt:
			fn, ok := ev.Data.(func())
			if !ok {
				continue
			}
			task = fn
		default:
			task = func() {
				if err := app.handleBackendEvent(ev); IsQuit(err) {
					app.log.Debug("quit requested")
					app.Shutdown()
				}
			}
		}
		if !app.loop.Post(task) {
			return nil
		}
	}
}

// runFrames ticks the viewport while a transition plays.
func (app *Application) runFrames(ctx context.Context) {
	ticker := time.NewTicker(app.cfg.View.FrameInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if app.viewport.IsAnimating() {
				app.loop.TryPost(app.tick)
			}
		}
	}
}

// tick advances the viewport by one frame.
func (app *Application) tick() {
	app.updateStatus()
	app.viewport.Tick()
}

// watchedPaths lists the files whose changes are applied live.
func (app *Application) watchedPaths() []string {
	var paths []string
	if app.opts.ConfigPath != "" {
		paths = append(paths, app.opts.ConfigPath)
	}
	if app.doc.Path != "" {
		paths = append(paths, app.doc.Path)
	}
	return paths
}

// watch forwards file changes to the loop until ctx is cancelled.
func (app *Application) watch(ctx context.Context, w *watcher.Watcher, paths []string) error {
	defer func() {
		if err := w.Stop(); err != nil {
			app.log.Warn("stop watcher: %v", err)
		}
	}()

	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			return errors.Wrapf(err, "watch %s", p)
		}
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		app.loop.Post(func() { app.fileChanged(ev.Path) })
	})
	w.Start()

	<-ctx.Done()
	return nil
}

// fileChanged reloads the config or the document. It runs on the loop.
func (app *Application) fileChanged(path string) {
	if app.opts.ConfigPath != "" && samePath(path, app.opts.ConfigPath) {
		app.reloadConfig()
	}
	if app.doc.Path != "" && samePath(path, app.doc.Path) {
		app.reloadDocument()
	}
}

// reloadConfig applies scroll settings from the config file. They take
// effect on the next release or momentum frame. View settings need a
// restart.
func (app *Application) reloadConfig() {
	opts := append([]config.Option{config.WithFile(app.opts.ConfigPath)}, app.opts.ConfigOptions...)
	cfg, err := config.Load(opts...)
	if err != nil {
		app.log.WithError(err).Warn("config reload rejected")
		return
	}
	if cfg.View != app.cfg.View {
		app.log.Info("view settings changed; restart to apply")
	}
	app.cfg.Scroll = cfg.Scroll
	app.view.SetConfig(cfg.Scroll)
	app.log.Info("config reloaded from %s", app.opts.ConfigPath)
}

func (app *Application) reloadDocument() {
	if err := app.doc.Reload(); err != nil {
		app.log.WithError(err).Warn("document reload failed")
		return
	}
	app.showDocument()
	app.log.Info("document reloaded: lines=%d", len(app.doc.Lines))
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
