package scenario

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/dshills/inertia/internal/config"
)

// DefaultScriptTimeout bounds the wall time of a Lua scenario.
const DefaultScriptTimeout = 5 * time.Second

// ErrScript wraps errors raised by a Lua scenario.
var ErrScript = errors.New("scenario script failed")

// RunLuaFile runs a Lua scenario from disk.
func (r *Runner) RunLuaFile(ctx context.Context, path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return r.RunLua(ctx, name, string(src))
}

// RunLua runs a Lua scenario.
//
// The script drives a scroll view on a manual clock. Only the base,
// table, string and math libraries are available. Time passes only
// through wait; when the script returns, the runner fires timers until
// the view settles.
func (r *Runner) RunLua(ctx context.Context, name, source string) (res *Result, err error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultScriptTimeout)
		defer cancel()
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	L.SetContext(ctx)

	s := &luaScript{
		env:  newEnv(r.base, r.log),
		name: name,
	}
	s.install(L)

	defer func() {
		if p := recover(); p != nil {
			res, err = nil, errors.Wrapf(ErrScript, "%s: panic: %v", name, p)
		}
	}()
	if err := L.DoString(source); err != nil {
		return nil, errors.Wrapf(ErrScript, "%s: %v", name, err)
	}

	s.env.settle(r.timerLimit)
	return s.env.result(s.name), nil
}

type luaScript struct {
	env  *env
	name string
}

func (s *luaScript) install(L *lua.LState) {
	funcs := map[string]lua.LGFunction{
		"name":       s.setName,
		"viewport":   s.viewport,
		"content":    s.content,
		"configure":  s.configure,
		"drag_start": s.drag(OpDragStart),
		"drag_move":  s.drag(OpDragMove),
		"drag_end":   s.drag(OpDragEnd),
		"flick":      s.flick,
		"scroll_to":  s.scrollTo,
		"stop":       s.stop,
		"sync":       s.sync,
		"wait":       s.wait,
		"now":        s.now,
		"offset":     s.offset,
		"phase":      s.phase,
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

func (s *luaScript) setName(L *lua.LState) int {
	s.name = L.CheckString(1)
	return 0
}

func (s *luaScript) viewport(L *lua.LState) int {
	w, h := float64(L.CheckNumber(1)), float64(L.CheckNumber(2))
	s.env.resize(Size{Width: w, Height: h}, Size{Width: s.env.content.ScrollWidth, Height: s.env.content.ScrollHeight})
	return 0
}

func (s *luaScript) content(L *lua.LState) int {
	w, h := float64(L.CheckNumber(1)), float64(L.CheckNumber(2))
	s.env.resize(Size{Width: s.env.viewport.Width, Height: s.env.viewport.Height}, Size{Width: w, Height: h})
	return 0
}

// configure overlays a table of scroll settings, keyed like the config
// file, onto the current configuration.
func (s *luaScript) configure(L *lua.LState) int {
	tbl := L.CheckTable(1)
	values := make(map[string]any)
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch v := v.(type) {
		case lua.LNumber:
			values[string(key)] = float64(v)
		case lua.LString:
			values[string(key)] = string(v)
		case lua.LBool:
			values[string(key)] = bool(v)
		}
	})

	cfg, err := overlayScroll(s.env.view.Config(), values)
	if err != nil {
		L.RaiseError("configure: %v", err)
		return 0
	}
	s.env.view.SetConfig(cfg)
	return 0
}

func (s *luaScript) drag(op Op) lua.LGFunction {
	return func(L *lua.LState) int {
		st := Step{Op: op, X: float64(L.CheckNumber(1)), Y: float64(L.CheckNumber(2))}
		if err := s.env.apply(st); err != nil {
			L.RaiseError("%v", err)
		}
		return 0
	}
}

// flick(velocity [, direction [, axis [, distance]]])
// Distance defaults to the configured minimum, so a standalone flick
// passes the distance gate. After a release the release travel is used.
func (s *luaScript) flick(L *lua.LState) int {
	velocity := float64(L.CheckNumber(1))
	direction := float64(L.OptNumber(2, 1))
	axis, err := parseAxis(L.OptString(3, ""))
	if err != nil {
		L.ArgError(3, err.Error())
		return 0
	}
	distance := float64(L.OptNumber(4, lua.LNumber(s.env.view.Config().FlickMinDistance)))
	s.env.flick(velocity, direction, axis, distance)
	return 0
}

// scroll_to(x, y [, ms [, easing]])
func (s *luaScript) scrollTo(L *lua.LState) int {
	x, y := float64(L.CheckNumber(1)), float64(L.CheckNumber(2))
	ms := float64(L.OptNumber(3, 0))
	s.env.scrollTo(x, y, ms, L.OptString(4, ""))
	return 0
}

func (s *luaScript) stop(L *lua.LState) int {
	L.Push(lua.LBool(s.env.view.Stop()))
	return 1
}

func (s *luaScript) sync(*lua.LState) int {
	s.env.view.Sync()
	return 0
}

func (s *luaScript) wait(L *lua.LState) int {
	ms := float64(L.CheckNumber(1))
	if ms < 0 {
		L.ArgError(1, "negative wait")
		return 0
	}
	s.env.wait(ms)
	return 0
}

func (s *luaScript) now(L *lua.LState) int {
	L.Push(lua.LNumber(s.env.elapsed()))
	return 1
}

func (s *luaScript) offset(L *lua.LState) int {
	o := s.env.view.Offset()
	L.Push(lua.LNumber(o.X))
	L.Push(lua.LNumber(o.Y))
	return 2
}

func (s *luaScript) phase(L *lua.LState) int {
	L.Push(lua.LString(s.env.view.Status().Phase.String()))
	return 1
}

// overlayScroll decodes values over base using the config file keys.
func overlayScroll(base config.Scroll, values map[string]any) (config.Scroll, error) {
	data, err := yaml.Marshal(values)
	if err != nil {
		return base, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	cfg := base
	if err := dec.Decode(&cfg); err != nil {
		return base, errors.Wrap(err, "decode settings")
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
