package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inertia/internal/renderer/core"
)

func TestNullBackend_Cells(t *testing.T) {
	b := NewNullBackend(10, 3)
	require.NoError(t, b.Init())

	w, h := b.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 3, h)

	cell := core.NewStyledCell('X', core.DefaultStyle().Reverse())
	b.SetCell(2, 1, cell)
	b.SetCell(-1, 0, cell)
	b.SetCell(10, 0, cell)
	assert.Equal(t, cell, b.GetCell(2, 1))
	assert.Equal(t, core.EmptyCell(), b.GetCell(-1, 0))
	assert.Equal(t, "  X       ", b.Row(1))
	assert.Equal(t, "", b.Row(5))

	b.Clear()
	assert.Equal(t, core.EmptyCell(), b.GetCell(2, 1))

	b.Show()
	assert.Equal(t, 1, b.Shows())
}

func TestNullBackend_Events(t *testing.T) {
	b := NewNullBackend(10, 3)
	assert.True(t, b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'}))
	ev := b.PollEvent()
	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, 'q', ev.Rune)

	b.Resize(20, 5)
	ev = b.PollEvent()
	assert.Equal(t, EventResize, ev.Type)
	assert.Equal(t, 20, ev.Width)
	w, _ := b.Size()
	assert.Equal(t, 20, w)

	b.EnableMouse()
	assert.True(t, b.MouseEnabled())
	b.DisableMouse()
	assert.False(t, b.MouseEnabled())

	b.Shutdown()
	b.Shutdown()
	assert.Equal(t, EventClosed, b.PollEvent().Type)
	assert.False(t, b.PostEvent(Event{Type: EventKey}))
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(sim)
	require.NoError(t, term.Init())
	sim.SetSize(20, 4)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminal_Draw(t *testing.T) {
	term, sim := newSimTerminal(t)

	w, h := term.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 4, h)

	for i, c := range core.CellsFromString("hi", core.DefaultStyle(), 4) {
		term.SetCell(i, 1, c)
	}
	term.Show()

	cells, width, _ := sim.GetContents()
	require.Equal(t, 20, width)
	assert.Equal(t, []rune{'h'}, cells[width].Runes)
	assert.Equal(t, []rune{'i'}, cells[width+1].Runes)
}

func TestTerminal_MouseEvents(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectMouse(3, 2, tcell.Button1, tcell.ModNone)
	ev := term.PollEvent()
	for ev.Type == EventResize || ev.Type == EventNone {
		ev = term.PollEvent()
	}
	assert.Equal(t, EventMouse, ev.Type)
	assert.Equal(t, 3, ev.MouseX)
	assert.Equal(t, 2, ev.MouseY)
	assert.Equal(t, MouseLeft, ev.MouseButton)

	sim.InjectMouse(3, 1, tcell.ButtonNone, tcell.ModNone)
	ev = term.PollEvent()
	assert.Equal(t, EventMouse, ev.Type)
	assert.Equal(t, MouseNone, ev.MouseButton)
}

func TestTerminal_KeyAndInterrupt(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev := term.PollEvent()
	for ev.Type != EventKey {
		ev = term.PollEvent()
	}
	assert.Equal(t, KeyRune, ev.Key)
	assert.Equal(t, 'q', ev.Rune)

	require.True(t, term.PostEvent(Event{Type: EventInterrupt, Data: 7}))
	ev = term.PollEvent()
	assert.Equal(t, EventInterrupt, ev.Type)
	assert.Equal(t, 7, ev.Data)

	assert.False(t, term.PostEvent(Event{Type: EventMouse}))
}

func TestConvertKey(t *testing.T) {
	for _, k := range []Key{KeyRune, KeyEscape, KeyEnter, KeyHome, KeyEnd, KeyPageUp, KeyPageDown,
		KeyUp, KeyDown, KeyLeft, KeyRight, KeyCtrlC, KeyCtrlL} {
		assert.Equal(t, k, convertKey(convertToTcellKey(k)))
	}
	assert.Equal(t, KeyNone, convertKey(tcell.KeyF12))
}

func TestConvertMod(t *testing.T) {
	m := convertMod(tcell.ModShift | tcell.ModAlt)
	assert.True(t, m.Has(ModShift))
	assert.True(t, m.Has(ModAlt))
	assert.False(t, m.Has(ModCtrl))
}

func TestConvertFocus(t *testing.T) {
	ev := convertEvent(tcell.NewEventFocus(false))
	assert.Equal(t, EventFocus, ev.Type)
	assert.False(t, ev.Focused)
	assert.True(t, convertEvent(tcell.NewEventFocus(true)).Focused)
}
