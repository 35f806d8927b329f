package clock

import (
	"sort"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Timers fire synchronously inside Advance, in deadline order.
// Manual is not safe for concurrent use.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *Manual
	when  time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, when: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves time forward by d, firing every timer that comes due,
// including timers scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.now.Add(d))
}

// AdvanceTo moves time forward to target. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(target time.Time) {
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		if next.when.After(m.now) {
			m.now = next.when
		}
		m.remove(next)
		next.done = true
		next.fn()
	}
	if target.After(m.now) {
		m.now = target
	}
}

// RunUntilIdle fires timers until none remain or limit is reached.
// It returns the number of callbacks run.
func (m *Manual) RunUntilIdle(limit int) int {
	ran := 0
	for ran < limit && len(m.timers) > 0 {
		next := m.earliest()
		if next.when.After(m.now) {
			m.now = next.when
		}
		m.remove(next)
		next.done = true
		next.fn()
		ran++
	}
	return ran
}

// Pending returns the number of scheduled timers.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// NextDeadline returns the deadline of the earliest timer.
func (m *Manual) NextDeadline() (time.Time, bool) {
	if len(m.timers) == 0 {
		return time.Time{}, false
	}
	return m.earliest().when, true
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	t := m.earliest()
	if t.when.After(target) {
		return nil
	}
	return t
}

func (m *Manual) earliest() *manualTimer {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].when.Equal(m.timers[j].when) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].when.Before(m.timers[j].when)
	})
	return m.timers[0]
}

func (m *Manual) remove(t *manualTimer) {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

func (t *manualTimer) Active() bool {
	return !t.done
}
