// Package clock provides the time source and timers used by the scrolling
// engine.
//
// The engine runs on a single logical thread. Timers created through a
// Clock deliver their callbacks on that thread, and a stopped timer never
// runs its callback, even if it had already expired. This is what lets the
// engine enforce cancel-before-start with a single owned timer handle.
package clock

import "time"

// Clock is a source of time and one-shot timers.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run once after d on the owning thread.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool

	// Active reports whether the callback is still scheduled.
	Active() bool
}

// Since returns the time elapsed since t according to c.
func Since(c Clock, t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMillis converts fractional milliseconds to a duration.
func FromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
