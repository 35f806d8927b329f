// Package mouse translates terminal mouse reports into scroll gestures.
//
// Terminals report the set of held buttons with every mouse event. The
// Handler recovers press, drag and release from consecutive reports and
// drives a Target:
//
//	h := mouse.NewHandler(mouse.DefaultConfig(), view,
//	    mouse.WithPointMapper(vp.CellToPx))
//	h.Handle(h.Classify(pos, mouse.ButtonLeft, mouse.ModNone, now))
//
// # Drag Handling
//
// A left-button press opens a drag (DragStart), each report that moves
// the pointer continues it (DragMove), and the release closes it
// (DragEnd). The release is followed by a Flick measured by a
// flick.Estimator over the samples of the last 100 ms.
//
// # Wheel Handling
//
// Wheel buttons scroll by a configured number of lines when the target
// implements Wheeler. Shift selects the smaller line count.
package mouse
