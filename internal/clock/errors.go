package clock

import "github.com/pkg/errors"

// ErrLoopRunning is returned when Run is called on a loop that is already
// running.
var ErrLoopRunning = errors.New("loop already running")
