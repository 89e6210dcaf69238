package platform

import (
	"errors"

	"github.com/wingman-desktop/wingman/internal/model"
)

// Detector queries the windowing system for the currently focused window.
// Implementations must never panic: any OS-level failure (missing atom,
// vanished process, absent tool, malformed JSON) is returned as an error
// so callers can fall through to the next backend or retain prior state.
type Detector interface {
	// Name identifies the backend (e.g. "x11", "sway").
	Name() string

	// Available reports whether the backend can plausibly run in the
	// current environment. It must be cheap; it is consulted every poll.
	Available() bool

	// FocusedWindow returns the focused window. A nil window with a nil
	// error means the backend ran but found no focused window; the caller
	// moves on to the next backend.
	FocusedWindow() (*model.Window, error)
}

// ScreenLister is implemented by detectors that can enumerate monitors.
type ScreenLister interface {
	Screens() ([]model.Screen, error)
}

// ErrNoWindow indicates no backend found a focused window this poll.
var ErrNoWindow = errors.New("no focused window")
