// Package panel computes and applies the tracking panel's geometry: a
// clamped rectangle aligned with the focused window, kept within the bounds
// of whichever monitor contains that window.
package panel

import "github.com/wingman-desktop/wingman/internal/model"

// Constraints bound the panel dimensions.
type Constraints struct {
	MinWidth int
	MaxWidth int
	Height   int
}

// DefaultConstraints mirrors the panel's historical sizing: width bounded
// to [400, 800], fixed 200px height.
var DefaultConstraints = Constraints{MinWidth: 400, MaxWidth: 800, Height: 200}

// Layout computes the panel rectangle for a focused window: panel width is
// the window width clamped to the constraint range, placed at the window's
// top-left and clamped into the bounds of the screen containing the window
// origin (primary screen when no screen contains it). ok is false when no
// screen information is available.
func Layout(target model.Geometry, screens []model.Screen, c Constraints) (model.Geometry, bool) {
	screen, ok := model.ScreenContaining(screens, target.X, target.Y)
	if !ok {
		return model.Geometry{}, false
	}

	panel := model.Geometry{
		X:      target.X,
		Y:      target.Y,
		Width:  model.Clamp(target.Width, c.MinWidth, c.MaxWidth),
		Height: c.Height,
	}
	return panel.ClampInto(screen.Bounds), true
}

// Edge names accepted by Dock.
const (
	EdgeTop    = "top"
	EdgeBottom = "bottom"
	EdgeLeft   = "left"
	EdgeRight  = "right"
)

// Dock returns the rectangle for docking the panel on an edge of the
// primary screen. Width on top/bottom edges is the constraint maximum
// bounded by the screen; left/right edges span the screen height.
func Dock(edge string, screens []model.Screen, c Constraints) (model.Geometry, bool) {
	screen, ok := model.PrimaryScreen(screens)
	if !ok {
		return model.Geometry{}, false
	}
	b := screen.Bounds
	width := model.Clamp(c.MaxWidth, c.MinWidth, b.Width)

	switch edge {
	case EdgeTop:
		return model.Geometry{X: b.X, Y: b.Y, Width: width, Height: c.Height}, true
	case EdgeBottom:
		return model.Geometry{X: b.X, Y: b.Bottom() - c.Height, Width: width, Height: c.Height}, true
	case EdgeLeft:
		return model.Geometry{X: b.X, Y: b.Y, Width: width, Height: b.Height}, true
	case EdgeRight:
		return model.Geometry{X: b.Right() - width, Y: b.Y, Width: width, Height: b.Height}, true
	}
	return model.Geometry{}, false
}
