package model

// Screen describes a connected monitor.
type Screen struct {
	Name    string   `yaml:"name"              json:"name"`
	Bounds  Geometry `yaml:"bounds"            json:"bounds"`
	Primary bool     `yaml:"primary,omitempty" json:"primary,omitempty"`
}

// ScreenContaining returns the screen whose bounds contain the point (x, y).
// When no screen contains the point, the primary screen is returned, then
// the first screen. ok is false only when screens is empty.
func ScreenContaining(screens []Screen, x, y int) (Screen, bool) {
	if len(screens) == 0 {
		return Screen{}, false
	}
	for _, s := range screens {
		if s.Bounds.Contains(x, y) {
			return s, true
		}
	}
	for _, s := range screens {
		if s.Primary {
			return s, true
		}
	}
	return screens[0], true
}

// PrimaryScreen returns the primary screen, falling back to the first one.
func PrimaryScreen(screens []Screen) (Screen, bool) {
	if len(screens) == 0 {
		return Screen{}, false
	}
	for _, s := range screens {
		if s.Primary {
			return s, true
		}
	}
	return screens[0], true
}
