package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/platform/gnome"
	"github.com/wingman-desktop/wingman/internal/platform/hyprland"
	"github.com/wingman-desktop/wingman/internal/platform/sway"
	"github.com/wingman-desktop/wingman/internal/platform/x11"
)

// Provider holds the ordered detection backend chain for the current
// environment. The first backend that is available and returns a non-empty
// result wins; the rest are fallbacks.
type Provider struct {
	detectors []Detector
}

// Env abstracts environment lookup for chain ordering (testable).
type Env func(key string) string

// BackendOrder returns backend names in the order they should be tried for
// the given environment. Wayland sessions try compositor-specific tools
// first and fall back to X11 (XWayland); plain X11 sessions go straight to
// the X11 backend with compositor tools as a last resort.
func BackendOrder(env Env) []string {
	wayland := env("WAYLAND_DISPLAY") != ""
	if !wayland {
		return []string{"x11", "sway", "hyprland", "gnome"}
	}

	order := []string{"sway", "hyprland", "gnome"}
	switch {
	case env("HYPRLAND_INSTANCE_SIGNATURE") != "":
		order = []string{"hyprland", "sway", "gnome"}
	case strings.Contains(strings.ToLower(env("XDG_CURRENT_DESKTOP")), "gnome"):
		order = []string{"gnome", "sway", "hyprland"}
	case env("SWAYSOCK") != "":
		order = []string{"sway", "hyprland", "gnome"}
	}
	return append(order, "x11")
}

// NewProvider builds the backend chain from the process environment.
func NewProvider() *Provider {
	all := map[string]Detector{
		"x11":      x11.New(),
		"sway":     sway.New(),
		"hyprland": hyprland.New(),
		"gnome":    gnome.New(),
	}
	var detectors []Detector
	for _, name := range BackendOrder(os.Getenv) {
		detectors = append(detectors, all[name])
	}
	return &Provider{detectors: detectors}
}

// NewProviderWith builds a provider from an explicit detector chain.
func NewProviderWith(detectors ...Detector) *Provider {
	return &Provider{detectors: detectors}
}

// Detectors returns the backend chain in fallback order.
func (p *Provider) Detectors() []Detector {
	return p.detectors
}

// Detector returns the named backend, or an error if it is unknown.
func (p *Provider) Detector(name string) (Detector, error) {
	for _, d := range p.detectors {
		if d.Name() == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown backend: %q", name)
}

// FocusedWindow polls the chain and returns the first non-empty result
// along with the name of the backend that produced it.
func (p *Provider) FocusedWindow() (*model.Window, string, error) {
	var firstErr error
	for _, d := range p.detectors {
		if !d.Available() {
			continue
		}
		win, err := d.FocusedWindow()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", d.Name(), err)
			}
			continue
		}
		if win == nil || (win.AppID == "" && win.Geometry.IsZero()) {
			continue
		}
		return win, d.Name(), nil
	}
	if firstErr != nil {
		return nil, "", firstErr
	}
	return nil, "", ErrNoWindow
}

// Screens returns monitor geometry from the first available backend that
// can enumerate outputs.
func (p *Provider) Screens() ([]model.Screen, string, error) {
	var firstErr error
	for _, d := range p.detectors {
		lister, ok := d.(ScreenLister)
		if !ok || !d.Available() {
			continue
		}
		screens, err := lister.Screens()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", d.Name(), err)
			}
			continue
		}
		if len(screens) == 0 {
			continue
		}
		return screens, d.Name(), nil
	}
	if firstErr != nil {
		return nil, "", firstErr
	}
	return nil, "", fmt.Errorf("no backend could enumerate screens")
}
