// Package sway detects the focused window on Sway and other wlroots
// compositors that speak the i3 IPC protocol, by shelling out to swaymsg.
package sway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/wingman-desktop/wingman/internal/model"
)

const commandTimeout = 2 * time.Second

// runCommand executes a compositor query; swapped out in tests.
var runCommand = func(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// Detector queries swaymsg for the focused node of the layout tree.
type Detector struct{}

func New() *Detector { return &Detector{} }

func (d *Detector) Name() string { return "sway" }

func (d *Detector) Available() bool {
	if os.Getenv("WAYLAND_DISPLAY") == "" && os.Getenv("SWAYSOCK") == "" {
		return false
	}
	_, err := exec.LookPath("swaymsg")
	return err == nil
}

type rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type windowProps struct {
	Class    string `json:"class"`
	Instance string `json:"instance"`
}

type node struct {
	Focused       bool         `json:"focused"`
	Name          string       `json:"name"`
	AppID         string       `json:"app_id"`
	PID           int          `json:"pid"`
	Rect          rect         `json:"rect"`
	WindowProps   *windowProps `json:"window_properties"`
	Nodes         []node       `json:"nodes"`
	FloatingNodes []node       `json:"floating_nodes"`
}

func (d *Detector) FocusedWindow() (*model.Window, error) {
	out, err := runCommand("swaymsg", "-t", "get_tree")
	if err != nil {
		return nil, fmt.Errorf("swaymsg: %w", err)
	}
	var tree node
	if err := json.Unmarshal(out, &tree); err != nil {
		return nil, fmt.Errorf("swaymsg output: %w", err)
	}
	focused := findFocused(&tree)
	if focused == nil {
		return nil, nil
	}
	return windowFromNode(focused), nil
}

// findFocused walks the layout tree, including floating nodes, and returns
// the node with input focus.
func findFocused(n *node) *node {
	if n.Focused {
		return n
	}
	for i := range n.Nodes {
		if found := findFocused(&n.Nodes[i]); found != nil {
			return found
		}
	}
	for i := range n.FloatingNodes {
		if found := findFocused(&n.FloatingNodes[i]); found != nil {
			return found
		}
	}
	return nil
}

func windowFromNode(n *node) *model.Window {
	// Native Wayland clients report app_id; XWayland clients report a
	// window_properties class instead.
	appID := n.AppID
	if appID == "" && n.WindowProps != nil {
		appID = n.WindowProps.Class
	}
	if appID == "" {
		appID = n.Name
	}
	return &model.Window{
		AppID: appID,
		Title: n.Name,
		PID:   n.PID,
		Geometry: model.Geometry{
			X:      n.Rect.X,
			Y:      n.Rect.Y,
			Width:  n.Rect.Width,
			Height: n.Rect.Height,
		},
	}
}

type output struct {
	Name    string `json:"name"`
	Active  bool   `json:"active"`
	Primary bool   `json:"primary"`
	Rect    rect   `json:"rect"`
}

// Screens enumerates active outputs via swaymsg -t get_outputs.
func (d *Detector) Screens() ([]model.Screen, error) {
	out, err := runCommand("swaymsg", "-t", "get_outputs")
	if err != nil {
		return nil, fmt.Errorf("swaymsg: %w", err)
	}
	var outputs []output
	if err := json.Unmarshal(out, &outputs); err != nil {
		return nil, fmt.Errorf("swaymsg output: %w", err)
	}
	var screens []model.Screen
	for _, o := range outputs {
		if !o.Active {
			continue
		}
		screens = append(screens, model.Screen{
			Name:    o.Name,
			Primary: o.Primary,
			Bounds: model.Geometry{
				X:      o.Rect.X,
				Y:      o.Rect.Y,
				Width:  o.Rect.Width,
				Height: o.Rect.Height,
			},
		})
	}
	return screens, nil
}
