// Package hyprland detects the focused window on Hyprland by shelling out
// to hyprctl and parsing its JSON output.
package hyprland

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

// runCommand executes a hyprctl query; swapped out in tests.
var runCommand = func(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// Detector queries hyprctl for the active window and monitor layout.
type Detector struct{}

func New() *Detector { return &Detector{} }

func (d *Detector) Name() string { return "hyprland" }

func (d *Detector) Available() bool {
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") == "" {
		return false
	}
	_, err := exec.LookPath("hyprctl")
	return err == nil
}

type activeWindow struct {
	At           [2]int `json:"at"`
	Size         [2]int `json:"size"`
	Class        string `json:"class"`
	InitialClass string `json:"initialClass"`
	Title        string `json:"title"`
	PID          int    `json:"pid"`
}

func (d *Detector) FocusedWindow() (*model.Window, error) {
	out, err := runCommand("hyprctl", "activewindow", "-j")
	if err != nil {
		return nil, fmt.Errorf("hyprctl: %w", err)
	}
	var aw activeWindow
	if err := json.Unmarshal(out, &aw); err != nil {
		return nil, fmt.Errorf("hyprctl output: %w", err)
	}

	appID := aw.Class
	if appID == "" {
		appID = aw.InitialClass
	}
	// hyprctl prints an empty object when nothing is focused.
	if appID == "" && aw.Size == [2]int{} {
		return nil, nil
	}

	return &model.Window{
		AppID: appID,
		Title: aw.Title,
		PID:   aw.PID,
		Geometry: model.Geometry{
			X:      aw.At[0],
			Y:      aw.At[1],
			Width:  aw.Size[0],
			Height: aw.Size[1],
		},
	}, nil
}

type monitor struct {
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Focused bool   `json:"focused"`
}

// Screens enumerates monitors via hyprctl monitors -j. The focused monitor
// is reported as primary; Hyprland has no primary concept of its own.
func (d *Detector) Screens() ([]model.Screen, error) {
	out, err := runCommand("hyprctl", "monitors", "-j")
	if err != nil {
		return nil, fmt.Errorf("hyprctl: %w", err)
	}
	var monitors []monitor
	if err := json.Unmarshal(out, &monitors); err != nil {
		return nil, fmt.Errorf("hyprctl output: %w", err)
	}
	var screens []model.Screen
	for _, m := range monitors {
		screens = append(screens, model.Screen{
			Name:    m.Name,
			Primary: m.Focused,
			Bounds:  model.Geometry{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		})
	}
	return screens, nil
}
