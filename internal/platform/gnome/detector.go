// Package gnome detects the focused window on GNOME Wayland sessions via
// the GNOME Shell "Focused Window D-Bus" extension. Mutter exposes no
// generic focused-window API, so the extension is required; when it is not
// installed the D-Bus call fails and the caller falls through to the next
// backend.
package gnome

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/wingman-desktop/wingman/internal/model"
)

const (
	busName    = "org.gnome.Shell"
	objectPath = "/org/gnome/shell/extensions/FocusedWindow"
	method     = "org.gnome.shell.extensions.FocusedWindow.Get"
)

// Detector queries the GNOME Shell FocusedWindow extension over the
// session bus.
type Detector struct {
	mu   sync.Mutex
	conn *dbus.Conn

	// call is swapped out in tests.
	call func() (string, error)
}

func New() *Detector {
	d := &Detector{}
	d.call = d.callShell
	return d
}

func (d *Detector) Name() string { return "gnome" }

func (d *Detector) Available() bool {
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}
	return strings.Contains(strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP")), "gnome")
}

func (d *Detector) callShell() (string, error) {
	conn, err := d.sessionBus()
	if err != nil {
		return "", err
	}
	var raw string
	obj := conn.Object(busName, objectPath)
	if err := obj.Call(method, 0).Store(&raw); err != nil {
		return "", fmt.Errorf("dbus call %s: %w", method, err)
	}
	return raw, nil
}

func (d *Detector) sessionBus() (*dbus.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn != nil {
		return d.conn, nil
	}
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	d.conn = conn
	return conn, nil
}

// shellWindow mirrors the JSON reply of the FocusedWindow extension.
type shellWindow struct {
	Title   string `json:"title"`
	WmClass string `json:"wm_class"`
	PID     int32  `json:"pid"`
	X       int32  `json:"x"`
	Y       int32  `json:"y"`
	Width   int32  `json:"width"`
	Height  int32  `json:"height"`
	Focus   bool   `json:"focus"`
}

func (d *Detector) FocusedWindow() (*model.Window, error) {
	raw, err := d.call()
	if err != nil {
		return nil, err
	}
	return parseShellWindow(raw)
}

func parseShellWindow(raw string) (*model.Window, error) {
	// The extension replies with an empty object when no window has focus.
	var sw shellWindow
	if err := json.Unmarshal([]byte(raw), &sw); err != nil {
		return nil, fmt.Errorf("shell reply: %w", err)
	}
	if sw.WmClass == "" && sw.Title == "" {
		return nil, nil
	}
	appID := sw.WmClass
	if appID == "" {
		appID = sw.Title
	}
	return &model.Window{
		AppID: appID,
		Title: sw.Title,
		PID:   int(sw.PID),
		Geometry: model.Geometry{
			X:      int(sw.X),
			Y:      int(sw.Y),
			Width:  int(sw.Width),
			Height: int(sw.Height),
		},
	}, nil
}
