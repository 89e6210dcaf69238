package hyprland

import (
	"errors"
	"testing"
)

func stubRunner(t *testing.T, out string, err error) {
	t.Helper()
	prev := runCommand
	runCommand = func(name string, args ...string) ([]byte, error) {
		return []byte(out), err
	}
	t.Cleanup(func() { runCommand = prev })
}

const activeWindowJSON = `{
  "address": "0x55d4c05a2b90",
  "at": [11, 46],
  "size": [1898, 1023],
  "workspace": {"id": 1, "name": "1"},
  "class": "kitty",
  "title": "~/src",
  "initialClass": "kitty",
  "pid": 2841
}`

func TestFocusedWindow(t *testing.T) {
	stubRunner(t, activeWindowJSON, nil)

	win, err := New().FocusedWindow()
	if err != nil {
		t.Fatal(err)
	}
	if win == nil {
		t.Fatal("expected a focused window")
	}
	if win.AppID != "kitty" {
		t.Errorf("app: got %q, want kitty", win.AppID)
	}
	if win.Title != "~/src" {
		t.Errorf("title: got %q", win.Title)
	}
	if win.Geometry.X != 11 || win.Geometry.Y != 46 || win.Geometry.Width != 1898 || win.Geometry.Height != 1023 {
		t.Errorf("geometry: got %+v", win.Geometry)
	}
	if win.PID != 2841 {
		t.Errorf("pid: got %d, want 2841", win.PID)
	}
}

func TestFocusedWindow_InitialClassFallback(t *testing.T) {
	stubRunner(t, `{"at": [0,0], "size": [800,600], "class": "", "initialClass": "mpv", "pid": 7}`, nil)

	win, err := New().FocusedWindow()
	if err != nil {
		t.Fatal(err)
	}
	if win.AppID != "mpv" {
		t.Errorf("app: got %q, want mpv", win.AppID)
	}
}

func TestFocusedWindow_NothingFocused(t *testing.T) {
	stubRunner(t, `{}`, nil)

	win, err := New().FocusedWindow()
	if err != nil {
		t.Fatal(err)
	}
	if win != nil {
		t.Errorf("expected nil window, got %+v", win)
	}
}

func TestFocusedWindow_CommandFails(t *testing.T) {
	stubRunner(t, "", errors.New("executable file not found"))

	if _, err := New().FocusedWindow(); err == nil {
		t.Fatal("expected error when hyprctl fails")
	}
}

func TestFocusedWindow_MalformedJSON(t *testing.T) {
	stubRunner(t, "Invalid", nil)

	if _, err := New().FocusedWindow(); err == nil {
		t.Fatal("expected error for non-JSON output")
	}
}

const monitorsJSON = `[
  {"id": 0, "name": "eDP-1", "x": 0, "y": 0, "width": 1920, "height": 1080, "focused": true},
  {"id": 1, "name": "DP-2", "x": 1920, "y": 0, "width": 2560, "height": 1440, "focused": false}
]`

func TestScreens(t *testing.T) {
	stubRunner(t, monitorsJSON, nil)

	screens, err := New().Screens()
	if err != nil {
		t.Fatal(err)
	}
	if len(screens) != 2 {
		t.Fatalf("got %d screens, want 2", len(screens))
	}
	if !screens[0].Primary {
		t.Error("focused monitor should be primary")
	}
	if screens[1].Bounds.X != 1920 {
		t.Errorf("second monitor x: got %d, want 1920", screens[1].Bounds.X)
	}
}
