package model

import "testing"

var testScreens = []Screen{
	{Name: "DP-1", Bounds: Geometry{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
	{Name: "HDMI-1", Bounds: Geometry{X: 1920, Y: 0, Width: 1280, Height: 1024}},
}

func TestScreenContaining(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"on primary", 500, 500, "DP-1"},
		{"on secondary", 2000, 100, "HDMI-1"},
		{"off every screen falls back to primary", 9999, 9999, "DP-1"},
		{"negative point falls back to primary", -10, -10, "DP-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := ScreenContaining(testScreens, tt.x, tt.y)
			if !ok {
				t.Fatal("expected a screen")
			}
			if s.Name != tt.want {
				t.Errorf("got %s, want %s", s.Name, tt.want)
			}
		})
	}
}

func TestScreenContainingEmpty(t *testing.T) {
	if _, ok := ScreenContaining(nil, 0, 0); ok {
		t.Error("expected ok=false for empty screen list")
	}
}

func TestPrimaryScreen(t *testing.T) {
	s, ok := PrimaryScreen(testScreens)
	if !ok || s.Name != "DP-1" {
		t.Errorf("got %v %v, want DP-1", s.Name, ok)
	}

	noPrimary := []Screen{{Name: "X-1"}, {Name: "X-2"}}
	s, ok = PrimaryScreen(noPrimary)
	if !ok || s.Name != "X-1" {
		t.Errorf("fallback: got %v %v, want X-1", s.Name, ok)
	}

	if _, ok := PrimaryScreen(nil); ok {
		t.Error("expected ok=false for empty screen list")
	}
}
