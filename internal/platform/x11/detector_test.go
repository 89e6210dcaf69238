package x11

import (
	"testing"

	"github.com/wingman-desktop/wingman/internal/model"
)

func TestApplyFrameExtents(t *testing.T) {
	tests := []struct {
		name                     string
		in                       model.Geometry
		left, right, top, bottom int
		want                     model.Geometry
	}{
		{
			"no extents",
			model.Geometry{X: 100, Y: 100, Width: 800, Height: 600},
			0, 0, 0, 0,
			model.Geometry{X: 100, Y: 100, Width: 800, Height: 600},
		},
		{
			"typical decorated window",
			model.Geometry{X: 104, Y: 132, Width: 792, Height: 564},
			4, 4, 32, 4,
			model.Geometry{X: 100, Y: 100, Width: 800, Height: 600},
		},
		{
			"csd shadow extents",
			model.Geometry{X: 26, Y: 23, Width: 948, Height: 531},
			26, 26, 23, 29,
			model.Geometry{X: 0, Y: 0, Width: 1000, Height: 583},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyFrameExtents(tt.in, tt.left, tt.right, tt.top, tt.bottom)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		cmdline string
		want    string
	}{
		{"/usr/bin/vim -u NONE notes.txt", "vim"},
		{"htop", "htop"},
		{"python3 /home/u/script.py", "python3"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := commandName(tt.cmdline); got != tt.want {
			t.Errorf("commandName(%q) = %q, want %q", tt.cmdline, got, tt.want)
		}
	}
}

func TestAvailableWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	if New().Available() {
		t.Error("backend should be unavailable without DISPLAY")
	}
	t.Setenv("DISPLAY", ":0")
	if !New().Available() {
		t.Error("backend should be available with DISPLAY set")
	}
}
