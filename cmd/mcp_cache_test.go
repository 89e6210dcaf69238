package cmd

import (
	"testing"
	"time"

	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/platform"
)

type countingDetector struct {
	calls  int
	window model.Window
}

func (d *countingDetector) Name() string    { return "fake" }
func (d *countingDetector) Available() bool { return true }
func (d *countingDetector) FocusedWindow() (*model.Window, error) {
	d.calls++
	w := d.window
	return &w, nil
}

func TestMCPFocusCache_ServesFromCache(t *testing.T) {
	d := &countingDetector{window: model.Window{AppID: "vim"}}
	provider := platform.NewProviderWith(d)
	cache := newMCPFocusCache(time.Minute)

	for i := 0; i < 5; i++ {
		win, backend, err := cache.focusedWindow(provider)
		if err != nil {
			t.Fatalf("focusedWindow() error: %v", err)
		}
		if win.AppID != "vim" || backend != "fake" {
			t.Fatalf("focusedWindow() = (%v, %q)", win, backend)
		}
	}
	if d.calls != 1 {
		t.Errorf("detector called %d times, want 1", d.calls)
	}
}

func TestMCPFocusCache_InvalidateForcesRefresh(t *testing.T) {
	d := &countingDetector{window: model.Window{AppID: "vim"}}
	provider := platform.NewProviderWith(d)
	cache := newMCPFocusCache(time.Minute)

	if _, _, err := cache.focusedWindow(provider); err != nil {
		t.Fatalf("focusedWindow() error: %v", err)
	}
	cache.invalidate()
	if _, _, err := cache.focusedWindow(provider); err != nil {
		t.Fatalf("focusedWindow() error: %v", err)
	}
	if d.calls != 2 {
		t.Errorf("detector called %d times, want 2", d.calls)
	}
}

func TestMCPFocusCache_ZeroTTLDisablesCaching(t *testing.T) {
	d := &countingDetector{window: model.Window{AppID: "vim"}}
	provider := platform.NewProviderWith(d)
	cache := newMCPFocusCache(0)

	for i := 0; i < 3; i++ {
		if _, _, err := cache.focusedWindow(provider); err != nil {
			t.Fatalf("focusedWindow() error: %v", err)
		}
	}
	if d.calls != 3 {
		t.Errorf("detector called %d times, want 3", d.calls)
	}
}
