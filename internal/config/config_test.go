package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"bad position", func(c *Config) { c.ScreenPosition = "center" }, false},
		{"transparency too high", func(c *Config) { c.Transparency = 1.5 }, false},
		{"negative transparency", func(c *Config) { c.Transparency = -0.1 }, false},
		{"unknown doc source", func(c *Config) { c.DocSources = []string{"wiki"} }, false},
		{"zero interval", func(c *Config) { c.PollIntervalMs = 0 }, false},
		{"zero stable polls", func(c *Config) { c.StablePolls = 0 }, false},
		{"inverted width range", func(c *Config) { c.PanelMinWidth = 900; c.PanelMaxWidth = 400 }, false},
		{"zero height", func(c *Config) { c.PanelHeight = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScreenPosition != "top" || cfg.PollIntervalMs != 100 {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wingman", "config.json")

	cfg := Default()
	cfg.ScreenPosition = "bottom"
	cfg.PollIntervalMs = 250
	cfg.URLPatterns["vim"] = "https://vimhelp.org/?q={query}"

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ScreenPosition != "bottom" || loaded.PollIntervalMs != 250 {
		t.Errorf("got %+v", loaded)
	}
	if loaded.URLPatterns["vim"] != "https://vimhelp.org/?q={query}" {
		t.Errorf("url_patterns: %v", loaded.URLPatterns)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"screen_position": "left"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ScreenPosition != "left" {
		t.Errorf("screen_position: got %q", cfg.ScreenPosition)
	}
	if cfg.StablePolls != 3 || cfg.Transparency != 0.8 {
		t.Errorf("unspecified fields should keep defaults: %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"screen_position":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"poll_interval_ms": -5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	want := filepath.Join("/tmp/xdg-test", "wingman", "config.json")
	if got := Path(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("screen_position", "right"); err != nil {
		t.Fatal(err)
	}
	v, err := cfg.Get("screen_position")
	if err != nil || v != "right" {
		t.Errorf("get: %v %v", v, err)
	}

	if err := cfg.Set("transparency", "0.5"); err != nil {
		t.Fatal(err)
	}
	if cfg.Transparency != 0.5 {
		t.Errorf("transparency: %v", cfg.Transparency)
	}

	if err := cfg.Set("doc_sources", "man, help"); err != nil {
		t.Fatal(err)
	}
	if len(cfg.DocSources) != 2 || cfg.DocSources[1] != "help" {
		t.Errorf("doc_sources: %v", cfg.DocSources)
	}

	if err := cfg.Set("url_patterns", "vim=https://vimhelp.org,default=https://example.com/{query}"); err != nil {
		t.Fatal(err)
	}
	if cfg.URLPatterns["vim"] != "https://vimhelp.org" {
		t.Errorf("url_patterns: %v", cfg.URLPatterns)
	}

	if err := cfg.Set("auto_position", "false"); err != nil {
		t.Fatal(err)
	}
	if cfg.AutoPosition {
		t.Error("auto_position should be false")
	}

	if err := cfg.Set("screen_position", "center"); err == nil {
		t.Error("expected validation error for bad position")
	}
	if err := cfg.Set("no_such_key", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := cfg.Get("no_such_key"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoaderReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	l := NewLoader(path, log)
	if _, err := l.Load(); err != nil {
		t.Fatal(err)
	}

	var got Config
	notified := make(chan struct{}, 1)
	l.OnChange(func(c Config) {
		got = c
		notified <- struct{}{}
	})

	cfg := Default()
	cfg.StablePolls = 5
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	l.reload()

	select {
	case <-notified:
	default:
		t.Fatal("callback not invoked")
	}
	if got.StablePolls != 5 || l.Config().StablePolls != 5 {
		t.Errorf("reload did not pick up new value: %+v", got)
	}
}

func TestLoaderReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default()
	cfg.StablePolls = 7
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	l := NewLoader(path, log)
	if _, err := l.Load(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	l.reload()

	if l.Config().StablePolls != 7 {
		t.Errorf("broken reload should keep previous config, got %+v", l.Config())
	}
}

func TestLoaderWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	l := NewLoader(path, log)
	if _, err := l.Load(); err != nil {
		t.Fatal(err)
	}

	notified := make(chan Config, 1)
	l.OnChange(func(c Config) { notified <- c })

	if err := l.Watch(); err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	cfg := Default()
	cfg.ScreenPosition = "bottom"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-notified:
		if got.ScreenPosition != "bottom" {
			t.Errorf("got %+v", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload notification within 3s")
	}
}
