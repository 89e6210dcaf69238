// Package config handles wingman's flat JSON settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the complete settings. The on-disk format is a single flat
// JSON object; fields missing from the file keep their defaults.
type Config struct {
	// ScreenPosition is the panel's docking edge: top, bottom, left, right.
	ScreenPosition string `yaml:"screen_position" json:"screen_position"`

	// Transparency is the panel opacity in [0, 1].
	Transparency float64 `yaml:"transparency" json:"transparency"`

	// DocSources is the documentation lookup order.
	DocSources []string `yaml:"doc_sources" json:"doc_sources"`

	// URLPatterns maps an application name (or "default") to an online
	// documentation URL template with a {query} placeholder.
	URLPatterns map[string]string `yaml:"url_patterns" json:"url_patterns"`

	// Shortcut is the global toggle hotkey.
	Shortcut string `yaml:"shortcut" json:"shortcut"`

	// PollIntervalMs is the focused-window poll period in milliseconds.
	PollIntervalMs int `yaml:"poll_interval_ms" json:"poll_interval_ms"`

	// StablePolls is how many consecutive identical geometry polls are
	// required before the panel repositions.
	StablePolls int `yaml:"stable_polls" json:"stable_polls"`

	PanelMinWidth int `yaml:"panel_min_width" json:"panel_min_width"`
	PanelMaxWidth int `yaml:"panel_max_width" json:"panel_max_width"`
	PanelHeight   int `yaml:"panel_height" json:"panel_height"`

	// AutoPosition enables automatic panel repositioning.
	AutoPosition bool `yaml:"auto_position" json:"auto_position"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ScreenPosition: "top",
		Transparency:   0.8,
		DocSources:     []string{"man", "help", "online"},
		URLPatterns:    map[string]string{"default": "https://www.google.com/search?q={query}"},
		Shortcut:       "<Control>+<space>",
		PollIntervalMs: 100,
		StablePolls:    3,
		PanelMinWidth:  400,
		PanelMaxWidth:  800,
		PanelHeight:    200,
		AutoPosition:   true,
	}
}

var validPositions = map[string]bool{"top": true, "bottom": true, "left": true, "right": true}
var validSources = map[string]bool{"man": true, "help": true, "online": true}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if !validPositions[c.ScreenPosition] {
		return fmt.Errorf("screen_position: %q is not one of top, bottom, left, right", c.ScreenPosition)
	}
	if c.Transparency < 0 || c.Transparency > 1 {
		return fmt.Errorf("transparency: %v outside [0, 1]", c.Transparency)
	}
	for _, s := range c.DocSources {
		if !validSources[s] {
			return fmt.Errorf("doc_sources: unknown source %q", s)
		}
	}
	if c.PollIntervalMs <= 0 {
		return errors.New("poll_interval_ms must be > 0")
	}
	if c.StablePolls <= 0 {
		return errors.New("stable_polls must be > 0")
	}
	if c.PanelMinWidth <= 0 || c.PanelMaxWidth < c.PanelMinWidth {
		return fmt.Errorf("panel width range [%d, %d] is invalid", c.PanelMinWidth, c.PanelMaxWidth)
	}
	if c.PanelHeight <= 0 {
		return errors.New("panel_height must be > 0")
	}
	return nil
}

// Path returns the settings file location, honoring XDG_CONFIG_HOME.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "wingman", "config.json")
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wingman", "config.json")
}

// Load reads the settings file at path. A missing file yields defaults;
// fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Get returns a settings field by its JSON key.
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "screen_position":
		return c.ScreenPosition, nil
	case "transparency":
		return c.Transparency, nil
	case "doc_sources":
		return c.DocSources, nil
	case "url_patterns":
		return c.URLPatterns, nil
	case "shortcut":
		return c.Shortcut, nil
	case "poll_interval_ms":
		return c.PollIntervalMs, nil
	case "stable_polls":
		return c.StablePolls, nil
	case "panel_min_width":
		return c.PanelMinWidth, nil
	case "panel_max_width":
		return c.PanelMaxWidth, nil
	case "panel_height":
		return c.PanelHeight, nil
	case "auto_position":
		return c.AutoPosition, nil
	}
	return nil, fmt.Errorf("unknown setting: %q", key)
}

// Set assigns a settings field from its string representation, as entered
// on the command line. List and map fields take comma/equals syntax
// (e.g. "man,help" and "vim=https://...,default=https://...").
func (c *Config) Set(key, value string) error {
	switch key {
	case "screen_position":
		c.ScreenPosition = value
	case "transparency":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("transparency: %w", err)
		}
		c.Transparency = f
	case "doc_sources":
		c.DocSources = splitList(value)
	case "url_patterns":
		patterns := map[string]string{}
		for _, pair := range splitList(value) {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("url_patterns: %q is not name=url", pair)
			}
			patterns[k] = v
		}
		c.URLPatterns = patterns
	case "shortcut":
		c.Shortcut = value
	case "poll_interval_ms", "stable_polls", "panel_min_width", "panel_max_width", "panel_height":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "poll_interval_ms":
			c.PollIntervalMs = n
		case "stable_polls":
			c.StablePolls = n
		case "panel_min_width":
			c.PanelMinWidth = n
		case "panel_max_width":
			c.PanelMaxWidth = n
		case "panel_height":
			c.PanelHeight = n
		}
	case "auto_position":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_position: %w", err)
		}
		c.AutoPosition = b
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}
	return c.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
