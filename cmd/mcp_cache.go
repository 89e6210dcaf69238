package cmd

import (
	"sync"
	"time"

	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/platform"
)

// mcpFocusCache provides a TTL-based cache for focused-window lookups, so a
// burst of tool calls does not hit the compositor once per call.
type mcpFocusCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	window    *model.Window
	backend   string
	fetchedAt time.Time
	have      bool
}

// newMCPFocusCache creates a new cache. A ttl of 0 disables caching.
func newMCPFocusCache(ttl time.Duration) *mcpFocusCache {
	return &mcpFocusCache{ttl: ttl}
}

// focusedWindow returns the cached window if within TTL, otherwise queries
// the provider. Errors are never cached.
func (c *mcpFocusCache) focusedWindow(provider *platform.Provider) (*model.Window, string, error) {
	if c.ttl == 0 {
		return provider.FocusedWindow()
	}

	c.mu.Lock()
	if c.have && time.Since(c.fetchedAt) < c.ttl {
		win, backend := c.window, c.backend
		c.mu.Unlock()
		return win, backend, nil
	}
	c.mu.Unlock()

	win, backend, err := provider.FocusedWindow()
	if err != nil {
		return nil, "", err
	}

	c.mu.Lock()
	c.window = win
	c.backend = backend
	c.fetchedAt = time.Now()
	c.have = true
	c.mu.Unlock()

	return win, backend, nil
}

// invalidate clears the cached window.
func (c *mcpFocusCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.have = false
}
