package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wingman-desktop/wingman/internal/config"
	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/panel"
	"github.com/wingman-desktop/wingman/internal/platform"
	"github.com/wingman-desktop/wingman/internal/tracker"
)

// screenCache avoids re-querying the compositor for monitor layout on
// every reposition. Monitor changes are rare; a short TTL is enough.
type screenCache struct {
	mu        sync.Mutex
	provider  *platform.Provider
	ttl       time.Duration
	screens   []model.Screen
	fetchedAt time.Time
}

func (c *screenCache) get() []model.Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.screens != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.screens
	}
	screens, _, err := c.provider.Screens()
	if err != nil {
		log.WithError(err).Debug("screen query failed, keeping cached layout")
		return c.screens
	}
	c.screens = screens
	c.fetchedAt = time.Now()
	return screens
}

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Run the panel positioning engine",
	Long: `Follows the focused window and streams panel placement decisions as JSONL
on stdout. Each line is an apply event with the geometry the panel should move
to; a window manager shim or scripting layer consumes the stream and performs
the actual move.

Configuration is read from the wingman config file and hot-reloaded when the
file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dock, _ := cmd.Flags().GetString("dock")
		durationSec, _ := cmd.Flags().GetFloat64("duration")

		if configPath == "" {
			configPath = config.Path()
		}

		loader := config.NewLoader(configPath, log)
		cfg, err := loader.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		defer loader.Close()

		provider := platform.NewProvider()
		screens := &screenCache{provider: provider, ttl: 5 * time.Second}

		engine := panel.NewEngine(panel.NewStreamApplier(os.Stdout), panel.EngineOptions{
			Constraints:  constraintsFromConfig(cfg),
			AutoPosition: cfg.AutoPosition,
			Log:          log,
			Screens:      screens.get,
		})

		loader.OnChange(func(c config.Config) {
			engine.SetConstraints(constraintsFromConfig(c))
			engine.SetAutoPosition(c.AutoPosition)
			log.Info("configuration reloaded")
		})
		if err := loader.Watch(); err != nil {
			log.WithError(err).Warn("config watch unavailable, hot reload disabled")
		}

		if dock == "" {
			dock = cfg.ScreenPosition
		}
		if edge, ok := dockEdge(dock); ok {
			engine.Dock(edge)
		} else if dock != "" {
			return fmt.Errorf("unknown dock position: %s (use top, bottom, left, or right)", dock)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if durationSec > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec*float64(time.Second)))
			defer cancel()
		}

		tr := tracker.New(provider, tracker.Options{
			Interval:    time.Duration(cfg.PollIntervalMs) * time.Millisecond,
			StablePolls: cfg.StablePolls,
			Log:         log,
		})
		for ev := range tr.Run(ctx) {
			engine.HandleEvent(ev)
		}
		return nil
	},
}

func constraintsFromConfig(cfg config.Config) panel.Constraints {
	return panel.Constraints{
		MinWidth: cfg.PanelMinWidth,
		MaxWidth: cfg.PanelMaxWidth,
		Height:   cfg.PanelHeight,
	}
}

func dockEdge(position string) (string, bool) {
	switch position {
	case "top":
		return panel.EdgeTop, true
	case "bottom":
		return panel.EdgeBottom, true
	case "left":
		return panel.EdgeLeft, true
	case "right":
		return panel.EdgeRight, true
	default:
		return "", false
	}
}

func init() {
	panelCmd.Flags().String("config", "", "Config file path (default: XDG config dir)")
	panelCmd.Flags().String("dock", "", "Initial dock edge: top, bottom, left, right (default from config)")
	panelCmd.Flags().Float64("duration", 0, "Stop after this many seconds (0 = run until interrupted)")
	rootCmd.AddCommand(panelCmd)
}
