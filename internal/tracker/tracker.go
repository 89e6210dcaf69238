// Package tracker polls the focused window at a fixed interval and reports
// application changes and geometry stability. Geometry must be identical
// for a configurable number of consecutive polls before it is considered
// stable; this suppresses transient geometry reports during window-manager
// animations.
package tracker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wingman-desktop/wingman/internal/model"
)

const (
	// DefaultInterval is the poll period.
	DefaultInterval = 100 * time.Millisecond

	// DefaultStablePolls is the number of consecutive identical geometry
	// polls required before a reposition is considered safe (~300ms at
	// the default interval).
	DefaultStablePolls = 3
)

// Source provides the focused window each poll. *platform.Provider
// satisfies this.
type Source interface {
	FocusedWindow() (*model.Window, string, error)
}

// Event describes a tracked change. At least one of Stable or AppChanged
// is set on every emitted event.
type Event struct {
	TS      int64        `yaml:"ts"      json:"ts"`
	Backend string       `yaml:"backend" json:"backend"`
	Window  model.Window `yaml:"window"  json:"window"`

	// Stable is set when the window geometry has been identical for the
	// configured number of consecutive polls and differs from the last
	// geometry reported stable.
	Stable bool `yaml:"stable" json:"stable"`

	// AppChanged is set when focus moved to a different application.
	AppChanged bool `yaml:"app_changed" json:"app_changed"`

	// Polls is the current consecutive-identical-geometry count.
	Polls int `yaml:"polls" json:"polls"`
}

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	Interval    time.Duration
	StablePolls int
	Log         *logrus.Logger
}

// Tracker owns the poll loop. Poll failures never stop the loop: the
// previous state is retained and the next tick tries again.
type Tracker struct {
	source      Source
	interval    time.Duration
	stablePolls int
	log         *logrus.Logger
}

func New(source Source, opts Options) *Tracker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.StablePolls <= 0 {
		opts.StablePolls = DefaultStablePolls
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Tracker{
		source:      source,
		interval:    opts.Interval,
		stablePolls: opts.StablePolls,
		log:         opts.Log,
	}
}

// Run starts the poll loop and returns its event channel. The channel is
// closed when ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) <-chan Event {
	ch := make(chan Event)
	go t.loop(ctx, ch)
	return ch
}

func (t *Tracker) loop(ctx context.Context, ch chan<- Event) {
	defer close(ch)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	var (
		lastGeom    model.Geometry
		haveLast    bool
		stableCount int
		lastStable  model.Geometry
		haveStable  bool
		lastApp     string
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		win, backend, err := t.source.FocusedWindow()
		if err != nil {
			t.log.WithError(err).Debug("poll failed, retaining previous state")
			continue
		}
		if win == nil {
			continue
		}

		geom := win.Geometry
		if haveLast && geom == lastGeom {
			stableCount++
		} else {
			stableCount = 1
			lastGeom = geom
			haveLast = true
		}

		appChanged := win.AppID != "" && win.AppID != lastApp
		if appChanged {
			lastApp = win.AppID
		}

		stable := false
		if stableCount >= t.stablePolls && !geom.IsZero() && (!haveStable || geom != lastStable) {
			stable = true
			lastStable = geom
			haveStable = true
		}

		if !stable && !appChanged {
			continue
		}

		ev := Event{
			TS:         time.Now().Unix(),
			Backend:    backend,
			Window:     *win,
			Stable:     stable,
			AppChanged: appChanged,
			Polls:      stableCount,
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return
		}
	}
}
