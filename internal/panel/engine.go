package panel

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wingman-desktop/wingman/internal/model"
	"github.com/wingman-desktop/wingman/internal/tracker"
)

// Applier applies a computed panel rectangle. Implementations decide what
// "apply" means: the stream applier emits a JSONL event per rectangle so
// any shell or IPC consumer can move the real surface.
type Applier interface {
	Apply(g model.Geometry) error
}

// Engine consumes tracker events and repositions the panel. Repositioning
// is suppressed while the user is dragging the panel or has switched
// auto-positioning off, and an unchanged target rectangle is never
// re-applied.
type Engine struct {
	applier Applier
	screens func() []model.Screen
	log     *logrus.Logger

	mu           sync.Mutex
	constraints  Constraints
	autoPosition bool
	manualMove   bool
	lastApplied  model.Geometry
	haveApplied  bool
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	Constraints  Constraints
	AutoPosition bool
	Log          *logrus.Logger

	// Screens supplies current monitor bounds per reposition.
	Screens func() []model.Screen
}

func NewEngine(applier Applier, opts EngineOptions) *Engine {
	if opts.Constraints == (Constraints{}) {
		opts.Constraints = DefaultConstraints
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Screens == nil {
		opts.Screens = func() []model.Screen { return nil }
	}
	return &Engine{
		applier:      applier,
		screens:      opts.Screens,
		log:          opts.Log,
		constraints:  opts.Constraints,
		autoPosition: opts.AutoPosition,
	}
}

// SetAutoPosition switches automatic repositioning on or off.
func (e *Engine) SetAutoPosition(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.autoPosition = on
}

// AutoPosition reports whether automatic repositioning is active.
func (e *Engine) AutoPosition() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoPosition
}

// BeginManualMove suppresses repositioning while the user drags the panel.
func (e *Engine) BeginManualMove() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.manualMove = true
}

// EndManualMove finishes a drag. A manual move expresses a placement
// preference, so auto-positioning is switched off until re-enabled.
func (e *Engine) EndManualMove() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.manualMove = false
	e.autoPosition = false
}

// SetConstraints replaces the sizing constraints (config hot reload).
func (e *Engine) SetConstraints(c Constraints) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.constraints = c
}

// LastApplied returns the most recently applied rectangle.
func (e *Engine) LastApplied() (model.Geometry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastApplied, e.haveApplied
}

// HandleEvent processes one tracker event, applying a new rectangle when
// the event is a stable geometry that calls for one.
func (e *Engine) HandleEvent(ev tracker.Event) {
	if !ev.Stable {
		return
	}

	e.mu.Lock()
	if e.manualMove || !e.autoPosition {
		e.mu.Unlock()
		return
	}
	c := e.constraints
	e.mu.Unlock()

	target, ok := Layout(ev.Window.Geometry, e.screens(), c)
	if !ok {
		e.log.Debug("no screen information, skipping reposition")
		return
	}

	e.mu.Lock()
	if e.haveApplied && target == e.lastApplied {
		e.mu.Unlock()
		return
	}
	e.lastApplied = target
	e.haveApplied = true
	e.mu.Unlock()

	if err := e.applier.Apply(target); err != nil {
		e.log.WithError(err).Warn("panel apply failed")
	}
}

// Dock applies an edge-docked rectangle immediately, bypassing stability
// tracking (used for the initial placement).
func (e *Engine) Dock(edge string) bool {
	e.mu.Lock()
	c := e.constraints
	e.mu.Unlock()

	target, ok := Dock(edge, e.screens(), c)
	if !ok {
		return false
	}

	e.mu.Lock()
	e.lastApplied = target
	e.haveApplied = true
	e.mu.Unlock()

	if err := e.applier.Apply(target); err != nil {
		e.log.WithError(err).Warn("panel apply failed")
		return false
	}
	return true
}

// ApplyEvent is one line of the stream applier's JSONL output.
type ApplyEvent struct {
	Type     string         `json:"type"`
	TS       int64          `json:"ts"`
	Geometry model.Geometry `json:"geometry"`
}

// StreamApplier writes one JSON apply event per rectangle.
type StreamApplier struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewStreamApplier(w io.Writer) *StreamApplier {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &StreamApplier{enc: enc}
}

func (a *StreamApplier) Apply(g model.Geometry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enc.Encode(ApplyEvent{Type: "apply", TS: time.Now().Unix(), Geometry: g})
}
