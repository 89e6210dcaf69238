package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Loader loads the settings file and hot-reloads it on change. Registered
// callbacks run with the new config after every successful reload; a reload
// that fails validation keeps the previous config.
type Loader struct {
	path string
	log  *logrus.Logger

	mu       sync.RWMutex
	config   Config
	onChange []func(Config)

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func NewLoader(path string, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Loader{path: path, log: log, config: Default()}
}

// Load reads and validates the settings file.
func (l *Loader) Load() (Config, error) {
	cfg, err := Load(l.path)
	if err != nil {
		return cfg, err
	}
	l.mu.Lock()
	l.config = cfg
	l.mu.Unlock()
	return cfg, nil
}

// Config returns the current settings.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// OnChange registers a callback invoked after each successful reload.
func (l *Loader) OnChange(fn func(Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts watching the settings file's directory for changes.
// Watching the directory rather than the file survives editors that
// replace the file on save.
func (l *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config dir: %w", err)
	}
	l.watcher = watcher
	l.done = make(chan struct{})
	go l.watchLoop()
	return nil
}

// Close stops watching.
func (l *Loader) Close() error {
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	<-l.done
	return err
}

func (l *Loader) watchLoop() {
	defer close(l.done)

	// Editors emit bursts of events per save; reload once per burst.
	const debounce = 100 * time.Millisecond
	var timer *time.Timer

	for {
		select {
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(l.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, l.reload)

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.log.WithError(err).Warn("config watcher error")
		}
	}
}

// reload re-reads the settings file and notifies callbacks. On failure the
// previous config stays active.
func (l *Loader) reload() {
	cfg, err := Load(l.path)
	if err != nil {
		l.log.WithError(err).Warn("config reload failed, keeping previous settings")
		return
	}

	l.mu.Lock()
	l.config = cfg
	callbacks := make([]func(Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	l.log.Debug("config reloaded")
}
