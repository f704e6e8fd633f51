package langswitch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const DefaultPollInterval = 300 * time.Millisecond

type Watcher struct {
	interval time.Duration
	fallback string

	platform Platform
	procs    ProcessSource
	config   ConfigLoader
	log      *zap.SugaredLogger

	enabled *atomic.Bool

	cfg         Config
	cfgStale    *atomic.Bool
	alwaysLoad  bool
	lastPID     int32
	lastName    string
	lastDesired string
	lastApplied string
	evaluated   bool
}

type WatcherOption func(*Watcher)

func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithFallbackLanguage sets the language applied to unmapped processes.
// Empty leaves the layout alone.
func WithFallbackLanguage(lang string) WatcherOption {
	return func(w *Watcher) {
		w.fallback = lang
	}
}

func NewWatcher(
	platform Platform,
	procs ProcessSource,
	config ConfigLoader,
	log *zap.SugaredLogger,
	opts ...WatcherOption,
) *Watcher {
	w := &Watcher{
		interval:   DefaultPollInterval,
		platform:   platform,
		procs:      procs,
		config:     config,
		log:        log,
		enabled:    atomic.NewBool(true),
		cfgStale:   atomic.NewBool(true),
		alwaysLoad: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ConfigChanged marks the cached configuration stale. Safe to call from any
// goroutine.
func (w *Watcher) ConfigChanged() {
	w.cfgStale.Store(true)
}

// CacheConfig switches from reading the store on every poll to reloading only
// after ConfigChanged. Call it before Run.
func (w *Watcher) CacheConfig() {
	w.alwaysLoad = false
}

func (w *Watcher) Enabled() bool {
	return w.enabled.Load()
}

func (w *Watcher) SetEnabled(enabled bool) {
	w.enabled.Store(enabled)
	w.log.Infow("watcher state changed", "enabled", enabled)
}

func (w *Watcher) Toggle() bool {
	enabled := !w.enabled.Toggle()
	w.log.Infow("watcher state changed", "enabled", enabled)
	return enabled
}

func (w *Watcher) Run(ctx context.Context) error {
	var focus <-chan struct{}
	if notifier, ok := w.platform.(FocusNotifier); ok {
		events, err := notifier.FocusEvents(ctx)
		if err != nil {
			w.log.Warnw("focus events unavailable, polling only", "error", err)
		} else {
			focus = events
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Infow("watcher started", "interval", w.interval)

	for {
		w.Poll()

		select {
		case <-ctx.Done():
			w.log.Info("watcher exiting")
			return ctx.Err()
		case <-ticker.C:
		case _, ok := <-focus:
			if !ok {
				w.log.Warn("focus event stream closed, polling only")
				focus = nil
			}
		}
	}
}

// Poll runs a single iteration of the watch loop.
func (w *Watcher) Poll() {
	if !w.enabled.Load() {
		w.reset()
		return
	}

	cfg := w.loadConfig()

	pid, err := w.platform.ForegroundPID()
	if err != nil {
		w.log.Debugw("get foreground process", "error", err)
		return
	}

	name, err := w.processName(pid)
	if err != nil {
		w.log.Debugw("resolve foreground process", "pid", pid, "error", err)
		return
	}

	desired, ok := cfg.Lookup(name)
	if !ok {
		desired = w.fallback
	}

	if w.evaluated && pid == w.lastPID && desired == w.lastDesired {
		return
	}
	w.evaluated = true
	w.lastPID = pid
	w.lastDesired = desired

	if desired == "" {
		w.lastApplied = ""
		return
	}

	if desired == w.lastApplied {
		return
	}

	if err := w.platform.SwitchLayout(pid, desired); err != nil {
		w.log.Warnw("switch layout", "process", name, "lang", desired, "error", err)
		return
	}

	w.lastApplied = desired
	w.log.Infow("requested layout", "process", name, "lang", desired)
}

func (w *Watcher) processName(pid int32) (string, error) {
	if w.evaluated && pid == w.lastPID && w.lastName != "" {
		return w.lastName, nil
	}

	proc, err := w.procs.Process(pid)
	if err != nil {
		return "", fmt.Errorf("lookup pid %d: %w", pid, err)
	}

	w.lastName = proc.Name
	return proc.Name, nil
}

func (w *Watcher) loadConfig() Config {
	if !w.alwaysLoad && !w.cfgStale.Load() && w.cfg != nil {
		return w.cfg
	}
	w.cfgStale.Store(false)

	cfg, err := w.config.Load()
	if err != nil {
		w.log.Debugw("load config", "error", err)
	}
	if cfg == nil {
		cfg = Config{}
	}

	w.cfg = cfg
	return cfg
}

func (w *Watcher) reset() {
	w.evaluated = false
	w.lastPID = 0
	w.lastName = ""
	w.lastDesired = ""
	w.lastApplied = ""
}
