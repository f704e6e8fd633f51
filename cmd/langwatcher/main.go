package main

import (
	"codeberg.org/miketth/langswitcher/pkg/langstore"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/logging"
	"codeberg.org/miketth/langswitcher/pkg/platform"
	"codeberg.org/miketth/langswitcher/pkg/procs"
	"codeberg.org/miketth/langswitcher/pkg/xkblayouts"
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the language config (default: user config dir)")
	storeKind := flag.String("store", langstore.KindJSON, "config store: json or sqlite")
	interval := flag.Duration("interval", langswitch.DefaultPollInterval, "foreground poll interval")
	backend := flag.String("backend", platform.KindAuto, "platform backend: auto, windows, hyprland or x11")
	evdevXmlPath := flag.String("evdev-xml-path", xkblayouts.DefaultEvdevPath, "path to evdev.xml")
	defaultLang := flag.String("default-lang", "", "language for programs missing from the config (default: leave the layout alone)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log, err := logging.New(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	fallback := ""
	if *defaultLang != "" {
		fallback, err = langswitch.NormalizeLanguage(*defaultLang)
		if err != nil {
			return fmt.Errorf("parse -default-lang: %w", err)
		}
	}

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := *configPath
	if path == "" {
		path, err = langstore.DefaultPath(*storeKind)
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
	}

	store, err := langstore.Open(*storeKind, path, log)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	defer store.Close()

	plat, err := platform.Detect(platform.Options{Kind: *backend, EvdevPath: *evdevXmlPath}, log)
	if err != nil {
		return fmt.Errorf("open platform: %w", err)
	}
	defer plat.Close()

	w := langswitch.NewWatcher(plat, procs.NewSource(), store, log,
		langswitch.WithInterval(*interval),
		langswitch.WithFallbackLanguage(fallback),
	)
	w.CacheConfig()

	log.Infow("started langwatcher", "config", path, "store", *storeKind)

	errChan := make(chan error, 3)
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		err := w.Run(ctx)
		if err != nil {
			errChan <- fmt.Errorf("run watcher: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := watchConfig(ctx, path, w, *interval, log)
		if err != nil {
			errChan <- fmt.Errorf("watch config: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		handlePauseSignal(ctx, w)
	}()

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		stop()
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

// watchConfig reloads the watcher's configuration on file changes. When the
// file cannot be watched it falls back to reloading on every poll.
func watchConfig(ctx context.Context, path string, w *langswitch.Watcher, interval time.Duration, log *zap.SugaredLogger) error {
	err := langstore.Watch(ctx, path, w.ConfigChanged, log)
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}

	log.Warnw("config watch failed, reloading every poll", "error", err)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
			w.ConfigChanged()
		}
	}
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Following the focused window")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}
