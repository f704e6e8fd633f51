//go:build unix

package main

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"context"
	"golang.org/x/sys/unix"
	"os"
	"os/signal"
)

// handlePauseSignal toggles the watcher on every SIGUSR1.
func handlePauseSignal(ctx context.Context, w *langswitch.Watcher) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGUSR1)
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			w.Toggle()
		}
	}
}
