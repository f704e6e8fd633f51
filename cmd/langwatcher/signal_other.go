//go:build !unix

package main

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"context"
)

func handlePauseSignal(ctx context.Context, _ *langswitch.Watcher) {
	<-ctx.Done()
}
