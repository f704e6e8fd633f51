//go:build linux

package platform

import (
	"codeberg.org/miketth/langswitcher/pkg/hyprland"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/x11"
	"fmt"
	"go.uber.org/zap"
	"os"
)

func autoKind() string {
	switch {
	case hyprland.Running():
		return KindHyprland
	case os.Getenv("DISPLAY") != "":
		return KindX11
	}
	return ""
}

func open(kind string, opts Options, log *zap.SugaredLogger) (langswitch.Platform, error) {
	switch kind {
	case KindHyprland:
		backend, err := hyprland.NewBackend(loadResolver(opts.EvdevPath, log), log)
		if err != nil {
			return nil, fmt.Errorf("open hyprland backend: %w", err)
		}
		return backend, nil
	case KindX11:
		backend, err := x11.NewBackend(loadResolver(opts.EvdevPath, log), log)
		if err != nil {
			return nil, fmt.Errorf("open x11 backend: %w", err)
		}
		return backend, nil
	}

	return nil, fmt.Errorf("backend %q: %w", kind, langswitch.ErrUnsupported)
}
