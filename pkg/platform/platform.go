package platform

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/xkblayouts"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

const (
	KindAuto     = "auto"
	KindWindows  = "windows"
	KindHyprland = "hyprland"
	KindX11      = "x11"
)

type Options struct {
	Kind      string
	EvdevPath string
}

// Detect opens the backend for opts.Kind, resolving "auto" from the
// running OS and session.
func Detect(opts Options, log *zap.SugaredLogger) (langswitch.Platform, error) {
	kind := strings.ToLower(opts.Kind)
	if kind == "" || kind == KindAuto {
		kind = autoKind()
	}
	if kind == "" {
		return nil, fmt.Errorf("detect backend: %w", langswitch.ErrUnsupported)
	}

	log.Debugw("using platform backend", "kind", kind)

	return open(kind, opts, log)
}

// loadResolver falls back to the built-in table when evdev.xml is unavailable.
func loadResolver(path string, log *zap.SugaredLogger) *xkblayouts.Resolver {
	if path == "" {
		path = xkblayouts.DefaultEvdevPath
	}

	registry, err := xkblayouts.ParseLayouts(path)
	if err != nil {
		log.Warnw("using built-in layout table", "path", path, "error", err)
		return xkblayouts.NewResolver(nil)
	}

	return xkblayouts.NewResolver(registry)
}
