//go:build windows

package platform

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/winapi"
	"fmt"
	"go.uber.org/zap"
)

func autoKind() string {
	return KindWindows
}

func open(kind string, _ Options, log *zap.SugaredLogger) (langswitch.Platform, error) {
	if kind != KindWindows {
		return nil, fmt.Errorf("backend %q: %w", kind, langswitch.ErrUnsupported)
	}

	backend, err := winapi.NewBackend(log)
	if err != nil {
		return nil, fmt.Errorf("open windows backend: %w", err)
	}
	return backend, nil
}
