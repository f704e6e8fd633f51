//go:build !linux && !windows

package platform

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"fmt"
	"go.uber.org/zap"
)

func autoKind() string {
	return ""
}

func open(kind string, _ Options, _ *zap.SugaredLogger) (langswitch.Platform, error) {
	return nil, fmt.Errorf("backend %q: %w", kind, langswitch.ErrUnsupported)
}
