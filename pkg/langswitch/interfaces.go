package langswitch

import (
	"context"
	"errors"
)

var (
	ErrUnsupported = errors.New("platform not supported")
	ErrCorrupt     = errors.New("configuration document is corrupt")
)

// Platform is the OS boundary: foreground window, window owners and the
// input layout of the session.
type Platform interface {
	ForegroundPID() (int32, error)
	VisibleWindowPIDs() (map[int32]struct{}, error)
	SwitchLayout(pid int32, lang string) error
	Close() error
}

// FocusNotifier is implemented by platforms that can push focus changes
// instead of only being polled.
type FocusNotifier interface {
	FocusEvents(ctx context.Context) (<-chan struct{}, error)
}

type ProcessSource interface {
	Processes() ([]Process, error)
	Process(pid int32) (Process, error)
}

type Process struct {
	PID  int32
	Name string
	Exe  string
}

type ConfigLoader interface {
	Load() (Config, error)
}

type ConfigStore interface {
	ConfigLoader
	Save(cfg Config) error
}
