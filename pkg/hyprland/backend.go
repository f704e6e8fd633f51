package hyprland

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/xkblayouts"
	"context"
	"errors"
	"fmt"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrLayoutNotConfigured = errors.New("layout not configured on any keyboard")

type controller interface {
	ActiveWindow() (Window, error)
	Clients() ([]Window, error)
	GetKeyboards() ([]Keyboard, error)
	SwitchToLayout(keyboard string, idx int) error
}

// Backend implements langswitch.Platform on top of hyprctl IPC.
type Backend struct {
	ctl      controller
	resolver *xkblayouts.Resolver
	log      *zap.SugaredLogger
}

var (
	_ langswitch.Platform      = (*Backend)(nil)
	_ langswitch.FocusNotifier = (*Backend)(nil)
)

func NewBackend(resolver *xkblayouts.Resolver, log *zap.SugaredLogger) (*Backend, error) {
	hyprctl, err := NewHyprctl()
	if err != nil {
		return nil, fmt.Errorf("connect hyprctl: %w", err)
	}

	return newBackend(hyprctl, resolver, log), nil
}

func newBackend(ctl controller, resolver *xkblayouts.Resolver, log *zap.SugaredLogger) *Backend {
	return &Backend{ctl: ctl, resolver: resolver, log: log}
}

func (b *Backend) ForegroundPID() (int32, error) {
	win, err := b.ctl.ActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("get active window: %w", err)
	}
	return win.PID, nil
}

func (b *Backend) VisibleWindowPIDs() (map[int32]struct{}, error) {
	clients, err := b.ctl.Clients()
	if err != nil {
		return nil, fmt.Errorf("get clients: %w", err)
	}

	pids := make(map[int32]struct{}, len(clients))
	for _, c := range clients {
		if !c.Mapped || c.Hidden || c.PID <= 0 {
			continue
		}
		pids[c.PID] = struct{}{}
	}

	return pids, nil
}

// SwitchLayout selects the layout for lang on every keyboard that has it.
// Hyprland layouts are global, so pid is not used.
func (b *Backend) SwitchLayout(_ int32, lang string) error {
	layout, err := b.resolver.Layout(lang)
	if err != nil {
		return err
	}

	keyboards, err := b.ctl.GetKeyboards()
	if err != nil {
		return fmt.Errorf("get keyboards: %w", err)
	}

	var errs error
	matched := 0
	for _, kb := range keyboards {
		idx, ok := kb.LayoutIndex(layout)
		if !ok {
			continue
		}
		matched++

		if b.isActive(kb, layout) {
			continue
		}

		if err := b.ctl.SwitchToLayout(kb.Name, idx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("switch %q to %d: %w", kb.Name, idx, err))
			continue
		}

		b.log.Debugw("switched keyboard", "keyboard", kb.Name, "layout", b.resolver.PrettyName(layout))
	}

	if matched == 0 {
		return fmt.Errorf("%w: %q", ErrLayoutNotConfigured, layout)
	}

	return errs
}

func (b *Backend) isActive(kb Keyboard, layout string) bool {
	registry := b.resolver.Registry()
	if registry == nil || kb.Active == "" {
		return false
	}

	active, _, ok := registry.ByDescription(kb.Active)
	return ok && active == layout
}

func (b *Backend) FocusEvents(ctx context.Context) (<-chan struct{}, error) {
	client, err := Connect()
	if err != nil {
		return nil, fmt.Errorf("connect event socket: %w", err)
	}

	return client.FocusEvents(ctx, b.log), nil
}

func (b *Backend) Close() error {
	return nil
}
