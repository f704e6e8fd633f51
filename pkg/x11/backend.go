package x11

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/xkblayouts"
	"fmt"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"go.uber.org/zap"
	"strings"
)

// Backend implements langswitch.Platform through EWMH hints and setxkbmap.
type Backend struct {
	xu       *xgbutil.XUtil
	resolver *xkblayouts.Resolver
	run      runner
	log      *zap.SugaredLogger
}

var _ langswitch.Platform = (*Backend)(nil)

func NewBackend(resolver *xkblayouts.Resolver, log *zap.SugaredLogger) (*Backend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X11: %w", err)
	}

	return &Backend{xu: xu, resolver: resolver, run: runCommand, log: log}, nil
}

func (b *Backend) ForegroundPID() (int32, error) {
	win, err := ewmh.ActiveWindowGet(b.xu)
	if err != nil {
		return 0, fmt.Errorf("get _NET_ACTIVE_WINDOW: %w", err)
	}
	if win == 0 {
		return 0, fmt.Errorf("no active window")
	}

	pid, err := ewmh.WmPidGet(b.xu, win)
	if err != nil {
		return 0, fmt.Errorf("get _NET_WM_PID of %d: %w", win, err)
	}

	return int32(pid), nil
}

func (b *Backend) VisibleWindowPIDs() (map[int32]struct{}, error) {
	clients, err := ewmh.ClientListGet(b.xu)
	if err != nil {
		return nil, fmt.Errorf("get _NET_CLIENT_LIST: %w", err)
	}

	pids := make(map[int32]struct{}, len(clients))
	for _, win := range clients {
		if b.hidden(win) {
			continue
		}

		pid, err := ewmh.WmPidGet(b.xu, win)
		if err != nil || pid == 0 {
			continue
		}
		pids[int32(pid)] = struct{}{}
	}

	return pids, nil
}

func (b *Backend) hidden(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(b.xu, win)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// SwitchLayout makes the layout for lang the first xkb group. Setting the
// layout list also locks group 0, so it is issued even when lang is already
// first: -query does not report the active group. X11 layouts are per
// server, so pid is not used.
func (b *Backend) SwitchLayout(_ int32, lang string) error {
	layout, err := b.resolver.Layout(lang)
	if err != nil {
		return err
	}

	out, err := b.run("setxkbmap", "-query")
	if err != nil {
		return fmt.Errorf("query layouts: %w", err)
	}

	layouts, variants := parseQuery(out)
	layouts, variants = rotate(layouts, variants, layout)

	args := []string{"-layout", strings.Join(layouts, ",")}
	if strings.Join(variants, "") != "" {
		args = append(args, "-variant", strings.Join(variants, ","))
	}

	if _, err := b.run("setxkbmap", args...); err != nil {
		return fmt.Errorf("set layout: %w", err)
	}

	b.log.Debugw("switched layout", "layout", b.resolver.PrettyName(layout), "order", layouts)

	return nil
}

func (b *Backend) Close() error {
	b.xu.Conn().Close()
	return nil
}
