package hyprland

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrNoActiveWindow  = errors.New("no active window")
)

var errorMapper = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(`^ok$`), nil},
	{regexp.MustCompile(`layout idx out of range.*`), ErrIndexOutOfRange},
	{regexp.MustCompile(`device not found`), ErrDeviceNotFound},
}

// Hyprctl talks to the request socket, one connection per request.
type Hyprctl struct{}

func NewHyprctl() (*Hyprctl, error) {
	if !Running() {
		return nil, ErrNotRunning
	}
	return &Hyprctl{}, nil
}

func mapResponse(out string) error {
	out = strings.TrimSpace(out)
	for _, m := range errorMapper {
		if m.re.MatchString(out) {
			return m.err
		}
	}

	return fmt.Errorf("hyprctl: %s", out)
}

func (c *Hyprctl) SwitchToLayout(keyboard string, idx int) error {
	out, err := c.request(fmt.Sprintf("switchxkblayout %s %d", keyboard, idx), "")
	if err != nil {
		return err
	}

	return mapResponse(string(out))
}

func (c *Hyprctl) GetKeyboards() ([]Keyboard, error) {
	out, err := c.request("devices", "j")
	if err != nil {
		return nil, err
	}

	var devs devices
	if err := json.Unmarshal(out, &devs); err != nil {
		return nil, fmt.Errorf("unmarshal devices: %w", err)
	}

	keyboards := make([]Keyboard, 0, len(devs.Keyboards))
	for _, k := range devs.Keyboards {
		keyboards = append(keyboards, k.ToKeyboard())
	}

	return keyboards, nil
}

func (c *Hyprctl) ActiveWindow() (Window, error) {
	out, err := c.request("activewindow", "j")
	if err != nil {
		return Window{}, err
	}

	return parseActiveWindow(out)
}

func parseActiveWindow(out []byte) (Window, error) {
	var win Window
	if err := json.Unmarshal(out, &win); err != nil {
		return Window{}, fmt.Errorf("unmarshal activewindow: %w", err)
	}

	if win.PID <= 0 {
		return Window{}, ErrNoActiveWindow
	}

	return win, nil
}

func (c *Hyprctl) Clients() ([]Window, error) {
	out, err := c.request("clients", "j")
	if err != nil {
		return nil, err
	}

	var clients []Window
	if err := json.Unmarshal(out, &clients); err != nil {
		return nil, fmt.Errorf("unmarshal clients: %w", err)
	}

	return clients, nil
}

func (c *Hyprctl) request(request string, args string) ([]byte, error) {
	conn, err := connect(Hyperctl)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(fmt.Sprintf("%s/%s", args, request))); err != nil {
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		return nil, fmt.Errorf("read response from hyprctl socket: %w", err)
	}

	return buf.Bytes(), nil
}
