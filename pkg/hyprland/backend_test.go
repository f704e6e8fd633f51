package hyprland

import (
	"codeberg.org/miketth/langswitcher/pkg/xkblayouts"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type switchCall struct {
	keyboard string
	idx      int
}

type fakeController struct {
	active    Window
	clients   []Window
	keyboards []Keyboard
	switchErr error
	switches  []switchCall
}

func (f *fakeController) ActiveWindow() (Window, error) {
	if f.active.PID == 0 {
		return Window{}, ErrNoActiveWindow
	}
	return f.active, nil
}

func (f *fakeController) Clients() ([]Window, error) {
	return f.clients, nil
}

func (f *fakeController) GetKeyboards() ([]Keyboard, error) {
	return f.keyboards, nil
}

func (f *fakeController) SwitchToLayout(keyboard string, idx int) error {
	f.switches = append(f.switches, switchCall{keyboard, idx})
	return f.switchErr
}

func newTestBackend(t *testing.T, ctl *fakeController) *Backend {
	registry, err := xkblayouts.ParseLayouts("../xkblayouts/testdata/evdev.xml")
	require.NoError(t, err)
	return newBackend(ctl, xkblayouts.NewResolver(registry), zaptest.NewLogger(t).Sugar())
}

func TestSwitchLayoutPerKeyboardIndex(t *testing.T) {
	ctl := &fakeController{
		keyboards: []Keyboard{
			keyboard{Name: "at-kbd", Layout: "us,ir"}.ToKeyboard(),
			keyboard{Name: "usb-kbd", Layout: "ir,us", ActiveKeymap: "English (US)"}.ToKeyboard(),
			keyboard{Name: "macro-pad", Layout: "us"}.ToKeyboard(),
		},
	}
	b := newTestBackend(t, ctl)

	require.NoError(t, b.SwitchLayout(42, "fa"))
	assert.Equal(t, []switchCall{{"at-kbd", 1}, {"usb-kbd", 0}}, ctl.switches)
}

func TestSwitchLayoutSkipsActive(t *testing.T) {
	ctl := &fakeController{
		keyboards: []Keyboard{
			keyboard{Name: "at-kbd", Layout: "us,ir", ActiveKeymap: "Persian"}.ToKeyboard(),
		},
	}
	b := newTestBackend(t, ctl)

	require.NoError(t, b.SwitchLayout(42, "fa"))
	assert.Empty(t, ctl.switches)
}

func TestSwitchLayoutNotConfigured(t *testing.T) {
	ctl := &fakeController{
		keyboards: []Keyboard{keyboard{Name: "at-kbd", Layout: "us"}.ToKeyboard()},
	}
	b := newTestBackend(t, ctl)

	err := b.SwitchLayout(42, "fa")
	assert.ErrorIs(t, err, ErrLayoutNotConfigured)
}

func TestSwitchLayoutDeviceError(t *testing.T) {
	ctl := &fakeController{
		keyboards: []Keyboard{keyboard{Name: "at-kbd", Layout: "us,ir"}.ToKeyboard()},
		switchErr: ErrDeviceNotFound,
	}
	b := newTestBackend(t, ctl)

	err := b.SwitchLayout(42, "fa")
	assert.True(t, errors.Is(err, ErrDeviceNotFound))
}

func TestForegroundAndVisible(t *testing.T) {
	ctl := &fakeController{
		active: Window{Class: "firefox", PID: 100},
		clients: []Window{
			{PID: 100, Mapped: true},
			{PID: 200, Mapped: true, Hidden: true},
			{PID: 300, Mapped: false},
			{PID: 400, Mapped: true},
		},
	}
	b := newTestBackend(t, ctl)

	pid, err := b.ForegroundPID()
	require.NoError(t, err)
	assert.Equal(t, int32(100), pid)

	pids, err := b.VisibleWindowPIDs()
	require.NoError(t, err)
	assert.Equal(t, map[int32]struct{}{100: {}, 400: {}}, pids)
}

func TestParseActiveWindow(t *testing.T) {
	win, err := parseActiveWindow([]byte(`{"address":"0x1","mapped":true,"class":"code","title":"main.go","pid":321}`))
	require.NoError(t, err)
	assert.Equal(t, int32(321), win.PID)
	assert.Equal(t, "code", win.Class)

	_, err = parseActiveWindow([]byte(`{}`))
	assert.ErrorIs(t, err, ErrNoActiveWindow)
}

func TestMapResponse(t *testing.T) {
	assert.NoError(t, mapResponse("ok\n"))
	assert.ErrorIs(t, mapResponse("layout idx out of range of 2"), ErrIndexOutOfRange)
	assert.ErrorIs(t, mapResponse("device not found"), ErrDeviceNotFound)
	assert.Error(t, mapResponse("something else"))
}

func TestIsFocusEvent(t *testing.T) {
	assert.True(t, isFocusEvent("activewindow>>firefox,GitHub"))
	assert.True(t, isFocusEvent("activewindowv2>>55d3a0"))
	assert.False(t, isFocusEvent("activelayout>>at-kbd,Persian"))
	assert.False(t, isFocusEvent("garbage"))
}

func TestToKeyboardPadsVariants(t *testing.T) {
	kb := keyboard{Name: "k", Layout: "us,ir,de", Variant: "dvorak"}.ToKeyboard()
	assert.Equal(t, []string{"dvorak", "", ""}, kb.Variants)

	idx, ok := kb.LayoutIndex("de")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}
