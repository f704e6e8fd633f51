//go:build windows

package winapi

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"
	"sync"
	"unsafe"
)

const (
	klfActivate              = 0x00000001
	wmInputLangChangeRequest = 0x0050
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procLoadKeyboardLayoutW  = user32.NewProc("LoadKeyboardLayoutW")
	procPostMessageW         = user32.NewProc("PostMessageW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procLocaleNameToLCID     = kernel32.NewProc("LocaleNameToLCID")
)

var ErrNoForegroundWindow = errors.New("no foreground window")

// EnumWindows callbacks are a limited resource, so one is shared and
// enumeration is serialized.
var (
	enumLock    sync.Mutex
	enumTarget  map[int32]struct{}
	enumWindows = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if !windows.IsWindowVisible(hwnd) {
			return 1
		}
		if n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd)); n == 0 {
			return 1
		}

		var pid uint32
		if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err == nil && pid != 0 {
			enumTarget[int32(pid)] = struct{}{}
		}
		return 1
	})
)

type Backend struct {
	log *zap.SugaredLogger
}

var _ langswitch.Platform = (*Backend)(nil)

func NewBackend(log *zap.SugaredLogger) (*Backend, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("load user32: %w", err)
	}
	return &Backend{log: log}, nil
}

func (b *Backend) ForegroundPID() (int32, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return 0, ErrNoForegroundWindow
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return 0, fmt.Errorf("GetWindowThreadProcessId: %w", err)
	}
	if pid == 0 {
		return 0, fmt.Errorf("foreground window %x has no process", hwnd)
	}

	return int32(pid), nil
}

func (b *Backend) VisibleWindowPIDs() (map[int32]struct{}, error) {
	enumLock.Lock()
	defer enumLock.Unlock()

	enumTarget = make(map[int32]struct{})
	defer func() { enumTarget = nil }()

	if err := windows.EnumWindows(enumWindows, unsafe.Pointer(nil)); err != nil {
		return nil, fmt.Errorf("EnumWindows: %w", err)
	}

	return enumTarget, nil
}

// SwitchLayout asks the foreground window to change its input language.
func (b *Backend) SwitchLayout(_ int32, lang string) error {
	id, err := layoutID(lang)
	if err != nil {
		return err
	}

	idPtr, err := windows.UTF16PtrFromString(id)
	if err != nil {
		return fmt.Errorf("encode klid: %w", err)
	}

	hkl, _, callErr := procLoadKeyboardLayoutW.Call(uintptr(unsafe.Pointer(idPtr)), klfActivate)
	if hkl == 0 {
		return fmt.Errorf("LoadKeyboardLayoutW(%s): %w", id, callErr)
	}

	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return ErrNoForegroundWindow
	}

	ok, _, callErr := procPostMessageW.Call(uintptr(hwnd), wmInputLangChangeRequest, 0, hkl)
	if ok == 0 {
		return fmt.Errorf("PostMessageW: %w", callErr)
	}

	b.log.Debugw("posted layout change", "klid", id, "hwnd", hwnd)

	return nil
}

func layoutID(lang string) (string, error) {
	name, err := localeName(lang)
	if err != nil {
		return "", err
	}

	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return "", fmt.Errorf("encode locale name: %w", err)
	}

	lcid, _, callErr := procLocaleNameToLCID.Call(uintptr(unsafe.Pointer(namePtr)), 0)
	if lcid == 0 {
		return "", fmt.Errorf("LocaleNameToLCID(%s): %w", name, callErr)
	}

	return klid(uint32(lcid)), nil
}

func (b *Backend) Close() error {
	return nil
}
