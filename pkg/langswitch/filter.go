package langswitch

import (
	"os"
	"path/filepath"
	"strings"
)

// KnownPrograms are listed first when scanning, in this order.
var KnownPrograms = []string{
	"Code.exe",
	"PyCharm.exe",
	"chrome.exe",
	"firefox.exe",
	"Opera.exe",
	"WINWORD.EXE",
	"EXCEL.EXE",
	"code",
	"pycharm",
	"chrome",
	"firefox",
	"opera",
}

var systemProcesses = map[string]bool{
	"explorer.exe":                true,
	"shellexperiencehost.exe":     true,
	"systemsettings.exe":          true,
	"applicationframehost.exe":    true,
	"searchui.exe":                true,
	"startmenuexperiencehost.exe": true,
	"sihost.exe":                  true,
	"runtimebroker.exe":           true,
	"audiodg.exe":                 true,
	"wsappx.exe":                  true,
	"smss.exe":                    true,
	"csrss.exe":                   true,
	"wininit.exe":                 true,
	"services.exe":                true,
	"lsass.exe":                   true,
	"dwm.exe":                     true,
	"taskhostw.exe":               true,

	"xorg":         true,
	"xwayland":     true,
	"gnome-shell":  true,
	"plasmashell":  true,
	"kwin_x11":     true,
	"kwin_wayland": true,
	"hyprland":     true,
	"waybar":       true,
}

var systemDirs = []string{
	`\windows\`, "/windows/",
	`\system32\`, "/system32/",
	`\syswow64\`, "/syswow64/",
}

// Skipper decides which processes never show up in the lister.
type Skipper struct {
	self string
}

func NewSkipper() Skipper {
	self := ""
	if exe, err := os.Executable(); err == nil {
		self = filepath.Base(exe)
	}
	return Skipper{self: self}
}

func (s Skipper) Skip(name, exe string) bool {
	if systemProcesses[strings.ToLower(name)] {
		return true
	}

	if exe != "" {
		low := strings.ToLower(exe)
		for _, dir := range systemDirs {
			if strings.Contains(low, dir) {
				return true
			}
		}
	}

	return s.self != "" && strings.EqualFold(s.self, name)
}

func processKey(p Process) string {
	if p.Exe != "" {
		return strings.ToLower(p.Exe)
	}
	return strings.ToLower(p.Name)
}
