package langswitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipper(t *testing.T) {
	s := Skipper{self: "langswitch"}

	assert.True(t, s.Skip("explorer.exe", ""))
	assert.True(t, s.Skip("DWM.EXE", ""))
	assert.True(t, s.Skip("notepad.exe", `C:\Windows\System32\notepad.exe`))
	assert.True(t, s.Skip("tool.exe", "c:/windows/tool.exe"))
	assert.True(t, s.Skip("gnome-shell", "/usr/bin/gnome-shell"))
	assert.True(t, s.Skip("LangSwitch", ""))

	assert.False(t, s.Skip("Code.exe", `C:\Program Files\Microsoft VS Code\Code.exe`))
	assert.False(t, s.Skip("firefox", "/usr/lib/firefox/firefox"))
}

func TestProcessKey(t *testing.T) {
	assert.Equal(t, `c:\apps\code.exe`, processKey(Process{Name: "Code.exe", Exe: `C:\Apps\Code.exe`}))
	assert.Equal(t, "code.exe", processKey(Process{Name: "Code.exe"}))
}
