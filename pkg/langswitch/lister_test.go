package langswitch_test

import (
	"codeberg.org/miketth/langswitcher/pkg/langstore/memory"
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"codeberg.org/miketth/langswitcher/pkg/langswitch/langswitchtest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func names(programs []langswitch.Program) []string {
	out := make([]string, len(programs))
	for i, p := range programs {
		out[i] = p.Name
	}
	return out
}

func newLister(t *testing.T, platform *langswitchtest.Platform, procs *langswitchtest.Processes, store *memory.LangStore) *langswitch.Lister {
	return langswitch.NewLister(platform, procs, store, zaptest.NewLogger(t).Sugar())
}

func TestScanOrdersKnownProgramsFirst(t *testing.T) {
	procs := langswitchtest.NewProcesses(
		langswitch.Process{PID: 1, Name: "zed.exe", Exe: `C:\Apps\zed.exe`},
		langswitch.Process{PID: 2, Name: "firefox.exe", Exe: `C:\Mozilla\firefox.exe`},
		langswitch.Process{PID: 3, Name: "Alacritty.exe", Exe: `C:\Apps\Alacritty.exe`},
		langswitch.Process{PID: 4, Name: "Code.exe", Exe: `C:\VSCode\Code.exe`},
		langswitch.Process{PID: 5, Name: "blender.exe", Exe: `C:\Apps\blender.exe`},
	)
	l := newLister(t, langswitchtest.NewPlatform(), procs, memory.NewLangStore(nil))

	require.NoError(t, l.Scan())
	assert.Equal(t, []string{"Code.exe", "firefox.exe", "Alacritty.exe", "blender.exe", "zed.exe"}, names(l.Programs()))
}

func TestScanDefaultsAndConfiguredLanguages(t *testing.T) {
	procs := langswitchtest.NewProcesses(
		langswitch.Process{PID: 1, Name: "Code.exe"},
		langswitch.Process{PID: 2, Name: "telegram.exe"},
	)
	store := memory.NewLangStore(langswitch.Config{"TELEGRAM.EXE": "fa"})
	l := newLister(t, langswitchtest.NewPlatform(), procs, store)

	require.NoError(t, l.Scan())
	programs := l.Programs()
	require.Len(t, programs, 2)
	assert.Equal(t, "en", programs[0].Lang)
	assert.Equal(t, "fa", programs[1].Lang)
	assert.False(t, programs[0].Dirty())
}

func TestScanFiltersByVisibleWindows(t *testing.T) {
	procs := langswitchtest.NewProcesses(
		langswitch.Process{PID: 1, Name: "Code.exe"},
		langswitch.Process{PID: 2, Name: "chrome.exe"},
		langswitch.Process{PID: 3, Name: "notepad.exe"},
		langswitch.Process{PID: 4, Name: "svchost-helper.exe"},
	)
	l := newLister(t, langswitchtest.NewPlatform(2, 3), procs, memory.NewLangStore(nil))

	require.NoError(t, l.Scan())
	assert.Equal(t, []string{"chrome.exe", "notepad.exe"}, names(l.Programs()))
}

func TestScanSkipsSystemAndDuplicates(t *testing.T) {
	procs := langswitchtest.NewProcesses(
		langswitch.Process{PID: 1, Name: "explorer.exe", Exe: `C:\Windows\explorer.exe`},
		langswitch.Process{PID: 2, Name: "dllhost.exe", Exe: `C:\Windows\System32\dllhost.exe`},
		langswitch.Process{PID: 3, Name: "chrome.exe", Exe: `C:\Chrome\chrome.exe`},
		langswitch.Process{PID: 4, Name: "chrome.exe", Exe: `C:\Chrome\chrome.exe`},
		langswitch.Process{PID: 5, Name: "  "},
		langswitch.Process{PID: 6, Name: "slack.exe"},
		langswitch.Process{PID: 7, Name: "slack.exe"},
	)
	l := newLister(t, langswitchtest.NewPlatform(), procs, memory.NewLangStore(nil))

	require.NoError(t, l.Scan())
	assert.Equal(t, []string{"chrome.exe", "slack.exe"}, names(l.Programs()))
}

func TestToggleCyclesLanguages(t *testing.T) {
	procs := langswitchtest.NewProcesses(langswitch.Process{PID: 1, Name: "Code.exe"})
	l := langswitch.NewLister(
		langswitchtest.NewPlatform(), procs, memory.NewLangStore(nil), zaptest.NewLogger(t).Sugar(),
		langswitch.WithLanguages([]string{"en", "fa", "de"}),
	)
	require.NoError(t, l.Scan())

	for _, want := range []string{"fa", "de", "en"} {
		got, err := l.Toggle(0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := l.Toggle(1)
	assert.Error(t, err)
	assert.Error(t, l.Set(-1, "fa"))
}

func TestToggleByName(t *testing.T) {
	procs := langswitchtest.NewProcesses(
		langswitch.Process{PID: 1, Name: "slack.exe"},
		langswitch.Process{PID: 2, Name: "telegram.exe"},
	)
	l := newLister(t, langswitchtest.NewPlatform(), procs, memory.NewLangStore(nil))
	require.NoError(t, l.Scan())

	procs.Add(langswitch.Process{PID: 3, Name: "discord.exe"})
	require.NoError(t, l.Scan())

	lang, err := l.ToggleByName("SLACK.EXE")
	require.NoError(t, err)
	assert.Equal(t, "fa", lang)

	programs := l.Programs()
	require.Equal(t, []string{"discord.exe", "slack.exe", "telegram.exe"}, names(programs))
	assert.Equal(t, "en", programs[0].Lang)
	assert.Equal(t, "fa", programs[1].Lang)
	assert.True(t, programs[1].Dirty())

	_, err = l.ToggleByName("zoom.exe")
	assert.Error(t, err)
}

func TestSavePersistsOnlyToggledPrograms(t *testing.T) {
	procs := langswitchtest.NewProcesses(
		langswitch.Process{PID: 1, Name: "Code.exe"},
		langswitch.Process{PID: 2, Name: "firefox.exe"},
	)
	store := memory.NewLangStore(langswitch.Config{"notepad.exe": "fa"})
	l := newLister(t, langswitchtest.NewPlatform(), procs, store)
	require.NoError(t, l.Scan())

	require.NoError(t, l.Save())
	assert.Zero(t, store.Saves(), "nothing toggled, nothing written")

	lang, err := l.Toggle(0)
	require.NoError(t, err)
	require.Equal(t, "fa", lang)
	require.NoError(t, l.Save())

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, langswitch.Config{"Code.exe": "fa", "notepad.exe": "fa"}, cfg)
	assert.False(t, l.Programs()[0].Dirty())
}

func TestSaveKeepsExternalEdits(t *testing.T) {
	procs := langswitchtest.NewProcesses(langswitch.Process{PID: 1, Name: "Code.exe"})
	store := memory.NewLangStore(nil)
	l := newLister(t, langswitchtest.NewPlatform(), procs, store)
	require.NoError(t, l.Scan())

	require.NoError(t, store.Save(langswitch.Config{"telegram.exe": "fa"}))
	require.NoError(t, l.Set(0, "fa"))
	require.NoError(t, l.Save())

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, langswitch.Config{"Code.exe": "fa", "telegram.exe": "fa"}, cfg)
}

func TestRescanKeepsUnsavedToggles(t *testing.T) {
	procs := langswitchtest.NewProcesses(langswitch.Process{PID: 1, Name: "Code.exe"})
	store := memory.NewLangStore(nil)
	l := newLister(t, langswitchtest.NewPlatform(), procs, store)
	require.NoError(t, l.Scan())

	_, err := l.Toggle(0)
	require.NoError(t, err)

	procs.Add(langswitch.Process{PID: 2, Name: "slack.exe"})
	require.NoError(t, l.Scan())

	programs := l.Programs()
	require.Len(t, programs, 2)
	assert.Equal(t, "fa", programs[0].Lang)
	assert.True(t, programs[0].Dirty())
	assert.Equal(t, "en", programs[1].Lang)
}
