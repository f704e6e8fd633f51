// Package tui is the interactive program lister: one row per running
// program, a language pill per row, and a footer with the watcher state.
//
// Every toggle is persisted immediately, like the settings window it
// replaces; "s" saves explicitly and "r" rescans processes.
package tui

import (
	"codeberg.org/miketth/langswitcher/pkg/langswitch"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusInterval = 2 * time.Second

type WatcherControl interface {
	Running() bool
	Start() error
	Stop() error
}

// -- messages --

type tickMsg time.Time

type scanMsg struct {
	err error
}

type watcherMsg struct {
	running bool
	err     error
}

// -- model --

type Model struct {
	lister  *langswitch.Lister
	watcher WatcherControl

	programs []langswitch.Program
	cursor   int

	watcherRunning bool
	status         string
	err            error

	width  int
	height int
}

func New(lister *langswitch.Lister, watcher WatcherControl) Model {
	return Model{lister: lister, watcher: watcher}
}

func Run(lister *langswitch.Lister, watcher WatcherControl) error {
	_, err := tea.NewProgram(New(lister, watcher), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scanCmd(), m.watcherStatusCmd(), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case scanMsg:
		m.err = msg.err
		m.programs = m.lister.Programs()
		m.clampCursor()
		return m, nil
	case watcherMsg:
		m.watcherRunning = msg.running
		if msg.err != nil {
			m.status = fmt.Sprintf("watcher: %v", msg.err)
		}
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.watcherStatusCmd(), tickCmd())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.programs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if len(m.programs) > 0 {
			m.cursor = len(m.programs) - 1
		}
	case " ", "enter":
		return m.toggleSelected()
	case "s":
		m.save("saved")
	case "r":
		m.status = "rescanning"
		return m, m.scanCmd()
	case "w":
		return m, m.toggleWatcherCmd()
	}
	m.clampCursor()
	return m, nil
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if len(m.programs) == 0 {
		return m, nil
	}

	// a rescan may have reordered the lister since m.programs was taken
	name := m.programs[m.cursor].Name
	lang, err := m.lister.ToggleByName(name)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.save(fmt.Sprintf("%s set to %s", name, lang))
	m.programs = m.lister.Programs()
	m.clampCursor()
	return m, nil
}

func (m *Model) save(okStatus string) {
	if err := m.lister.Save(); err != nil {
		m.status = fmt.Sprintf("save error: %v", err)
		return
	}
	m.status = okStatus
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.programs) {
		m.cursor = len(m.programs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// -- commands --

func (m Model) scanCmd() tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		return scanMsg{err: lister.Scan()}
	}
}

func (m Model) watcherStatusCmd() tea.Cmd {
	watcher := m.watcher
	if watcher == nil {
		return nil
	}
	return func() tea.Msg {
		return watcherMsg{running: watcher.Running()}
	}
}

func (m Model) toggleWatcherCmd() tea.Cmd {
	watcher := m.watcher
	if watcher == nil {
		return nil
	}
	running := m.watcherRunning
	return func() tea.Msg {
		var err error
		if running {
			err = watcher.Stop()
		} else {
			err = watcher.Start()
		}
		return watcherMsg{running: watcher.Running(), err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(statusInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
