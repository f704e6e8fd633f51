package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// -- styles --

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	pillBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	// the first language gets blue, the rest cycle through these
	pillColors = []lipgloss.Color{"4", "2", "5", "3", "6"}
)

func (m Model) pill(lang string) string {
	color := pillColors[len(pillColors)-1]
	for i, l := range m.lister.Languages() {
		if l == lang {
			color = pillColors[i%len(pillColors)]
			break
		}
	}
	return pillBase.Background(color).Foreground(lipgloss.Color("0")).Render(strings.ToUpper(lang))
}

// -- view --

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("Language Switcher") + "\n")
	b.WriteString("  " + dimStyle.Render("toggle each program to set its language") + "\n\n")

	if m.err != nil {
		b.WriteString("  " + errStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n\n")
	}

	if len(m.programs) == 0 {
		b.WriteString("  " + dimStyle.Render("no programs found, press r to rescan") + "\n")
	}

	start, end := m.visibleRange()
	nameWidth := m.nameWidth()
	for i := start; i < end; i++ {
		p := m.programs[i]

		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}

		name := pad(truncate(p.Name, nameWidth), nameWidth)
		line := fmt.Sprintf("  %s%s  %s", marker, nameStyle.Render(name), m.pill(p.Lang))
		if p.Dirty() {
			line += dimStyle.Render(" *")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + m.watcherLine() + "\n")
	if m.status != "" {
		b.WriteString("  " + dimStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + helpStyle.Render("j/k move  space toggle  s save  r rescan  w watcher  q quit") + "\n")

	return b.String()
}

func (m Model) watcherLine() string {
	if m.watcher == nil {
		return dimStyle.Render("watcher: unmanaged")
	}
	if m.watcherRunning {
		return "watcher: " + runningStyle.Render("running")
	}
	return "watcher: " + stoppedStyle.Render("stopped")
}

// visibleRange keeps the cursor on screen, the header and footer take
// about ten lines.
func (m Model) visibleRange() (int, int) {
	rows := len(m.programs)
	if m.height <= 0 {
		return 0, rows
	}

	capacity := m.height - 10
	if capacity < 3 {
		capacity = 3
	}
	if rows <= capacity {
		return 0, rows
	}

	start := m.cursor - capacity/2
	if start < 0 {
		start = 0
	}
	if start+capacity > rows {
		start = rows - capacity
	}

	return start, start + capacity
}

func (m Model) nameWidth() int {
	w := 12
	for _, p := range m.programs {
		if pw := ansi.StringWidth(p.Name); pw > w {
			w = pw
		}
	}
	if m.width > 0 && w > m.width-20 {
		w = m.width - 20
	}
	if w < 8 {
		w = 8
	}
	return w
}

// truncate and pad work in terminal cells, not bytes.
func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "…")
}

func pad(s string, n int) string {
	if w := ansi.StringWidth(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
