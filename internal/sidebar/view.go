package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vburojevic/cove/internal/domain"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("216"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("216"))
	askingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("176")).Bold(true)
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	freshStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("cove"))
	b.WriteString("\n\n")

	if len(m.windows) == 0 {
		b.WriteString(inactiveStyle.Render("no windows"))
		b.WriteString("\n")
	}
	for i, w := range m.windows {
		b.WriteString(m.renderRow(w, i == m.cursor))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(truncate(m.err.Error(), m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s/%s move  %s open  %s quit",
		m.keys.Down.Help().Key, m.keys.Up.Help().Key, m.keys.Select.Help().Key, m.keys.Quit.Help().Key)))
	return b.String()
}

func (m Model) renderRow(w domain.WindowStatus, selected bool) string {
	prefix := "  "
	nameStyle := inactiveStyle
	if w.Active {
		nameStyle = activeStyle
	}
	if selected {
		prefix = cursorStyle.Render("❯ ")
		nameStyle = cursorStyle
	}
	name := truncate(w.Name, m.width-4)
	return prefix + m.glyph(w.State) + " " + nameStyle.Render(name)
}

// glyph is the one-cell state marker in front of each window name.
func (m Model) glyph(s domain.WindowState) string {
	switch s {
	case domain.StateWorking:
		return m.spinner.View()
	case domain.StateAsking:
		return askingStyle.Render("?")
	case domain.StateIdle:
		return idleStyle.Render("●")
	case domain.StateDone:
		return doneStyle.Render("✕")
	default:
		return freshStyle.Render("○")
	}
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width == 1 || len(r) <= 1 {
		return string(r[:1])
	}
	for lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
