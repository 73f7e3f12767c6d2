package output

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/vburojevic/cove/internal/domain"
)

var (
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	askingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	freshStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// StateLabel returns the state name, coloured when color is set
func StateLabel(s domain.WindowState, color bool) string {
	if !color {
		return s.String()
	}
	switch s {
	case domain.StateWorking:
		return workingStyle.Render(s.String())
	case domain.StateAsking:
		return askingStyle.Render(s.String())
	case domain.StateIdle:
		return idleStyle.Render(s.String())
	case domain.StateDone:
		return doneStyle.Render(s.String())
	default:
		return freshStyle.Render(s.String())
	}
}

// RenderTable writes rows as a text table
func RenderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(lo.ToAnySlice(header)...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// WindowRows renders windows as list rows: index, name, active marker, path
func WindowRows(windows []domain.WindowStatus) [][]string {
	return lo.Map(windows, func(w domain.WindowStatus, _ int) []string {
		return []string{strconv.Itoa(w.Index), w.Name, activeMark(w.Active), domain.ShortPath(w.Path)}
	})
}

// StatusRows renders windows as status rows: index, name, state, command, pane
func StatusRows(windows []domain.WindowStatus, color bool) [][]string {
	return lo.Map(windows, func(w domain.WindowStatus, _ int) []string {
		return []string{strconv.Itoa(w.Index), w.Name + activeSuffix(w.Active), StateLabel(w.State, color), w.Command, w.PaneID}
	})
}

func activeMark(active bool) string {
	return lo.Ternary(active, "*", "")
}

func activeSuffix(active bool) string {
	return lo.Ternary(active, " *", "")
}
