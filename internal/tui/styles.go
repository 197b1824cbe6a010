package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/progressrace/internal/ui"
)

// Style variables for the race view.
// Initialized from the ui theme system via initTUIStyles().
var (
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	elapsedStyle       lipgloss.Style
	panelStyle         lipgloss.Style
	nameStyle          lipgloss.Style
	barFillStyle       lipgloss.Style
	barEmptyStyle      lipgloss.Style
	durationStyle      lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusCancelStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run after InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	elapsedStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	barFillStyle = lipgloss.NewStyle().
		Foreground(t.BarFill)

	barEmptyStyle = lipgloss.NewStyle().
		Foreground(t.BarEmpty)

	durationStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	statusRunningStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusCancelStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
}
