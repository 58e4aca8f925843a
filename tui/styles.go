package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	deniedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	rowPendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	rowApprovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rowRejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "approved":
		return rowApprovedStyle
	case "rejected":
		return rowRejectedStyle
	default:
		return rowPendingStyle
	}
}
