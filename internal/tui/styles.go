package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")).Padding(0, 1)
	statStyle     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	selectedStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(lipgloss.Color("39")).PaddingLeft(1)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.HiddenBorder(), false, false, false, true).PaddingLeft(1)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39")).Padding(1, 2)
	confirmStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("160")).Padding(1, 2)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle    = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("250"))
)

var statusColors = map[script.Status]lipgloss.Color{
	script.StatusPending: lipgloss.Color("214"),
	script.StatusApplied: lipgloss.Color("42"),
	script.StatusError:   lipgloss.Color("196"),
}

var priorityColors = map[script.Priority]lipgloss.Color{
	script.PriorityHigh:   lipgloss.Color("203"),
	script.PriorityMedium: lipgloss.Color("221"),
	script.PriorityLow:    lipgloss.Color("114"),
}

var toastColors = map[dashboard.ToastKind]lipgloss.Color{
	dashboard.ToastSuccess: lipgloss.Color("42"),
	dashboard.ToastError:   lipgloss.Color("196"),
	dashboard.ToastWarning: lipgloss.Color("214"),
	dashboard.ToastInfo:    lipgloss.Color("39"),
}

func badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("[" + text + "]")
}
