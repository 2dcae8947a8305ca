package tui

import "github.com/charmbracelet/lipgloss"

const (
	defaultColumnWidth = 16
	tableHeight        = 12
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#60A5FA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)

	menuStyle       = lipgloss.NewStyle().Padding(0, 1)
	menuActiveStyle = menuStyle.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorPrimary)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	tabActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(colorPrimary)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2).
			Width(22)
	cardValueStyle = lipgloss.NewStyle().Bold(true)

	labelStyle      = lipgloss.NewStyle().Width(22)
	fieldErrorStyle = lipgloss.NewStyle().Foreground(colorError)
	readOnlyStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	infoStyle    = lipgloss.NewStyle().Foreground(colorMuted)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorError).
			Padding(0, 2)
)
