package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	muted   = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#10B981")
	warning = lipgloss.Color("#F59E0B")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)

	widgetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1)

	headingStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(primary).Bold(true)
	doneStyle        = lipgloss.NewStyle().Foreground(muted).Strikethrough(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(muted)
	descriptionStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)
	allDoneStyle     = lipgloss.NewStyle().Foreground(success).Bold(true)
	warningStyle     = lipgloss.NewStyle().Foreground(warning)
	helpStyle        = lipgloss.NewStyle().Foreground(muted)
)
