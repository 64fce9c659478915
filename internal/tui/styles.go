package tui

import "github.com/charmbracelet/lipgloss"

// Color palette and shared styles for the interactive calculator.
var (
	ColorPrimary    = lipgloss.Color("#7D56F4")
	ColorSuccess    = lipgloss.Color("#04B575")
	ColorDanger     = lipgloss.Color("#FF5F87")
	ColorMuted      = lipgloss.Color("#626262")
	ColorForeground = lipgloss.Color("#FAFAFA")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 2)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(22)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	NetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	TaxStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ToggleOnStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
