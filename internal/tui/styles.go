package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorText    = lipgloss.Color("#E2E8F0")
	colorDim     = lipgloss.Color("#64748B")
	colorBorder  = lipgloss.Color("#334155")
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#22C55E")
	colorWarning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Right)

	wordsLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	wordsStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorError).
			Foreground(colorError).
			Padding(0, 1)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	speakingStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorBorder)
)
