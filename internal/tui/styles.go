package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	// Feedback colors
	successColor = lipgloss.Color("10") // Green
	errorColor   = lipgloss.Color("9")  // Red
	accentColor  = lipgloss.Color("14") // Cyan

	// UI colors
	headerBg    = lipgloss.Color("235")
	helpBg      = lipgloss.Color("234")
	dimColor    = lipgloss.Color("8")
	borderColor = lipgloss.Color("240")
)

// Styles
var (
	// Header style
	headerStyle = lipgloss.NewStyle().
			Background(headerBg).
			Padding(0, 1).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Field labels
	labelStyle = lipgloss.NewStyle().
			Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(accentColor)

	errorPanelStyle = panelStyle.
			BorderForeground(errorColor)

	summaryStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// Export control labels and their notifications
	controlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(borderColor).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(successColor).
			Padding(0, 1)

	// Error indicator style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(errorColor).
			Bold(true).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// Help line style
	helpStyle = lipgloss.NewStyle().
			Background(helpBg).
			Padding(0, 1)

	// Dim style for placeholders and hints
	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)
