package tui

import "github.com/charmbracelet/lipgloss"

// Styles used throughout the save editor.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleFilterPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleCursorRow = lipgloss.NewStyle().
			Background(lipgloss.Color("24")).
			Foreground(lipgloss.Color("255"))

	styleRow = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleDim = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleDirty = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
