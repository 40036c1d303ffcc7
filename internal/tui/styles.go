package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorRed     = lipgloss.AdaptiveColor{Light: "#D93F3F", Dark: "#FF5F5F"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	counterStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	doneMarkStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	activeTitleStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)
)
