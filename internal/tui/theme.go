package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the views use.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	tabStyle     = lipgloss.NewStyle().Foreground(colorOverlay1).Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Bold(true).Foreground(colorFocus).Underline(true).Padding(0, 1)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	rowStyle     = lipgloss.NewStyle().Foreground(colorText)
	dimStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	priceStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	totalStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
)
