package components

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("205") // Pink
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("196") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorInfo      = lipgloss.Color("86")  // Cyan
	ColorMuted     = lipgloss.Color("244") // Gray
)

// Common styles
var (
	// Title and header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(lipgloss.Color("235")).
			Padding(0, 2).
			MarginBottom(1)

	// Text styles
	ItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Width(12)

	// Status styles
	StatusActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	// Message styles
	SuccessMessageStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	WarningMessageStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	InfoMessageStyle = lipgloss.NewStyle().
				Foreground(ColorInfo)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("240")).
			MarginTop(1)

	// App container
	AppStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

// RenderStatusLine renders a "label: value" row of the host status screen.
func RenderStatusLine(label, value string) string {
	return LabelStyle.Render(label+":") + " " + value
}

func RenderMessage(messageType, message string) string {
	switch messageType {
	case "success":
		return SuccessMessageStyle.Render("✓ " + message)
	case "error":
		return ErrorMessageStyle.Render("✗ " + message)
	case "warning":
		return WarningMessageStyle.Render("⚠ " + message)
	case "info":
		return InfoMessageStyle.Render("ℹ " + message)
	default:
		return ItemStyle.Render(message)
	}
}
