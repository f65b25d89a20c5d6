package tui

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	previewHeight  = 10
	listPadding    = 1
	truncateLength = 60
	truncateSuffix = "..."
)

// Color palette
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // Light gray
	dimTextColor = lipgloss.Color("#9CA3AF") // Dim gray
	borderColor  = lipgloss.Color("#4B5563")
)

var (
	titleStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textColor).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	metaStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	confirmStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)
