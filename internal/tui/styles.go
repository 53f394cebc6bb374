package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#15803D")
	successBg    = lipgloss.Color("#DCFCE7")
	errorColor   = lipgloss.Color("#EF4444")
	accentColor  = lipgloss.Color("#F59E0B")
	mutedColor   = lipgloss.Color("#6B7280")
	borderColor  = lipgloss.Color("#45475A")
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(primaryColor)

var subtitleStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Bold(true)

var buttonStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(primaryColor).
	Padding(0, 2)

var disabledButtonStyle = buttonStyle.
	Background(mutedColor)

var noticeStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(accentColor).
	Foreground(accentColor).
	Bold(true).
	Padding(1, 4)

var errorStyle = lipgloss.NewStyle().
	Foreground(errorColor)

var mutedStyle = lipgloss.NewStyle().
	Foreground(mutedColor)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Padding(0, 1).
	MarginBottom(1)

var selectedCardStyle = cardStyle.
	BorderForeground(primaryColor)

var cardTitleStyle = lipgloss.NewStyle().Bold(true)

var scoreStyle = lipgloss.NewStyle().
	Foreground(successColor).
	Background(successBg).
	Padding(0, 1)

var toggleStyle = lipgloss.NewStyle().
	Foreground(primaryColor).
	Underline(true)

var previewStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(borderColor).
	Padding(0, 1)

var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	MarginTop(1)
