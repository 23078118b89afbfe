package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Terminal palette indexes so the user's theme decides the actual colors
	ColorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	ColorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	ColorPrimary = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "6", Dark: "14"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "8", Dark: "8"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "3", Dark: "11"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "5", Dark: "13"}
	ColorDefault = lipgloss.AdaptiveColor{Light: "0", Dark: "7"}

	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StylePrimary lipgloss.Style
	StyleInfo    lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleAccent  lipgloss.Style

	StyleTitle       lipgloss.Style
	StyleHeader      lipgloss.Style
	StyleBold        lipgloss.Style
	StyleTableHeader lipgloss.Style
	StyleTableRow    lipgloss.Style
	StyleTableRowAlt lipgloss.Style
	StyleTableBorder lipgloss.Style
	StyleFrame       lipgloss.Style

	IconSuccess  = "✔"
	IconError    = "✘"
	IconInfo     = "ℹ"
	IconWarning  = "⚠"
	IconCamera   = "📸"
	IconMail     = "✉"
	IconTrash    = "🗑"
	IconCalendar = "📅"
	IconWatch    = "👁"
)

func init() {
	SetTheme("auto")
}

// SetTheme applies the specified color theme ("auto", "dark", "light")
func SetTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleInfo = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)

	StyleTitle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleBold = lipgloss.NewStyle().Bold(true)

	StyleTableHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleTableRow = lipgloss.NewStyle().Foreground(ColorDefault)
	StyleTableRowAlt = lipgloss.NewStyle().Foreground(ColorDefault).Faint(true)
	StyleTableBorder = lipgloss.NewStyle().Foreground(ColorMuted)

	// Pager frame
	StyleFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
}

func withIcon(style lipgloss.Style, icon, msg string) string {
	return style.Render(icon + " " + msg)
}

func FormatSuccess(msg string) string { return withIcon(StyleSuccess, IconSuccess, msg) }
func FormatError(msg string) string   { return withIcon(StyleError, IconError, msg) }
func FormatInfo(msg string) string    { return withIcon(StyleInfo, IconInfo, msg) }
func FormatWarning(msg string) string { return withIcon(StyleWarning, IconWarning, msg) }

// FormatCapture highlights a newly stored photo
func FormatCapture(msg string) string { return withIcon(StylePrimary, IconCamera, msg) }

// FormatSent reports a relayed email
func FormatSent(msg string) string { return withIcon(StyleSuccess, IconMail, msg) }

// FormatStatus colors a delivery status word ("sent", "failed")
func FormatStatus(status string) string {
	switch status {
	case "sent":
		return StyleSuccess.Render(status)
	case "failed":
		return StyleError.Render(status)
	}
	return StyleMuted.Render(status)
}

func FormatTitle(title string) string { return StyleTitle.Render(title) }
func FormatMuted(text string) string  { return StyleMuted.Render(text) }
func FormatBold(text string) string   { return StyleBold.Render(text) }
