package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Badge helpers
// ---------------------------------------------------------------------------

// Badge returns an inline colored badge such as "● RECORDING".
func Badge(text string, color lipgloss.Color) string {
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	label := lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Render(text)
	return dot + " " + label
}

// StatusBadge returns a badge for "ok", "warn", "error" or "info". Anything
// else is shown upper-cased in the info color.
func StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "ok":
		return Badge("OK", StatusOK)
	case "warn":
		return Badge("WARN", StatusWarn)
	case "error":
		return Badge("ERROR", StatusError)
	default:
		return Badge(strings.ToUpper(status), StatusInfo)
	}
}

// ---------------------------------------------------------------------------
// Typography
// ---------------------------------------------------------------------------

// Title is bold AccentPrimary text for section headings.
var Title = lipgloss.NewStyle().
	Foreground(AccentPrimary).
	Bold(true)

// Subtitle is TextSecondary text for secondary headings.
var Subtitle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// Label is TextMuted text for field labels. Pass uppercase strings for the
// LABEL look.
var Label = lipgloss.NewStyle().
	Foreground(TextMuted)

// Value is bold TextPrimary text for data values.
var Value = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// Divider returns a horizontal rule of the given width.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(strings.Repeat("─", width))
}
