package styles

import "github.com/charmbracelet/lipgloss"

// Studio Night -- Dark Palette
// Deep midnight backgrounds with the recording-cyan accent.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0a0e14") // Deepest -- main background
	BgPanel   = lipgloss.Color("#11151c") // Panel/card background
	BgSurface = lipgloss.Color("#1a1f2e") // Elevated surface

	// Accents
	AccentPrimary   = lipgloss.Color("#4fc1ff") // Cyan -- focused borders, keys
	AccentSecondary = lipgloss.Color("#39c5bb") // Teal -- secondary info
	AccentRecord    = lipgloss.Color("#ff453a") // Red -- recording indicator

	// Status
	StatusOK    = lipgloss.Color("#22c55e") // Green
	StatusWarn  = lipgloss.Color("#f59e0b") // Amber
	StatusError = lipgloss.Color("#ef4444") // Red
	StatusInfo  = lipgloss.Color("#4fc1ff") // Cyan

	// Text
	TextPrimary   = lipgloss.Color("#e2e8f0") // High contrast
	TextSecondary = lipgloss.Color("#94a3b8") // Dimmed
	TextMuted     = lipgloss.Color("#64748b") // Very dim

	// Borders
	BorderNormal = lipgloss.Color("#2d3748") // Subtle
)

// StateColor returns the badge color for a segment state name.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "opened":
		return AccentRecord
	case "paused":
		return StatusWarn
	case "closed":
		return StatusOK
	case "final":
		return AccentPrimary
	default:
		return TextMuted
	}
}
