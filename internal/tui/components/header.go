package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/tui/styles"
)

// Header renders the recorder status bar.
type Header struct {
	Total    float64 // recorded seconds
	Max      float64
	Segments int
	State    string // current segment state, "" when none
	Width    int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render(styles.CompactLogo)

	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("  │  ")

	timeColor := styles.TextPrimary
	if h.Max > 0 && h.Total >= h.Max {
		timeColor = styles.StatusWarn
	}
	recorded := styles.Label.Render("Time: ") +
		lipgloss.NewStyle().Foreground(timeColor).Bold(true).
			Render(fmt.Sprintf("%.1f/%.1fs", h.Total, h.Max))

	segments := styles.Label.Render("Segments: ") +
		lipgloss.NewStyle().Foreground(styles.TextPrimary).Bold(true).
			Render(fmt.Sprintf("%d", h.Segments))

	state := h.State
	if state == "" {
		state = "idle"
	}
	badge := styles.Badge(strings.ToUpper(stateLabel(state)), styles.StateColor(h.State))

	content := logo + sep + recorded + sep + segments + sep + badge

	headerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return headerStyle.Render(content)
}

// stateLabel returns the human-readable label for a segment state.
func stateLabel(state string) string {
	switch state {
	case "opened":
		return "recording"
	case "paused":
		return "paused"
	case "closed":
		return "saved"
	case "final":
		return "full"
	default:
		return state
	}
}
