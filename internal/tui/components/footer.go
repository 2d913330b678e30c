package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string // "q", "space", "x"
	Desc string // "quit", "record", "discard"
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	sepStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var parts []string
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	content := strings.Join(parts, sepStyle.Render(" • "))

	footerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return footerStyle.Render(content)
}

// RecorderFooter returns the footer for the recording screen. The first
// hint follows what space does for the current segment state.
func RecorderFooter(width int, state string) Footer {
	action := "record"
	switch state {
	case "opened":
		action = "pause"
	case "paused":
		action = "resume"
	}
	return Footer{
		Hints: []KeyHint{
			{Key: "space", Desc: action},
			{Key: "c", Desc: "close"},
			{Key: "x", Desc: "discard"},
			{Key: "r", Desc: "reset"},
			{Key: "tab", Desc: "events"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}

// EventsFooter returns the footer for the event log tab.
func EventsFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "scroll"},
			{Key: "G", Desc: "follow"},
			{Key: "tab", Desc: "recorder"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}

// HelpFooter returns the footer shown over the help screen.
func HelpFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "?", Desc: "close help"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}
