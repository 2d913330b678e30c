package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

// SegmentList shows every segment as a state dot and its duration.
type SegmentList struct {
	Segments []timeline.Segment
	Current  int
	Width    int
}

// Render returns the styled list. Saved segments get a filled green dot,
// the current segment is bold and colored by state, and an empty timeline
// shows a muted placeholder.
func (l SegmentList) Render() string {
	if len(l.Segments) == 0 {
		return styles.Dim("no segments yet -- press space to record")
	}

	var parts []string
	for i, seg := range l.Segments {
		color := styles.StateColor(string(seg.State))

		dot := "●"
		if seg.State == timeline.StatePaused {
			dot = "◐"
		}
		style := lipgloss.NewStyle().Foreground(color)
		if i == l.Current {
			style = style.Bold(true)
		}

		parts = append(parts, style.Render(fmt.Sprintf("%s %d:%s", dot, i+1, styles.Seconds(seg.Duration))))
	}

	line := strings.Join(parts, "  ")
	if l.Width > 0 && lipgloss.Width(line) > l.Width {
		// Too many segments for one line: wrap into rows.
		return lipgloss.NewStyle().Width(l.Width).Render(line)
	}
	return line
}
