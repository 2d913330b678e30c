package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

// CellKind is what a single column of the segment bar shows.
type CellKind int

const (
	CellTrack CellKind = iota // unrecorded time
	CellFill                  // recorded time
	CellSeparator             // divider at the end of a capped segment
	CellSeparatorDim          // divider in the dim half of a blink
)

const (
	fillGlyph      = "█"
	trackGlyph     = "░"
	separatorGlyph = "┃"
)

// SegmentColors holds the bar palette.
type SegmentColors struct {
	Segment   lipgloss.Color
	Separator lipgloss.Color
	Track     lipgloss.Color
}

// DefaultSegmentColors mirrors the config defaults.
func DefaultSegmentColors() SegmentColors {
	return SegmentColors{
		Segment:   lipgloss.Color("#00fdff"),
		Separator: lipgloss.Color("#ffffff"),
		Track:     lipgloss.Color("#3a3f4b"),
	}
}

// NewSegmentColors builds a palette from hex ("#00fdff") or ANSI ("39")
// color strings.
func NewSegmentColors(segment, separator, track string) SegmentColors {
	return SegmentColors{
		Segment:   lipgloss.Color(segment),
		Separator: lipgloss.Color(separator),
		Track:     lipgloss.Color(track),
	}
}

// SegmentBar renders timeline geometry as a one-line segmented progress bar.
type SegmentBar struct {
	Spans          []timeline.Span
	Width          int
	SeparatorWidth int  // columns per divider; 0 hides dividers
	BlinkOn        bool // bright half of the paused-divider blink
	Colors         SegmentColors
}

// Cells lays the spans out over Width columns. A span covers the columns
// whose left edge falls inside [Start, End). Capped spans end in a divider,
// which is never wider than the span itself.
func (b SegmentBar) Cells() []CellKind {
	width := b.Width
	if width <= 0 {
		width = 40
	}
	cells := make([]CellKind, width)

	for _, sp := range b.Spans {
		start := toColumn(sp.Start, width)
		end := toColumn(sp.End, width)
		for c := start; c < end; c++ {
			cells[c] = CellFill
		}

		if !sp.ShowsSeparator() || b.SeparatorWidth <= 0 || end <= start {
			continue
		}
		kind := CellSeparator
		if sp.State == timeline.StatePaused && !b.BlinkOn {
			kind = CellSeparatorDim
		}
		from := max(end-b.SeparatorWidth, start)
		for c := from; c < end; c++ {
			cells[c] = kind
		}
	}
	return cells
}

// toColumn maps a width fraction to a column index in [0, width].
func toColumn(f float64, width int) int {
	c := int(math.Round(f * float64(width)))
	return min(max(c, 0), width)
}

// Render returns the styled bar.
func (b SegmentBar) Render() string {
	colors := b.Colors
	if colors == (SegmentColors{}) {
		colors = DefaultSegmentColors()
	}

	cells := b.Cells()

	var sb strings.Builder
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		sb.WriteString(renderRun(cells[i], j-i, colors))
		i = j
	}
	return sb.String()
}

func renderRun(kind CellKind, n int, colors SegmentColors) string {
	switch kind {
	case CellFill:
		return lipgloss.NewStyle().Foreground(colors.Segment).Render(strings.Repeat(fillGlyph, n))
	case CellSeparator:
		return lipgloss.NewStyle().Foreground(colors.Separator).Bold(true).Render(strings.Repeat(separatorGlyph, n))
	case CellSeparatorDim:
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Faint(true).Render(strings.Repeat(separatorGlyph, n))
	default:
		return lipgloss.NewStyle().Foreground(colors.Track).Render(strings.Repeat(trackGlyph, n))
	}
}

// Plain renders the bar without styling, for logs and non-TTY output.
func (b SegmentBar) Plain() string {
	var sb strings.Builder
	for _, c := range b.Cells() {
		switch c {
		case CellFill:
			sb.WriteString(fillGlyph)
		case CellSeparator:
			sb.WriteString(separatorGlyph)
		case CellSeparatorDim:
			sb.WriteString("╎")
		default:
			sb.WriteString(trackGlyph)
		}
	}
	return sb.String()
}
