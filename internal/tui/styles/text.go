package styles

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Convenience color helpers
// ---------------------------------------------------------------------------

// Cyan renders s in AccentPrimary (electric cyan).
func Cyan(s string) string {
	return lipgloss.NewStyle().Foreground(AccentPrimary).Render(s)
}

// Green renders s in StatusOK.
func Green(s string) string {
	return lipgloss.NewStyle().Foreground(StatusOK).Render(s)
}

// Dim renders s in TextMuted.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(TextMuted).Render(s)
}

// Bold renders s in bold TextPrimary.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).Render(s)
}

// ---------------------------------------------------------------------------
// Sparkline
// ---------------------------------------------------------------------------

// brailleRamp runs from an empty take to the longest one.
var brailleRamp = []rune{'⡀', '⡄', '⡆', '⡇', '⣇', '⣧', '⣷', '⣿'}

// Sparkline draws take lengths as braille bars across width columns. Bars
// are scaled against zero so equal takes stay equal and short takes stay
// short. It returns "" for no values or a non-positive width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	hi := 0.0
	for _, v := range values {
		hi = math.Max(hi, v)
	}
	if hi == 0 {
		hi = 1
	}

	top := len(brailleRamp) - 1
	var b strings.Builder
	for i := range width {
		v := math.Max(values[i*len(values)/width], 0)
		bucket := min(int(math.Round(v/hi*float64(top))), top)
		b.WriteRune(brailleRamp[bucket])
	}

	return lipgloss.NewStyle().Foreground(AccentPrimary).Render(b.String())
}

// ---------------------------------------------------------------------------
// Text utilities
// ---------------------------------------------------------------------------

// TruncateWithEllipsis shortens s to max runes, appending "..." when
// truncation occurs. If max is less than 4 the string is simply cut.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 4 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// Seconds formats a duration in seconds as "2.4s".
func Seconds(v float64) string {
	return fmt.Sprintf("%.1fs", v)
}
