package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/tui/styles"
)

// Panel wraps content in a bordered panel with a styled title.
func Panel(title string, content string, width int) string {
	titleStr := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render(title)

	innerWidth := width - 4 // border (2) + padding (2)
	if innerWidth < 10 {
		innerWidth = 10
	}

	return lipgloss.NewStyle().
		Background(styles.BgPanel).
		Border(styles.RoundedBorder).
		BorderForeground(styles.BorderNormal).
		Padding(0, 1).
		Width(innerWidth).
		Render(titleStr + "\n" + content)
}
