package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/tui/styles"
)

// TabBar renders horizontal tab selection. Counts, when set, adds a muted
// counter after the tab with the same index.
type TabBar struct {
	Tabs      []string
	Counts    []int
	ActiveTab int
	Width     int
}

// Render returns the styled tab bar string.
func (t TabBar) Render() string {
	if len(t.Tabs) == 0 {
		return ""
	}

	activeStyle := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Underline(true).
		PaddingLeft(1).
		PaddingRight(1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		PaddingLeft(1).
		PaddingRight(1)

	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var tabs []string
	for i, tab := range t.Tabs {
		style := inactiveStyle
		if i == t.ActiveTab {
			style = activeStyle
		}
		label := style.Render(tab)
		if i < len(t.Counts) && t.Counts[i] > 0 {
			label += countStyle.Render(fmt.Sprintf("%d ", t.Counts[i]))
		}
		tabs = append(tabs, label)
	}

	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("│")

	return lipgloss.NewStyle().
		Background(styles.BgDeep).
		Width(t.Width).
		Render(strings.Join(tabs, sep))
}
