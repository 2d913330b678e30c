package styles

import "github.com/charmbracelet/lipgloss"

// CompactLogo is the one-line wordmark used in headers.
const CompactLogo = "●━━┃━━┃━ segrec"

// Logo returns the banner printed by the root command.
func Logo() string {
	mark := lipgloss.NewStyle().Foreground(AccentRecord).Bold(true).Render("●")
	bar := lipgloss.NewStyle().Foreground(AccentPrimary).Render("━━━━┃━━━┃━━")
	track := lipgloss.NewStyle().Foreground(BorderNormal).Render("━━━━━")
	name := lipgloss.NewStyle().Foreground(TextPrimary).Bold(true).Render("segrec")
	return mark + " " + bar + track + "  " + name
}
