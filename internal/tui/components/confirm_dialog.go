package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/segrec/internal/tui/styles"
)

// ConfirmDialog is a modal yes/no prompt. The recorder opens one before a
// reset wipes recorded takes.
type ConfirmDialog struct {
	Title     string
	Message   string
	YesLabel  string
	NoLabel   string
	Confirmed bool
	Done      bool
	selected  int // 0 = yes, 1 = no
}

// NewConfirmDialog creates a dialog with "No" preselected.
func NewConfirmDialog(title, message string) ConfirmDialog {
	return ConfirmDialog{
		Title:    title,
		Message:  message,
		YesLabel: "Yes",
		NoLabel:  "No",
		selected: 1,
	}
}

// Update handles the dialog keys. Done is set once the user has answered.
func (d ConfirmDialog) Update(msg tea.Msg) (ConfirmDialog, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch key.String() {
	case "y", "Y":
		d.Confirmed, d.Done = true, true
	case "n", "N", "esc":
		d.Confirmed, d.Done = false, true
	case "enter":
		d.Confirmed, d.Done = d.selected == 0, true
	case "left", "h":
		d.selected = 0
	case "right", "l":
		d.selected = 1
	case "tab", "shift+tab":
		d.selected = 1 - d.selected
	}
	return d, nil
}

// View returns the styled dialog.
func (d ConfirmDialog) View() string {
	title := lipgloss.NewStyle().
		Foreground(styles.AccentRecord).
		Bold(true).
		Render(d.Title)

	message := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(d.Message)

	selectedStyle := lipgloss.NewStyle().
		Background(styles.AccentPrimary).
		Foreground(styles.BgDeep).
		Bold(true).
		Padding(0, 1)

	unselectedStyle := lipgloss.NewStyle().
		Background(styles.BgSurface).
		Foreground(styles.TextSecondary).
		Padding(0, 1)

	yesStyle, noStyle := unselectedStyle, selectedStyle
	if d.selected == 0 {
		yesStyle, noStyle = selectedStyle, unselectedStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render(d.YesLabel), "  ", noStyle.Render(d.NoLabel))

	hint := lipgloss.NewStyle().Foreground(styles.TextMuted).
		Render("y/n or ←→ + enter")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title, "", message, "", buttons, "", hint,
	)

	return lipgloss.NewStyle().
		Background(styles.BgPanel).
		Border(styles.DialogBorder).
		BorderForeground(styles.AccentRecord).
		Padding(1, 2).
		Width(44).
		Align(lipgloss.Center).
		Render(content)
}
