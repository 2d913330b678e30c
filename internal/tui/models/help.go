package models

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Recording

The bar shows the whole recording budget. Every take is a **segment**;
saved segments end with a divider, the take in progress has none.

| Key | Action |
|-----|--------|
| space | start a take, pause it, resume it |
| c | save the current take |
| x, backspace | discard the current take |
| r | reset to the configured initial segments |
| tab | switch between recorder and events |
| ? | toggle this help |
| q | quit |

## States

- **recording**: the take grows on every tick
- **paused**: the divider blinks until you resume or save
- **saved**: the take is closed, space starts a new one
- **full**: the budget is used up, discard a take to record again

Edit the config file while recording to change colors or the budget;
the recorder picks the change up without restarting.
`

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n")
}
