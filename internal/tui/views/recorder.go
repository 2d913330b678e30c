package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"

	"github.com/Dallionking/segrec/internal/config"
	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/components"
	"github.com/Dallionking/segrec/internal/tui/models"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

// RunRecorder launches the full-screen recorder on tl and blocks until the
// user quits or ctx is cancelled. configs may be nil.
func RunRecorder(
	ctx context.Context,
	tl *timeline.Timeline,
	cfg *config.Config,
	configs <-chan *config.Config,
	logger hclog.Logger,
) error {
	model := models.NewRecorderModel(tl, cfg, configs, logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running recorder: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// RenderSnapshot -- non-interactive single-frame render
// ---------------------------------------------------------------------------

// RenderSnapshot renders the timeline once: the segment bar, the totals and
// the segment list. Suitable for printing after the recorder exits or after
// a script replay.
func RenderSnapshot(tl *timeline.Timeline, cfg *config.Config, width int) string {
	if width < 10 {
		width = 40
	}
	if cfg == nil {
		cfg = config.Default()
	}

	bar := components.SegmentBar{
		Spans:          tl.Geometry(),
		Width:          width,
		SeparatorWidth: cfg.Style.SeparatorWidth,
		BlinkOn:        true,
		Colors:         components.NewSegmentColors(cfg.Style.SegmentColor, cfg.Style.SeparatorColor, cfg.Style.TrackColor),
	}

	totals := fmt.Sprintf("%s %s  %s %s  %s %s",
		styles.Label.Render("SEGMENTS"), styles.Value.Render(fmt.Sprintf("%d", tl.SegmentsCount())),
		styles.Label.Render("RECORDED"), styles.Value.Render(styles.Seconds(tl.CurrentDuration())+" / "+styles.Seconds(tl.MaxDuration())),
		styles.Label.Render("REMAINING"), styles.Value.Render(styles.Seconds(tl.Remaining())),
	)

	lines := []string{bar.Render(), totals}

	segs := tl.Segments()
	if len(segs) > 1 {
		durations := make([]float64, len(segs))
		for i, s := range segs {
			durations[i] = s.Duration
		}
		lines = append(lines, styles.Label.Render("TAKES")+"    "+styles.Sparkline(durations, min(len(durations)*2, width)))
	}
	lines = append(lines, components.SegmentList{
		Segments: segs,
		Current:  tl.CurrentIndex(),
		Width:    width + 20,
	}.Render())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
