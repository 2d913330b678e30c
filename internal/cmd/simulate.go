package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Dallionking/segrec/internal/script"
	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/components"
	"github.com/Dallionking/segrec/internal/tui/styles"
	"github.com/Dallionking/segrec/internal/tui/views"
)

var (
	simWidth     int
	simPace      time.Duration
	simFinalOnly bool
	simPrint     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [script.yaml]",
	Short: "Replay a recording script without the TUI",
	Long: `Replay a YAML recording script against a fresh timeline and print the
segment bar after every operation.

Without a script the built-in demo runs: one pre-recorded second, a take
that is discarded, then a take that is paused, resumed and saved.

Flags:
  --width   bar width in columns
  --pace    sleep between ticks, e.g. 100ms, to watch it in real time
  --final   print only the final bar
  --print   print the script as YAML and exit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closer, err := newLogger()
		if err != nil {
			return err
		}
		defer closer.Close()

		cfg, err := loadConfig(logger)
		if err != nil {
			return err
		}

		s := script.Default()
		if len(args) == 1 {
			s, err = script.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("loading script: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if simPrint {
			data, err := s.Marshal()
			if err != nil {
				return fmt.Errorf("encoding script: %w", err)
			}
			_, err = out.Write(data)
			return err
		}

		tl := timeline.New(
			timeline.WithMaxDuration(cfg.MaxDuration),
			timeline.WithLogger(logger),
		)
		runner := script.NewRunner(tl, logger)
		runner.Pace = simPace

		bar := components.SegmentBar{
			Width:          simWidth,
			SeparatorWidth: cfg.Style.SeparatorWidth,
			BlinkOn:        true,
			Colors:         components.NewSegmentColors(cfg.Style.SegmentColor, cfg.Style.SeparatorColor, cfg.Style.TrackColor),
		}

		name := s.Name
		if name == "" {
			name = "script"
		}
		fmt.Fprintln(out, styles.Title.Render(name)+" "+styles.Dim(fmt.Sprintf("(%d steps)", len(s.Steps))))

		var last script.Frame
		err = runner.Run(cmd.Context(), s, func(f script.Frame) {
			last = f
			if !simFinalOnly {
				printFrame(out, bar, f)
			}
		})
		if err != nil {
			return fmt.Errorf("running script: %w", err)
		}

		if simFinalOnly {
			printFrame(out, bar, last)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.Divider(simWidth))
		fmt.Fprintln(out, views.RenderSnapshot(tl, cfg, simWidth))
		return nil
	},
}

func printFrame(out io.Writer, bar components.SegmentBar, f script.Frame) {
	bar.Spans = f.Spans

	op := fmt.Sprintf("%-7s", f.Op)
	if f.Applied {
		op = styles.Cyan(op)
	} else {
		op = styles.Dim(op)
	}

	step := "  -"
	if f.Step >= 0 {
		step = fmt.Sprintf("%3d", f.Step+1)
	}

	state := string(f.State)
	if state == "" {
		state = "none"
	}
	badge := lipgloss.NewStyle().Foreground(styles.StateColor(string(f.State))).Render(fmt.Sprintf("%-6s", state))

	fmt.Fprintf(out, "%s %s %s %s %s\n",
		styles.Dim(step), op, bar.Render(), badge,
		styles.Value.Render(styles.Seconds(f.Total)))
}

func init() {
	simulateCmd.Flags().IntVar(&simWidth, "width", 40, "bar width in columns")
	simulateCmd.Flags().DurationVar(&simPace, "pace", 0, "sleep between ticks")
	simulateCmd.Flags().BoolVar(&simFinalOnly, "final", false, "print only the final bar")
	simulateCmd.Flags().BoolVar(&simPrint, "print", false, "print the script as YAML and exit")

	rootCmd.AddCommand(simulateCmd)
}
