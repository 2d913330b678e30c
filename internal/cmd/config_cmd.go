package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dallionking/segrec/internal/config"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

var configInitForce bool

// --- config (parent) ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `View and manage the segrec configuration.

When run without subcommands, displays the effective configuration: the
built-in defaults, overridden by the config file and SEGREC_* variables.

Subcommands:
  validate   Check a config file
  init       Write a config file with the defaults`,
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

		printConfig(cmd.OutOrStdout(), cfg, v.ConfigFileUsed())
		return nil
	},
}

func printConfig(out io.Writer, cfg *config.Config, path string) {
	source := "built-in defaults"
	if path != "" {
		source = styles.TruncateWithEllipsis(path, 48)
	}

	initial := make([]string, len(cfg.InitialSegments))
	for i, d := range cfg.InitialSegments {
		initial[i] = styles.Seconds(d)
	}
	if len(initial) == 0 {
		initial = []string{"none"}
	}

	row := func(label, value string) {
		fmt.Fprintln(out, styles.Label.Render(fmt.Sprintf("%-10s", label))+" "+styles.Value.Render(value))
	}

	fmt.Fprintln(out, styles.Title.Render("Configuration"))
	fmt.Fprintln(out)
	row("SOURCE", source)
	row("MAX", styles.Seconds(cfg.MaxDuration))
	row("INITIAL", strings.Join(initial, ", "))
	row("TICK", cfg.TickInterval().String())
	row("BLINK", cfg.BlinkDuration().String())
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Divider(50))
	fmt.Fprintln(out)

	fmt.Fprintln(out, styles.Subtitle.Render("Style"))
	row("  SEGMENT", cfg.Style.SegmentColor)
	row("  DIVIDER", cfg.Style.SeparatorColor)
	row("  TRACK", cfg.Style.TrackColor)
	row("  DIV WIDTH", fmt.Sprintf("%d", cfg.Style.SeparatorWidth))
	barWidth := "terminal"
	if cfg.Style.BarWidth > 0 {
		barWidth = fmt.Sprintf("%d", cfg.Style.BarWidth)
	}
	row("  BAR WIDTH", barWidth)
}

// --- config validate ---

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := v.ConfigFileUsed()
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("no config file found: %w", config.ErrNotFound)
		}

		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		errs := config.Validate(cfg)
		for _, e := range errs {
			fmt.Fprintln(out, styles.StatusBadge("error")+" "+e.Error())
		}
		for _, w := range config.Warnings(cfg) {
			fmt.Fprintln(out, styles.StatusBadge("warn")+" "+w.Error())
		}
		if len(errs) > 0 {
			return fmt.Errorf("%s: %d validation errors", path, len(errs))
		}

		fmt.Fprintln(out, styles.StatusBadge("ok")+" "+styles.Dim(path))
		return nil
	},
}

// --- config init ---

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with the defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileNames[0]
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}

		if err := config.Save(config.Default(), path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), styles.Green("Wrote")+" "+styles.Value.Render(path))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
