package cmd

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/segrec/internal/config"
	"github.com/Dallionking/segrec/internal/logging"
	"github.com/Dallionking/segrec/internal/timeline"
	"github.com/Dallionking/segrec/internal/tui/views"
)

var recordNoWatch bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Open the interactive recorder",
	Long: `Launch the full-screen recorder.

Space starts a take, pauses it and resumes it; c saves it, x discards it.
The take grows by one tick interval per tick while recording. The config
file is watched and colors or the max duration are applied live.

Flags:
  --max-duration  recording budget in seconds
  --tick          tick interval in milliseconds
  --initial       pre-recorded segments, e.g. --initial 1.5,0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Discard()
		if logFile != "" {
			l, closer, err := newLogger()
			if err != nil {
				return err
			}
			defer closer.Close()
			logger = l
		}

		cfg, err := loadConfig(logger)
		if err != nil {
			return err
		}
		applyRecordFlags(cmd, cfg)

		tl := timeline.New(
			timeline.WithMaxDuration(cfg.MaxDuration),
			timeline.WithLogger(logger),
		)
		tl.SetInitialSegments(cfg.InitialSegments)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		configs := watchConfig(ctx, logger, func() (*config.Config, error) {
			return reloadConfig(v, cmd)
		})

		if err := views.RunRecorder(ctx, tl, cfg, configs, logger); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), views.RenderSnapshot(tl, cfg, 40))
		return nil
	},
}

// watchConfig starts a config watcher when a config file is in use. The
// watcher stops when ctx is cancelled.
func watchConfig(ctx context.Context, logger hclog.Logger, load func() (*config.Config, error)) <-chan *config.Config {
	path := v.ConfigFileUsed()
	if path == "" || recordNoWatch {
		return nil
	}

	w, err := config.NewWatcher(path, logger, config.WithLoader(load))
	if err != nil {
		logger.Warn("config hot reload disabled", "error", err)
		return nil
	}
	go func() {
		<-ctx.Done()
		w.Close()
	}()
	return w.Watch(ctx)
}

// reloadConfig re-reads the config file through vp so flags bound to vp
// keep precedence over the file, then re-applies --initial.
func reloadConfig(vp *viper.Viper, cmd *cobra.Command) (*config.Config, error) {
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := config.Load(vp)
	if err != nil {
		return nil, err
	}
	applyRecordFlags(cmd, cfg)
	return cfg, nil
}

// applyRecordFlags copies flags that are not bound to viper into cfg.
func applyRecordFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("initial") {
		if initial, err := cmd.Flags().GetFloat64Slice("initial"); err == nil {
			cfg.InitialSegments = initial
		}
	}
}

// bindRecordFlags defines the timeline flags on cmd and binds the ones that
// mirror config keys to vp.
func bindRecordFlags(vp *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().Float64("max-duration", config.Default().MaxDuration, "recording budget in seconds")
	cmd.Flags().Int("tick", config.Default().TickIntervalMs, "tick interval in milliseconds")
	cmd.Flags().Float64Slice("initial", nil, "pre-recorded segment durations")

	_ = vp.BindPFlag("maxDuration", cmd.Flags().Lookup("max-duration"))
	_ = vp.BindPFlag("tickIntervalMs", cmd.Flags().Lookup("tick"))
}

func init() {
	bindRecordFlags(v, recordCmd)
	recordCmd.Flags().BoolVar(&recordNoWatch, "no-watch", false, "do not reload the config file on change")

	rootCmd.AddCommand(recordCmd)
}
