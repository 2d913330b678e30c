package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dallionking/segrec/internal/config"
	"github.com/Dallionking/segrec/internal/logging"
	"github.com/Dallionking/segrec/internal/tui/styles"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	logFile string

	v = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "segrec",
	Short: "Segmented recording timeline",
	Long: `segrec -- a segmented recording progress bar for the terminal

Record takes against a fixed time budget, pause and resume them, save or
discard them, and watch the segmented bar fill up. Scripts replay a
recording session without a terminal UI.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(styles.Logo())
		fmt.Println()
		fmt.Println(styles.Dim("Run 'segrec --help' for available commands"))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is segrec.json/.yaml in . or a parent)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
}

func initConfig() {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return
	}
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	if path, err := config.FindConfigFile(wd); err == nil {
		v.SetConfigFile(path)
	}
}

// loadConfig reads the config file chosen in initConfig, if any, and
// decodes it over the defaults. An explicit --config that cannot be read
// is an error; a missing default file is not.
func loadConfig(logger hclog.Logger) (*config.Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			logger.Error("invalid config", "field", e.Field, "error", e.Message)
		}
		return nil, fmt.Errorf("invalid config: %w", errs[0])
	}
	for _, w := range config.Warnings(cfg) {
		logger.Warn("config", "field", w.Field, "warning", w.Message)
	}

	logger.Debug("config loaded", "path", v.ConfigFileUsed(), "max", cfg.MaxDuration)
	return cfg, nil
}

// newLogger builds the logger for plain (non full-screen) commands.
func newLogger() (hclog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		Verbose: verbose,
		NoColor: noColor,
		File:    logFile,
	})
}
