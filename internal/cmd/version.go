package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Dallionking/segrec/internal/tui/styles"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.Cyan(styles.CompactLogo)+"  "+styles.Value.Render("v"+Version))
		fmt.Fprintln(out)
		for _, row := range [][2]string{
			{"VERSION", Version},
			{"COMMIT", GitCommit},
			{"BUILT", BuildDate},
			{"GO", runtime.Version()},
			{"OS/ARCH", runtime.GOOS + "/" + runtime.GOARCH},
		} {
			fmt.Fprintln(out, styles.Label.Render(fmt.Sprintf("%-9s", row[0]))+" "+styles.Value.Render(row[1]))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
