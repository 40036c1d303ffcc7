package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jnpd11/grade6-science-prep/internal/logging"
	"github.com/jnpd11/grade6-science-prep/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "prep",
	Short: "Batch-generate preview lessons for a grade-6 science site",
	Long: `prep turns a JSON lesson outline into Markdown lesson files with YAML
front matter, one DeepSeek chat completion per lesson, processed strictly
in outline order.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	versionCmd.Flags().BoolVar(&flagCheckUpdate, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(versionCmd)
}

var flagCheckUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("prep %s (commit: %s, built: %s)\n", version, commit, date)
		if flagCheckUpdate {
			if r := update.Check(cmd.Context(), version); r != nil {
				fmt.Printf("A newer release is available: %s\n", r.LatestVersion)
			}
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func newLogger() *logging.Logger {
	if flagVerbose {
		return logging.New("debug")
	}
	return logging.New("warn")
}
