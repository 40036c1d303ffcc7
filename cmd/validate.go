package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jnpd11/grade6-science-prep/internal/config"
	"github.com/jnpd11/grade6-science-prep/internal/schema"
)

var flagLessonsDir string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check lesson files against the front-matter schema",
	Long: `Walk the output directory and validate every Markdown file's front matter
against the lesson schema the site builds from (required title and order,
optional unit, summary, keywords, minutes, image).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		dir := cfg.OutputDir
		if flagLessonsDir != "" {
			dir = flagLessonsDir
		}

		issues, checked, err := schema.CheckDir(dir)
		if err != nil {
			return err
		}

		for _, issue := range issues {
			fmt.Printf("  [fail] %s: %v\n", issue.Path, issue.Err)
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d of %d lesson file(s) failed validation", len(issues), checked)
		}
		fmt.Printf("All %d lesson file(s) pass.\n", checked)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&flagLessonsDir, "dir", "", "lessons directory (overrides config output_dir)")
}
