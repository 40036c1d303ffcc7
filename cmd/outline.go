package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jnpd11/grade6-science-prep/internal/config"
	"github.com/jnpd11/grade6-science-prep/internal/lesson"
	"github.com/jnpd11/grade6-science-prep/internal/outline"
)

var flagOutlinePath string

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "List the lessons the outline would generate",
	Long:  "Print each outline entry with its unit, keywords, and target filename so the input can be checked before spending API calls.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		path := cfg.Outline
		if flagOutlinePath != "" {
			path = flagOutlinePath
		}

		entries, err := outline.Load(path)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Outline is empty.")
			return nil
		}

		fmt.Printf("Outline: %s (%d lessons)\n\n", path, len(entries))
		for _, e := range entries {
			name := lesson.Document{Title: e.Title, Order: e.Order}.Filename()
			fmt.Printf("%02d  %s", e.Order, e.Title)
			if e.Unit != "" {
				fmt.Printf("  [%s]", e.Unit)
			}
			if len(e.Keywords) > 0 {
				fmt.Printf("  (%s)", strings.Join(e.Keywords, ", "))
			}
			fmt.Printf("  -> %s\n", name)
		}
		return nil
	},
}

func init() {
	outlineCmd.Flags().StringVar(&flagOutlinePath, "outline", "", "outline JSON path (overrides config)")
}
