package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jnpd11/grade6-science-prep/internal/config"
	"github.com/jnpd11/grade6-science-prep/internal/deepseek"
	"github.com/jnpd11/grade6-science-prep/internal/generate"
	"github.com/jnpd11/grade6-science-prep/internal/lesson"
	"github.com/jnpd11/grade6-science-prep/internal/logging"
	"github.com/jnpd11/grade6-science-prep/internal/outline"
	"github.com/jnpd11/grade6-science-prep/internal/prompt"
	"github.com/jnpd11/grade6-science-prep/internal/tui"
)

var (
	flagOutline    string
	flagOut        string
	flagDryRun     bool
	flagNoImages   bool
	flagNoKeyFiles bool
	flagTUI        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate lesson files from the outline",
	Long: `Read the outline JSON and generate one Markdown lesson file per entry by
calling the DeepSeek chat-completions API. Entries are processed one at a
time in outline order; the first failure stops the run and leaves the files
written so far in place.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagOutline, "outline", "", "outline JSON path (overrides config)")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "output directory (overrides config)")
	generateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print prompts without calling the API or writing files")
	generateCmd.Flags().BoolVar(&flagNoImages, "no-images", false, "skip image keywords and the front-matter image field")
	generateCmd.Flags().BoolVar(&flagNoKeyFiles, "no-key-files", false, "ignore .deepseek_key and .env credential fallbacks")
	generateCmd.Flags().BoolVar(&flagTUI, "tui", false, "show interactive progress")
}

// applyGenerateFlags layers command-line overrides onto the loaded config.
func applyGenerateFlags(cfg *config.Config) {
	if flagOutline != "" {
		cfg.Outline = flagOutline
	}
	if flagOut != "" {
		cfg.OutputDir = flagOut
	}
	if flagNoImages {
		cfg.Images = false
	}
	if flagNoKeyFiles {
		cfg.KeyFiles = false
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyGenerateFlags(cfg)

	entries, err := outline.Load(cfg.Outline)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Outline is empty; nothing to generate.")
		return nil
	}

	if flagDryRun {
		return dryRun(cfg, entries)
	}

	key, err := config.ResolveAPIKey(cfg)
	if err != nil {
		return err
	}

	logger := newLogger()
	client := deepseek.NewClient(key,
		deepseek.WithBaseURL(cfg.BaseURL),
		deepseek.WithModel(cfg.Model),
		deepseek.WithTimeout(cfg.GetTimeout()),
		deepseek.WithLogger(logger),
	)
	runner := &generate.Runner{
		Client: client,
		OutDir: cfg.OutputDir,
		Images: cfg.Images,
		Logger: logger,
	}

	if flagTUI {
		return runWithTUI(runner, entries)
	}
	return runPlain(runner, entries)
}

func runPlain(runner *generate.Runner, entries []outline.Entry) error {
	runner.Progress = func(ev generate.Event) {
		if ev.Path == "" {
			fmt.Printf("[%d/%d] %02d %s ...\n", ev.Index+1, ev.Total, ev.Order, ev.Title)
		} else {
			fmt.Printf("        wrote %s\n", ev.Path)
		}
	}

	if err := runner.Run(context.Background(), entries); err != nil {
		return err
	}
	fmt.Printf("Done: %d lesson(s) written to %s.\n", len(entries), runner.OutDir)
	return nil
}

func runWithTUI(runner *generate.Runner, entries []outline.Entry) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(tui.New(len(entries)))
	runner.Logger = logging.NewSilent()
	runner.Progress = func(ev generate.Event) {
		if ev.Path == "" {
			p.Send(tui.EntryStartedMsg{Index: ev.Index, Total: ev.Total, Order: ev.Order, Title: ev.Title})
		} else {
			p.Send(tui.EntryWrittenMsg{Index: ev.Index, Path: ev.Path})
		}
	}

	done := make(chan error, 1)
	go func() {
		err := runner.Run(ctx, entries)
		done <- err
		p.Send(tui.RunDoneMsg{Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("progress ui: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Aborted() {
		cancel()
		<-done
		return fmt.Errorf("generation interrupted")
	}
	return <-done
}

func dryRun(cfg *config.Config, entries []outline.Entry) error {
	for i, e := range entries {
		name := lesson.Document{Title: e.Title, Order: e.Order}.Filename()
		fmt.Printf("=== %d/%d %s\n", i+1, len(entries), filepath.Join(cfg.OutputDir, name))
		fmt.Println(prompt.Build(e, cfg.Images))
	}
	fmt.Printf("Dry run: %d lesson(s), no files written.\n", len(entries))
	return nil
}
