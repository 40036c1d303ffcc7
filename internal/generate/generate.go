// Package generate drives the outline-to-lesson pipeline: one prompt, one
// completion, one file per entry, strictly in outline order.
package generate

import (
	"context"
	"fmt"

	"github.com/jnpd11/grade6-science-prep/internal/lesson"
	"github.com/jnpd11/grade6-science-prep/internal/logging"
	"github.com/jnpd11/grade6-science-prep/internal/outline"
	"github.com/jnpd11/grade6-science-prep/internal/prompt"
)

// CompletionClient is the one call the pipeline needs from the API client.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Event reports per-entry progress. Path is empty when work on the entry
// starts and carries the written file path once it is on disk.
type Event struct {
	Index int
	Total int
	Order int
	Title string
	Path  string
}

// Runner holds the pieces of one generation run.
type Runner struct {
	Client   CompletionClient
	OutDir   string
	Images   bool
	Logger   *logging.Logger
	Progress func(Event)
}

// Run processes entries one at a time, in the order given. Each entry's
// completion and file write finish before the next entry begins. The first
// failure aborts the whole run; files written for earlier entries stay in
// place.
func (r *Runner) Run(ctx context.Context, entries []outline.Entry) error {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewSilent()
	}

	for i, e := range entries {
		r.emit(Event{Index: i, Total: len(entries), Order: e.Order, Title: e.Title})
		logger.Info().
			Int("order", e.Order).
			Str("title", e.Title).
			Msgf("generating lesson %d/%d", i+1, len(entries))

		text, err := r.Client.Complete(ctx, prompt.System, prompt.Build(e, r.Images))
		if err != nil {
			return fmt.Errorf("lesson %02d %q: %w", e.Order, e.Title, err)
		}

		doc := lesson.FromCompletion(e, text, r.Images)
		path, err := doc.Write(r.OutDir)
		if err != nil {
			return fmt.Errorf("lesson %02d %q: %w", e.Order, e.Title, err)
		}

		logger.Info().Str("path", path).Msg("lesson written")
		r.emit(Event{Index: i, Total: len(entries), Order: e.Order, Title: e.Title, Path: path})
	}
	return nil
}

func (r *Runner) emit(ev Event) {
	if r.Progress != nil {
		r.Progress(ev)
	}
}
