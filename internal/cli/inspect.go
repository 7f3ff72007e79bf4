package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/aretw0/markov/pkg/table"
)

// InspectOptions are the per-invocation settings of the inspect command.
type InspectOptions struct {
	// Number selects one number's transitions. Zero prints a table summary.
	Number int
	// Level, when set, prints only the most likely successor at that level.
	Level  string
	Format string
	// Highlight marks numbers in mermaid output.
	Highlight []int
}

// RunInspect builds a model and describes its transition table.
func RunInspect(ctx context.Context, cfg *config.Config, opts InspectOptions, out io.Writer) error {
	logger := createLogger(cfg.Log.Level)
	model, err := createModel(ctx, cfg, logger, createDebugHooks(logger))
	if err != nil {
		return err
	}

	p := tui.NewPrinter(out, tui.IsTerminal(out) && opts.Format != FormatPlain)
	if model.Report().Skipped > 0 {
		p.Warn("%d invalid records skipped", model.Report().Skipped)
	}

	if opts.Number == 0 {
		if opts.Format == FormatJSON {
			return writeJSON(out, map[string]any{
				"domain":             model.Domain(),
				"draws":              model.Table().Draws(),
				"skipped":            model.Report().Skipped,
				"direct_states":      model.Table().Direct.Len(),
				"position_states":    model.Table().Position.Len(),
				"combination_states": model.Table().Combination.Len(),
				"pool":               model.Pool(),
			})
		}
		return p.Markdown(tui.SummaryMarkdown(model.Domain(), model.Table(), model.Report(), model.Pool()))
	}

	if !model.Domain().Contains(opts.Number) {
		return fmt.Errorf("number %d outside 1-%d", opts.Number, model.Domain().Max)
	}

	if opts.Level != "" {
		level, err := table.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		next, ok := model.MostLikelyNext(opts.Number, level)
		if opts.Format == FormatJSON {
			resp := map[string]any{"number": opts.Number, "level": level, "next": nil}
			if ok {
				resp["next"] = next
			}
			return writeJSON(out, resp)
		}
		if !ok {
			_, err := fmt.Fprintf(out, "%d has no %s successor\n", opts.Number, level)
			return err
		}
		_, err = fmt.Fprintln(out, next)
		return err
	}

	snap := model.Transitions(opts.Number)
	switch opts.Format {
	case FormatJSON:
		return writeJSON(out, snap)
	case FormatMermaid:
		_, err := io.WriteString(out, graph.GenerateMermaid(snap, &graph.Overlay{Selected: opts.Highlight}))
		return err
	}
	return p.Markdown(tui.SnapshotMarkdown(snap))
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
