package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/evaluate"
)

// Output formats shared by the commands.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatPlain    = "plain"
	FormatMermaid  = "mermaid"
)

// GenerateOptions are the per-invocation settings of the generate command.
type GenerateOptions struct {
	Count int
	// Size defaults to the domain's draw size.
	Size int
	// Seed grows a single combination from these numbers instead of a batch.
	Seed []int
	// Save stores the batch in the configured combination store.
	Save    bool
	BatchID string
	Format  string
	// OveruseThreshold warns about numbers used in more combinations than this.
	// Zero disables the warning.
	OveruseThreshold int
}

// RunGenerate builds a model from the configured history and writes new
// combinations to out.
func RunGenerate(ctx context.Context, cfg *config.Config, opts GenerateOptions, out io.Writer) error {
	logger := createLogger(cfg.Log.Level)
	model, err := createModel(ctx, cfg, logger, createDebugHooks(logger))
	if err != nil {
		return err
	}

	size := opts.Size
	if size == 0 {
		size = model.Domain().DrawSize
	}

	var batch domain.Batch
	if len(opts.Seed) > 0 {
		c, err := model.Generate(ctx, size, opts.Seed...)
		if err != nil {
			return err
		}
		batch = domain.Batch{
			CreatedAt:    time.Now().UTC(),
			Domain:       model.Domain(),
			TargetSize:   size,
			RandSeed:     model.RandSeed(),
			Combinations: []domain.Combination{c},
		}
	} else {
		batch, err = model.NewBatch(ctx, "", opts.Count, size)
		if err != nil {
			return err
		}
	}

	if opts.Save {
		batch.ID = opts.BatchID
		if batch.ID == "" {
			batch.ID = strconv.FormatInt(batch.CreatedAt.UnixNano(), 36)
		}
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		if err := store.Save(ctx, batch.ID, &batch); err != nil {
			return fmt.Errorf("failed to save batch: %w", err)
		}
		logger.Info("saved batch", "batch", batch.ID, "backend", cfg.Store.Backend)
	}

	return writeBatch(out, batch, opts)
}

func writeBatch(out io.Writer, batch domain.Batch, opts GenerateOptions) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(out, batch)
	case FormatPlain:
		for _, c := range batch.Combinations {
			if _, err := fmt.Fprintln(out, c); err != nil {
				return err
			}
		}
		return nil
	}

	p := tui.NewPrinter(out, tui.IsTerminal(out))
	if err := p.Markdown(tui.CombinationsMarkdown(batch)); err != nil {
		return err
	}
	if opts.OveruseThreshold > 0 {
		overused := evaluate.Overused(batch.Combinations, opts.OveruseThreshold)
		for _, n := range slices.Sorted(maps.Keys(overused)) {
			p.Warn("%d appears in %d of %d combinations", n, overused[n], len(batch.Combinations))
		}
	}
	return nil
}
