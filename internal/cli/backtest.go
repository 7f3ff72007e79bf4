package cli

import (
	"context"
	"io"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/aretw0/markov/pkg/draw"
	"github.com/aretw0/markov/pkg/evaluate"
)

// BacktestOptions are the per-invocation settings of the backtest command.
type BacktestOptions struct {
	TestRatio    float64
	Combinations int
	Size         int
	Top          int
	Format       string
}

// RunBacktest trains on the older part of the history and reports how many
// numbers the generated combinations share with each held-out draw.
func RunBacktest(ctx context.Context, cfg *config.Config, opts BacktestOptions, out io.Writer) error {
	logger := createLogger(cfg.Log.Level)
	records, err := loadHistory(ctx, cfg)
	if err != nil {
		return err
	}
	modelOpts, err := modelOptions(cfg, logger, createDebugHooks(logger))
	if err != nil {
		return err
	}
	d, err := cfg.ResolveDomain()
	if err != nil {
		return err
	}

	report, err := evaluate.Backtest(ctx, records, draw.NewNormalizer(d), markov.Trainer(modelOpts...), evaluate.Options{
		TestRatio:    opts.TestRatio,
		Combinations: opts.Combinations,
		TargetSize:   opts.Size,
		SkipInvalid:  cfg.Model.SkipInvalid,
	})
	if err != nil {
		return err
	}

	if opts.Format == FormatJSON {
		return writeJSON(out, report)
	}
	p := tui.NewPrinter(out, tui.IsTerminal(out) && opts.Format != FormatPlain)
	return p.Markdown(tui.BacktestMarkdown(report, opts.Top))
}
