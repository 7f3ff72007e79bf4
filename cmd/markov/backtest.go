package main

import (
	"github.com/aretw0/markov/internal/cli"
	"github.com/aretw0/markov/pkg/evaluate"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Measure generated combinations against recent draws",
	Long: `Holds out the most recent draws, trains on the rest, and counts how many
numbers the generated combinations share with each held-out draw.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.BacktestOptions{}
		opts.TestRatio, _ = cmd.Flags().GetFloat64("test-ratio")
		opts.Combinations, _ = cmd.Flags().GetInt("count")
		opts.Size, _ = cmd.Flags().GetInt("size")
		opts.Top, _ = cmd.Flags().GetInt("top")
		opts.Format, _ = cmd.Flags().GetString("format")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunBacktest(ctx, cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().Float64("test-ratio", evaluate.DefaultTestRatio, "Share of the most recent draws held out")
	backtestCmd.Flags().IntP("count", "n", 5, "Combinations generated from the training set")
	backtestCmd.Flags().IntP("size", "s", 0, "Numbers per combination (default: the domain's draw size)")
	backtestCmd.Flags().Int("top", 10, "Best held-out draws to list")
	backtestCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown, json or plain")
}
