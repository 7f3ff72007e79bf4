package main

import (
	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate combinations from the history",
	Long: `Builds the transition table from the history and grows combinations from it.
Without --seed, a batch is produced whose combinations start from the most
frequent numbers in turn.`,
	Example: `  markov generate --history draws.yaml -n 5
  markov generate --history draws.yaml --seed 7,19 --format json
  markov generate --config markov.yaml -n 10 --save --store redis`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("store") {
			cfg.Store.Backend, _ = cmd.Flags().GetString("store")
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		opts := cli.GenerateOptions{}
		opts.Count, _ = cmd.Flags().GetInt("count")
		opts.Size, _ = cmd.Flags().GetInt("size")
		opts.Seed, _ = cmd.Flags().GetIntSlice("seed")
		opts.Save, _ = cmd.Flags().GetBool("save")
		opts.BatchID, _ = cmd.Flags().GetString("id")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.OveruseThreshold, _ = cmd.Flags().GetInt("warn-overuse")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return cli.RunGenerate(ctx, cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("count", "n", 1, "Number of combinations")
	generateCmd.Flags().IntP("size", "s", 0, "Numbers per combination (default: the domain's draw size)")
	generateCmd.Flags().IntSlice("seed", nil, "Grow a single combination from these numbers")
	generateCmd.Flags().Bool("save", false, "Store the batch in the configured store")
	generateCmd.Flags().String("id", "", "Batch ID when saving (default: time based)")
	generateCmd.Flags().String("store", "", "Store backend: memory, file or redis")
	generateCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown, json or plain")
	generateCmd.Flags().Int("warn-overuse", 0, "Warn about numbers used in more than this many combinations")
}
