package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [number]",
	Short: "Describe the transition table",
	Long: `Without arguments, summarizes the transition table built from the history.
With a number, lists its direct, position and combination successors.`,
	Example: `  markov inspect --history draws.yaml
  markov inspect 23 --history draws.yaml --level position
  markov inspect 23 --history draws.yaml --format mermaid --highlight 5,12,23`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.InspectOptions{}
		if len(args) == 1 {
			opts.Number, err = strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}
		}
		opts.Level, _ = cmd.Flags().GetString("level")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Highlight, _ = cmd.Flags().GetIntSlice("highlight")

		return cli.RunInspect(cmd.Context(), cfg, opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("level", "", "Print only the most likely successor at this level: direct or position")
	inspectCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown, json, plain or mermaid")
	inspectCmd.Flags().IntSlice("highlight", nil, "Numbers to highlight in mermaid output")
}
