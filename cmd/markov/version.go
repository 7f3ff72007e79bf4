package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of markov",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if tui.IsTerminal(out) {
			tui.PrintBanner(out, strings.TrimSpace(markov.Version))
			return
		}
		fmt.Fprintf(out, "markov version %s\n", strings.TrimSpace(markov.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
