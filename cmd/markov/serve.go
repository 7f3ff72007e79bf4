package main

import (
	"fmt"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Builds the model once and serves it as a JSON API, with Prometheus
metrics on /metrics and stored batches on /batches.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if err := cli.RunServe(ctx, cfg, cli.ServeOptions{Version: markov.Version}); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "stopped by %v\n", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
}
