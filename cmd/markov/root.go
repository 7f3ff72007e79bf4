package main

import (
	"fmt"
	"os"

	"github.com/aretw0/markov/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "markov",
	Short: "markov builds transition-frequency models from historical draws",
	Long: `markov reads a history of numeric draws, counts direct, position and
combination transitions between numbers, and grows new combinations from them.
It describes historical co-occurrence only and makes no prediction.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML config file (MARKOV_* variables override it)")
	pf.String("history", "", "History file (.yaml, .yml or .json)")
	pf.String("domain", "", "Domain preset: euromillions or french_loto")
	pf.Int("max", 0, "Override the domain's largest number")
	pf.Int("draw-size", 0, "Override the domain's numbers per draw")
	pf.Uint64("rand-seed", 0, "Seed for reproducible output (0 picks one at random)")
	pf.Int("workers", 0, "Combinations generated concurrently")
	pf.Int("pool-size", 0, "Top-ranked numbers cycled through as batch seeds")
	pf.Bool("skip-invalid", false, "Skip malformed history records instead of failing")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads the config file (if any) and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("history") {
		cfg.History.Path, _ = flags.GetString("history")
	}
	if flags.Changed("domain") {
		cfg.Domain.Preset, _ = flags.GetString("domain")
	}
	if flags.Changed("max") {
		cfg.Domain.Max, _ = flags.GetInt("max")
	}
	if flags.Changed("draw-size") {
		cfg.Domain.DrawSize, _ = flags.GetInt("draw-size")
	}
	if flags.Changed("rand-seed") {
		cfg.Model.RandSeed, _ = flags.GetUint64("rand-seed")
	}
	if flags.Changed("workers") {
		cfg.Model.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("pool-size") {
		cfg.Model.PoolSize, _ = flags.GetInt("pool-size")
	}
	if flags.Changed("skip-invalid") {
		cfg.Model.SkipInvalid, _ = flags.GetBool("skip-invalid")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
