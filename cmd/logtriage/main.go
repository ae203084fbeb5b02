package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidemill/logtriage/internal/config"
	"github.com/tidemill/logtriage/internal/logging"
	"github.com/tidemill/logtriage/internal/pipeline"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	flagConfig    string
	flagInput     string
	flagOutputDir string
	flagWorkers   int
	flagLogLevel  string
	flagWebhook   string
)

var rootCmd = &cobra.Command{
	Use:   "logtriage [input.csv] [output-dir] [workers]",
	Short: "Rule-based log fault triage",
	Long: `Logtriage classifies log lines into fault categories using fixed
keyword rules, processes the batch across a parallel worker pool, and
writes a performance report (JSON), per-record results (CSV), and a
console summary.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		// Flags and positional arguments override file/env config.
		// Positionals mirror the classic invocation: input, output
		// directory, worker count.
		if len(args) > 0 {
			cfg.Input = args[0]
		}
		if len(args) > 1 {
			cfg.OutputDir = args[1]
		}
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid worker count %q: %w", args[2], err)
			}
			cfg.Workers = n
		}
		if flagInput != "" {
			cfg.Input = flagInput
		}
		if flagOutputDir != "" {
			cfg.OutputDir = flagOutputDir
		}
		if flagWorkers > 0 {
			cfg.Workers = flagWorkers
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}
		if flagWebhook != "" {
			cfg.WebhookURL = flagWebhook
		}

		if cfg.Input == "" {
			return errors.New("no input file given (positional argument, --input, or LOGTRIAGE_INPUT)")
		}

		cleanup := logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.File)
		defer cleanup()

		return pipeline.Run(cmd.Context(), cfg)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to YAML config file")
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "input CSV file")
	rootCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "directory for report files")
	rootCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "parallel worker count (default: number of CPUs)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagWebhook, "webhook", "", "URL to POST the run summary to")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
