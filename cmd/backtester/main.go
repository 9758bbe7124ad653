package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "backtester",
		Short:        "Concentrated liquidity strategy backtester",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a pool's swap history into a JSONL file",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("rpc", "", "RPC URL")
	fetchCmd.Flags().String("pool", "", "V3 pool address")
	fetchCmd.Flags().Uint64("from", 0, "start block (inclusive)")
	fetchCmd.Flags().Uint64("to", 0, "end block (inclusive), 0 means latest")
	fetchCmd.Flags().Uint64("batch-size", 2000, "blocks per batch")
	fetchCmd.Flags().String("out", "./data/swaps.jsonl", "output JSONL path")
	fetchCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	fetchCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	fetchCmd.Flags().Int("max-retries", 5, "maximum retry attempts")
	fetchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the strategy over a fetched swap history",
		RunE:  runBacktest,
	}

	runCmd.Flags().String("swaps", "./data/swaps.jsonl", "input swaps JSONL")
	runCmd.Flags().Duration("interval", 5*time.Minute, "bar interval")
	runCmd.Flags().String("start", "", "window start (unix seconds or RFC3339)")
	runCmd.Flags().String("end", "", "window end (unix seconds or RFC3339)")
	runCmd.Flags().String("out", "", "optional output JSONL path for per-step states")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for run persistence")
	runCmd.Flags().String("run-id", "", "run identifier, generated when empty")
	runCmd.Flags().Int("decimals-x", 0, "token X decimals")
	runCmd.Flags().Int("decimals-y", 0, "token Y decimals")
	runCmd.Flags().Int("tick-spacing", 0, "pool tick spacing")
	runCmd.Flags().Float64("start-value", 1.0, "starting portfolio value in Y units")
	runCmd.Flags().Float64("delta-threshold", 0.05, "hedge mismatch tolerance")
	runCmd.Flags().Int("base-lower-bound", 0, "base range width below the pool tick")
	runCmd.Flags().Int("base-upper-bound", 0, "base range width above the pool tick")
	runCmd.Flags().Int("base-lower-trigger", 0, "base trigger offset below the lower bound")
	runCmd.Flags().Int("base-upper-trigger", 0, "base trigger offset above the upper bound")
	runCmd.Flags().Int("limit-bound", 0, "limit range width")
	runCmd.Flags().Int("limit-trigger", 0, "limit trigger offset")
	runCmd.Flags().Float64("lending-apy", 0, "lending APY")
	runCmd.Flags().Float64("borrowing-apy", 0, "borrowing APY")
	runCmd.Flags().Float64("liquidation-threshold", 0.8, "liquidation threshold for the health factor")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
