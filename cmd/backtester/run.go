package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rangehedge/internal/backtest"
	"rangehedge/internal/config"
	"rangehedge/internal/marketdata"
	"rangehedge/internal/storage"
	"rangehedge/internal/storage/postgres"
)

func runBacktest(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBacktest(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	start, err := config.ParseTimestamp(cfg.StartDate)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}
	end, err := config.ParseTimestamp(cfg.EndDate)
	if err != nil {
		return fmt.Errorf("parse end: %w", err)
	}

	params := cfg.Params()
	engine, err := backtest.NewEngine(params, logger)
	if err != nil {
		return err
	}

	swaps, err := marketdata.ReadSwaps(cfg.SwapsPath, logger)
	if err != nil {
		return err
	}

	bars, err := marketdata.Resample(swaps, int64(cfg.Interval/time.Second), start, end)
	if err != nil {
		return fmt.Errorf("resample: %w", err)
	}

	states, err := engine.Run(bars, swaps)
	if err != nil {
		return err
	}

	summary := backtest.Summarize(states, params.StepsPerYear)
	logger.Info("summary",
		zap.Int("steps", summary.Steps),
		zap.Int("rebalances", summary.Rebalances),
		zap.Float64("final_value", summary.FinalValue),
		zap.Float64("annualized_return", summary.AnnualizedReturn),
		zap.Float64("max_drawdown", summary.MaxDrawdown),
		zap.Float64("calmar", summary.Calmar),
		zap.Float64("sharpe", summary.Sharpe),
	)

	if cfg.Out != "" {
		if err := storage.WriteStates(cfg.Out, states); err != nil {
			return err
		}
		logger.Info("states written", zap.String("out", cfg.Out), zap.Int("states", len(states)))
	}

	if cfg.PGDSN != "" {
		runID := cfg.RunID
		if runID == "" {
			runID = "run-" + time.Now().UTC().Format("20060102T150405Z")
		}

		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal params: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.UpsertRun(ctx, runID, paramsJSON, summary); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		if err := store.UpsertSteps(ctx, runID, states); err != nil {
			return fmt.Errorf("persist steps: %w", err)
		}
		logger.Info("run persisted", zap.String("run_id", runID), zap.Int("steps", len(states)))
	}

	return nil
}
