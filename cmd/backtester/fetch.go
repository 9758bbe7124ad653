package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rangehedge/internal/chain"
	"rangehedge/internal/config"
	"rangehedge/internal/dex"
	"rangehedge/internal/ingest"
	"rangehedge/internal/storage"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if !common.IsHexAddress(cfg.Pool) {
		return fmt.Errorf("invalid pool address: %s", cfg.Pool)
	}
	pool := common.HexToAddress(cfg.Pool)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	meta, err := dex.FetchPoolMeta(ctx, chainClient, pool)
	if err != nil {
		return fmt.Errorf("pool metadata: %w", err)
	}
	decimals0, err := dex.FetchTokenDecimals(ctx, chainClient, meta.Token0)
	if err != nil {
		return fmt.Errorf("token0 decimals: %w", err)
	}
	decimals1, err := dex.FetchTokenDecimals(ctx, chainClient, meta.Token1)
	if err != nil {
		return fmt.Errorf("token1 decimals: %w", err)
	}

	decoder, err := dex.NewSwapDecoder(meta, decimals0, decimals1)
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}

	sink := storage.NewJsonlSwapStore(cfg.Out)

	runner := ingest.NewRunner(ingest.RunConfig{
		Pool:              pool,
		FromBlock:         cfg.FromBlock,
		ToBlock:           cfg.ToBlock,
		BatchSize:         cfg.BatchSize,
		CheckpointPath:    cfg.Checkpoint,
		CheckpointEnabled: cfg.CheckpointEnabled,
		MaxRetries:        cfg.MaxRetries,
		RetryBackoff:      cfg.RetryBackoff,
	}, chainClient, decoder, sink, logger)

	logger.Info("fetch start",
		zap.String("rpc", cfg.RPCURL),
		zap.String("pool", pool.Hex()),
		zap.Uint64("from", cfg.FromBlock),
		zap.Uint64("to", cfg.ToBlock),
		zap.Uint32("fee_ppm", meta.FeePPM),
		zap.Int32("tick_spacing", meta.TickSpacing),
		zap.Uint8("decimals0", decimals0),
		zap.Uint8("decimals1", decimals1),
		zap.String("out", cfg.Out),
	)

	return runner.Run(ctx)
}
