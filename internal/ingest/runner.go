package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"rangehedge/internal/chain"
	"rangehedge/internal/dex"
	"rangehedge/internal/model"
	"rangehedge/internal/storage"
)

// RunConfig holds runtime settings for the swap fetcher.
type RunConfig struct {
	Pool              common.Address
	FromBlock         uint64
	ToBlock           uint64
	BatchSize         uint64
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Runner streams one pool's Swap logs from the chain, decodes them, and
// writes the records to a sink in block order.
type Runner struct {
	cfg        RunConfig
	chain      *chain.Client
	decoder    *dex.SwapDecoder
	sink       storage.SwapSink
	logger     *zap.Logger
	seen       map[string]struct{}
	checkpoint *CheckpointStore
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, chainClient *chain.Client, decoder *dex.SwapDecoder, sink storage.SwapSink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:        cfg,
		chain:      chainClient,
		decoder:    decoder,
		sink:       sink,
		logger:     logger,
		seen:       make(map[string]struct{}),
		checkpoint: NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
	}
}

// Run executes the fetch loop.
func (r *Runner) Run(ctx context.Context) error {
	if r.chain == nil {
		return fmt.Errorf("chain client is nil")
	}
	if r.decoder == nil {
		return fmt.Errorf("decoder is nil")
	}
	if r.sink == nil {
		return fmt.Errorf("sink is nil")
	}
	if r.cfg.BatchSize == 0 {
		return fmt.Errorf("batch size must be greater than zero")
	}
	if r.cfg.Pool == (common.Address{}) {
		return fmt.Errorf("pool address is required")
	}

	from := r.cfg.FromBlock
	to := r.cfg.ToBlock
	if to == 0 {
		latest, err := r.chain.LatestBlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("get latest block: %w", err)
		}
		to = latest
	}

	if r.checkpoint != nil {
		cp, ok, err := r.checkpoint.Load()
		if err != nil {
			return err
		}
		if ok && cp.LastBlock >= from {
			from = cp.LastBlock + 1
			r.logger.Info("resume from checkpoint", zap.Uint64("last_block", cp.LastBlock), zap.Uint64("from", from))
		}
	}

	if from > to {
		r.logger.Info("nothing to fetch", zap.Uint64("from", from), zap.Uint64("to", to))
		return nil
	}

	spans, err := splitBlocks(from, to, r.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, span := range spans {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.logger.Info("fetch swaps", zap.Uint64("from", span.From), zap.Uint64("to", span.To))

		logs, err := r.filterLogsWithRetry(ctx, span.From, span.To)
		if err != nil {
			return fmt.Errorf("filter logs: %w", err)
		}

		records := make([]model.SwapRecord, 0, len(logs))
		for _, log := range logs {
			if log.Removed || r.isDuplicate(log) {
				continue
			}

			ts, err := r.blockTimestampWithRetry(ctx, log.BlockNumber)
			if err != nil {
				return fmt.Errorf("block timestamp %d: %w", log.BlockNumber, err)
			}

			record, err := r.decoder.Decode(log, ts)
			if err != nil {
				r.logger.Warn("decode swap failed",
					zap.Uint64("block", log.BlockNumber),
					zap.String("tx", log.TxHash.Hex()),
					zap.Error(err),
				)
				continue
			}
			records = append(records, record)
		}

		if err := r.sink.PutSwapBatch(records); err != nil {
			return fmt.Errorf("store swaps: %w", err)
		}

		if r.checkpoint != nil {
			if err := r.checkpoint.Save(span.To); err != nil {
				return err
			}
		}

		r.logger.Info("batch complete", zap.Int("swaps", len(records)), zap.Uint64("from", span.From), zap.Uint64("to", span.To))
	}

	return nil
}

func (r *Runner) filterLogsWithRetry(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	var logs []types.Log
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		logs, err = r.chain.FilterPoolLogs(ctx, fromBlock, toBlock, r.cfg.Pool, r.decoder.Topic())
		if err != nil {
			r.logger.Warn("filter logs failed", zap.Error(err), zap.Uint64("from", fromBlock), zap.Uint64("to", toBlock))
		}
		return err
	})
	return logs, err
}

func (r *Runner) blockTimestampWithRetry(ctx context.Context, blockNumber uint64) (uint64, error) {
	var ts uint64
	err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		ts, err = r.chain.BlockTimestamp(ctx, blockNumber)
		if err != nil {
			r.logger.Warn("block timestamp fetch failed", zap.Error(err), zap.Uint64("block_number", blockNumber))
		}
		return err
	})
	return ts, err
}

func (r *Runner) isDuplicate(log types.Log) bool {
	id := fmt.Sprintf("%d:%s:%d", log.BlockNumber, log.TxHash.Hex(), log.Index)
	if _, ok := r.seen[id]; ok {
		return true
	}
	r.seen[id] = struct{}{}
	return false
}
