package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rangehedge/internal/model"
)

// Store provides Postgres persistence for backtest runs.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertRun inserts or updates a run's parameters and summary metrics.
func (s *Store) UpsertRun(ctx context.Context, runID string, paramsJSON []byte, summary model.Summary) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO backtest_runs (
			run_id, params, steps, rebalances, final_value,
			annualized_return, max_drawdown, calmar, sharpe, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (run_id)
		DO UPDATE SET
			params = EXCLUDED.params,
			steps = EXCLUDED.steps,
			rebalances = EXCLUDED.rebalances,
			final_value = EXCLUDED.final_value,
			annualized_return = EXCLUDED.annualized_return,
			max_drawdown = EXCLUDED.max_drawdown,
			calmar = EXCLUDED.calmar,
			sharpe = EXCLUDED.sharpe,
			updated_at = now()
	`,
		runID,
		paramsJSON,
		summary.Steps,
		summary.Rebalances,
		summary.FinalValue,
		summary.AnnualizedReturn,
		summary.MaxDrawdown,
		summary.Calmar,
		summary.Sharpe,
	)
	return err
}

// UpsertSteps inserts or updates a run's per-step states.
func (s *Store) UpsertSteps(ctx context.Context, runID string, states []model.StepState) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if len(states) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, state := range states {
		batch.Queue(`
			INSERT INTO backtest_steps (
				run_id, step_index, ts, tick, price,
				base_lower, base_upper, base_liquidity,
				limit_lower, limit_upper, limit_liquidity,
				outside_x, outside_y, fees_x, fees_y,
				lent, borrowed, rebalanced, reason,
				total_value, normalized_delta, health_factor, created_at
			) VALUES (
				$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,
				$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,now()
			)
			ON CONFLICT (run_id, step_index)
			DO UPDATE SET
				ts = EXCLUDED.ts,
				tick = EXCLUDED.tick,
				price = EXCLUDED.price,
				base_lower = EXCLUDED.base_lower,
				base_upper = EXCLUDED.base_upper,
				base_liquidity = EXCLUDED.base_liquidity,
				limit_lower = EXCLUDED.limit_lower,
				limit_upper = EXCLUDED.limit_upper,
				limit_liquidity = EXCLUDED.limit_liquidity,
				outside_x = EXCLUDED.outside_x,
				outside_y = EXCLUDED.outside_y,
				fees_x = EXCLUDED.fees_x,
				fees_y = EXCLUDED.fees_y,
				lent = EXCLUDED.lent,
				borrowed = EXCLUDED.borrowed,
				rebalanced = EXCLUDED.rebalanced,
				reason = EXCLUDED.reason,
				total_value = EXCLUDED.total_value,
				normalized_delta = EXCLUDED.normalized_delta,
				health_factor = EXCLUDED.health_factor
		`,
			runID,
			state.Index,
			state.Timestamp,
			state.Tick,
			state.Price,
			state.Base.LowerTick,
			state.Base.UpperTick,
			state.Base.Liquidity,
			state.Limit.LowerTick,
			state.Limit.UpperTick,
			state.Limit.Liquidity,
			state.OutsideX,
			state.OutsideY,
			state.FeesX,
			state.FeesY,
			state.Lent,
			state.Borrowed,
			state.Rebalanced,
			state.Reason.String(),
			state.TotalValue,
			state.NormalizedDelta,
			state.HealthFactor,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range states {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
