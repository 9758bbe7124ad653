package backtest

import (
	"fmt"

	"go.uber.org/zap"

	"rangehedge/internal/model"
)

// Run folds the step transition over the bar series. Bars and swaps must
// both be ordered by timestamp; swaps outside the bar range are ignored.
// The decision at bar i consumes the swaps in [t_i, t_{i+1}), so n bars
// yield n-1 states — the last bar only closes the final interval.
func (e *Engine) Run(bars []model.Bar, swaps []model.SwapRecord) ([]model.StepState, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: %d bars, need at least two", ErrEmptySeries, len(bars))
	}

	states := make([]model.StepState, 0, len(bars)-1)

	state, err := e.Initialize(bars[0])
	if err != nil {
		return nil, err
	}
	states = append(states, state)

	cursor := 0
	for i := 1; i < len(bars)-1; i++ {
		window := sliceWindow(swaps, &cursor, bars[i].Timestamp, bars[i+1].Timestamp)
		state, err = e.Step(states[i-1], bars[i], window)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		states = append(states, state)
	}

	e.logger.Info("run complete",
		zap.Int("bars", len(bars)),
		zap.Int("states", len(states)),
		zap.Float64("final_value", states[len(states)-1].TotalValue),
	)

	return states, nil
}

// sliceWindow returns the swaps with timestamp in [from, to), advancing
// the cursor past everything before the window. Swaps are consumed in
// order, so each record is visited once across the whole run.
func sliceWindow(swaps []model.SwapRecord, cursor *int, from, to int64) []model.SwapRecord {
	for *cursor < len(swaps) && swaps[*cursor].Timestamp < from {
		*cursor++
	}
	start := *cursor
	for *cursor < len(swaps) && swaps[*cursor].Timestamp < to {
		*cursor++
	}
	return swaps[start:*cursor]
}
