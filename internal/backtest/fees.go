package backtest

import "rangehedge/internal/model"

// AttributeFees computes the fee share earned by the simulated positions
// over a slice of swaps. A position is active for a swap when the swap
// tick lies in [lower, upper); active liquidity is additive when the base
// and limit ranges overlap. Each swap contributes its fees scaled by
// active/(active+pool) liquidity, the protocol's proportional sharing
// rule.
func AttributeFees(swaps []model.SwapRecord, base, limit model.Position) (feesX, feesY float64) {
	for _, swap := range swaps {
		var active float64
		if base.LowerTick <= swap.Tick && swap.Tick < base.UpperTick {
			active += base.Liquidity
		}
		if limit.LowerTick <= swap.Tick && swap.Tick < limit.UpperTick {
			active += limit.Liquidity
		}
		if active == 0 {
			continue
		}
		share := active / (active + swap.Liquidity)
		feesX += share * swap.FeesX
		feesY += share * swap.FeesY
	}
	return feesX, feesY
}
