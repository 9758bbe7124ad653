package backtest

import (
	"fmt"
	"math"

	"rangehedge/internal/amm"
	"rangehedge/internal/model"
)

// Hedge tracks the lending-side balances of the strategy: collateral
// lent out and token X borrowed against it.
type Hedge struct {
	Lent     float64
	Borrowed float64
}

// Compound accrues one step of yield on both balances, each at its own
// annualized rate taken to the per-step root.
func (h Hedge) Compound(lendingAPY, borrowingAPY, stepsPerYear float64) Hedge {
	return Hedge{
		Lent:     h.Lent * math.Pow(1+lendingAPY, 1/stepsPerYear),
		Borrowed: h.Borrowed * math.Pow(1+borrowingAPY, 1/stepsPerYear),
	}
}

// Delta is the net unhedged token-X exposure: everything the strategy
// holds in X, positioned or idle, minus the borrowed amount.
func (h Hedge) Delta(baseX, limitX, outsideX float64) float64 {
	return -h.Borrowed + baseX + limitX + outsideX
}

// TargetBias maps the delta ratio to the directional lean the hedge
// should take. A ratio beyond the threshold in either direction calls
// for a one-sided base range to restore neutrality.
func (h Hedge) TargetBias(delta, threshold float64) (model.Bias, error) {
	if h.Borrowed == 0 {
		return model.Neutral, fmt.Errorf("%w: borrowed balance is zero", ErrDegenerateHedge)
	}
	ratio := delta / h.Borrowed
	switch {
	case ratio < -threshold:
		return model.LongBias, nil
	case ratio > threshold:
		return model.ShortBias, nil
	default:
		return model.Neutral, nil
	}
}

// CurrentBias infers the directional lean from the base position shape.
// Only the two configurations pinned to an aligned tick limit count as
// directional; any other range, however skewed, reads as neutral. The
// rebalance cadence depends on this exact rule.
func CurrentBias(base model.Position, spacing int) model.Bias {
	bias := 0
	if base.UpperTick == amm.MaxAlignedTick(spacing) {
		bias++
	}
	if base.LowerTick == amm.MinAlignedTick(spacing) {
		bias--
	}
	return model.Bias(bias)
}
