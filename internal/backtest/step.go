package backtest

import (
	"go.uber.org/zap"

	"rangehedge/internal/amm"
	"rangehedge/internal/model"
)

// Initialize produces state 0: the hedge is seeded with two thirds of
// the starting value lent out and half of that (in token X at the
// opening price) borrowed, the reserve takes the borrowed X plus the
// remaining Y, and a full rebalance deploys it with a neutral target.
func (e *Engine) Initialize(bar model.Bar) (model.StepState, error) {
	price, err := e.priceAt(bar.Tick)
	if err != nil {
		return model.StepState{}, err
	}

	hedge := Hedge{Lent: e.params.StartValue * 2 / 3}
	hedge.Borrowed = hedge.Lent / 2 / price

	p := portfolio{
		outsideX: hedge.Borrowed,
		outsideY: e.params.StartValue - hedge.Lent,
	}
	p, err = e.rebalance(p, bar.Tick, price, model.Neutral, true)
	if err != nil {
		return model.StepState{}, err
	}

	e.logger.Debug("initialized",
		zap.Int("tick", bar.Tick),
		zap.Float64("price", price),
		zap.Float64("lent", hedge.Lent),
		zap.Float64("borrowed", hedge.Borrowed),
	)

	return e.snapshot(0, bar, price, p, hedge, 0, 0, true, model.ReasonInitialization)
}

// Step advances the simulation by one bar: it accrues hedge yield,
// attributes the interval's fees to the carried positions, evaluates the
// trigger bands and the delta target at the new tick, and rebalances if
// any condition demands it. The previous state is never modified.
func (e *Engine) Step(prev model.StepState, bar model.Bar, swaps []model.SwapRecord) (model.StepState, error) {
	price, err := e.priceAt(bar.Tick)
	if err != nil {
		return model.StepState{}, err
	}

	hedge := Hedge{Lent: prev.Lent, Borrowed: prev.Borrowed}.
		Compound(e.params.LendingAPY, e.params.BorrowingAPY, e.params.StepsPerYear)

	feesX, feesY := AttributeFees(swaps, prev.Base, prev.Limit)
	p := portfolio{
		base:     prev.Base,
		limit:    prev.Limit,
		outsideX: prev.OutsideX + feesX,
		outsideY: prev.OutsideY + feesY,
	}

	// Mark the carried positions at the new price for the delta check.
	baseX, _, err := e.positionQuantities(p.base, price)
	if err != nil {
		return model.StepState{}, err
	}
	limitX, _, err := e.positionQuantities(p.limit, price)
	if err != nil {
		return model.StepState{}, err
	}

	current := CurrentBias(p.base, e.params.TickSpacing)
	target, err := hedge.TargetBias(hedge.Delta(baseX, limitX, p.outsideX), e.params.DeltaThreshold)
	if err != nil {
		return model.StepState{}, err
	}

	// Candidate reasons in fixed order; a later hit overrides the tag but
	// every hit forces the same full rebalance.
	rebalanced := false
	reason := model.ReasonNone
	if BandFor(p.limit, e.params.LimitTriggerTicks, e.params.LimitTriggerTicks).Triggered(bar.Tick) {
		rebalanced, reason = true, model.ReasonLimitTrigger
	}
	if BandFor(p.base, e.params.BaseLowerTriggerTicks, e.params.BaseUpperTriggerTicks).Triggered(bar.Tick) {
		rebalanced, reason = true, model.ReasonBaseTrigger
	}
	if current != target {
		rebalanced, reason = true, model.ReasonDelta
	}

	if rebalanced {
		recenterBase := reason != model.ReasonLimitTrigger
		p, err = e.rebalance(p, bar.Tick, price, target, recenterBase)
		if err != nil {
			return model.StepState{}, err
		}
		e.logger.Debug("rebalanced",
			zap.Int("index", prev.Index+1),
			zap.Int("tick", bar.Tick),
			zap.Stringer("reason", reason),
			zap.Stringer("target", target),
			zap.Int("base_lower", p.base.LowerTick),
			zap.Int("base_upper", p.base.UpperTick),
			zap.Int("limit_lower", p.limit.LowerTick),
			zap.Int("limit_upper", p.limit.UpperTick),
		)
	}

	return e.snapshot(prev.Index+1, bar, price, p, hedge, feesX, feesY, rebalanced, reason)
}

// positionQuantities marks a position's token amounts at a pool price.
func (e *Engine) positionQuantities(pos model.Position, price float64) (x, y float64, err error) {
	lowerPrice, err := e.priceAt(pos.LowerTick)
	if err != nil {
		return 0, 0, err
	}
	upperPrice, err := e.priceAt(pos.UpperTick)
	if err != nil {
		return 0, 0, err
	}
	x, y = amm.Quantities(pos.Liquidity, lowerPrice, upperPrice, price)
	return x, y, nil
}

// snapshot assembles the immutable state record for a bar, including the
// derived valuation fields. The interval's fees are already part of the
// outside reserve, so the total omits a separate fee term.
func (e *Engine) snapshot(index int, bar model.Bar, price float64, p portfolio, hedge Hedge,
	feesX, feesY float64, rebalanced bool, reason model.Reason) (model.StepState, error) {

	baseX, baseY, err := e.positionQuantities(p.base, price)
	if err != nil {
		return model.StepState{}, err
	}
	limitX, limitY, err := e.positionQuantities(p.limit, price)
	if err != nil {
		return model.StepState{}, err
	}

	state := model.StepState{
		Index:     index,
		Timestamp: bar.Timestamp,
		Tick:      bar.Tick,
		Price:     price,

		Base:  p.base,
		Limit: p.limit,

		BaseLowerTrigger:  p.base.LowerTick - e.params.BaseLowerTriggerTicks,
		BaseUpperTrigger:  p.base.UpperTick + e.params.BaseUpperTriggerTicks,
		LimitLowerTrigger: p.limit.LowerTick - e.params.LimitTriggerTicks,
		LimitUpperTrigger: p.limit.UpperTick + e.params.LimitTriggerTicks,

		OutsideX: p.outsideX,
		OutsideY: p.outsideY,
		FeesX:    feesX,
		FeesY:    feesY,

		Lent:     hedge.Lent,
		Borrowed: hedge.Borrowed,

		Rebalanced: rebalanced,
		Reason:     reason,
	}

	state.BaseValue = baseX*price + baseY
	state.LimitValue = limitX*price + limitY
	state.OutsideValue = p.outsideX*price + p.outsideY
	state.FeesValue = feesX*price + feesY
	state.TotalValue = state.BaseValue + state.LimitValue + state.OutsideValue +
		hedge.Lent - hedge.Borrowed*price

	if hedge.Borrowed > 0 {
		state.NormalizedDelta = hedge.Delta(baseX, limitX, p.outsideX) / hedge.Borrowed
		state.HealthFactor = hedge.Lent * e.params.LiquidationThreshold / (hedge.Borrowed * price)
	}

	return state, nil
}
