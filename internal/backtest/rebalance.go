package backtest

import (
	"rangehedge/internal/amm"
	"rangehedge/internal/model"
)

// baseBounds recomputes the base range for a directional target. A
// directional target pins one bound to the aligned tick limit and leaves
// the other at its configured offset from the pool tick; the neutral
// target centers the range on the pool tick.
func (e *Engine) baseBounds(tick int, target model.Bias) (lower, upper int) {
	spacing := e.params.TickSpacing
	switch target {
	case model.ShortBias:
		lower = amm.MinAlignedTick(spacing)
		upper = amm.FloorTick(tick+e.params.BaseUpperBoundTicks, spacing)
	case model.LongBias:
		lower = amm.FloorTick(tick-e.params.BaseLowerBoundTicks, spacing)
		upper = amm.MaxAlignedTick(spacing)
	default:
		lower = amm.FloorTick(tick-e.params.BaseLowerBoundTicks, spacing)
		upper = amm.FloorTick(tick+e.params.BaseUpperBoundTicks, spacing)
	}
	return lower, upper
}

// limitBounds recomputes the limit range: the directional formula with
// the limit's own width, clamped to straddle the pool tick with a
// spacing unit of headroom on each side, then collapsed to one side of
// the tick so the range deploys exactly the leftover token. No Y left
// outside means the X balance is the leftover, so the range sits
// strictly above the tick; otherwise it sits at or below.
func (e *Engine) limitBounds(tick int, target model.Bias, outsideY float64) (lower, upper int) {
	spacing := e.params.TickSpacing
	switch target {
	case model.ShortBias:
		lower = amm.MinAlignedTick(spacing)
		upper = amm.FloorTick(tick+e.params.LimitBoundTicks, spacing)
	case model.LongBias:
		lower = amm.FloorTick(tick-e.params.LimitBoundTicks, spacing)
		upper = amm.MaxAlignedTick(spacing)
	default:
		lower = amm.FloorTick(tick-e.params.LimitBoundTicks, spacing)
		upper = amm.FloorTick(tick+e.params.LimitBoundTicks, spacing)
	}

	anchor := amm.FloorTick(tick, spacing)
	if lower > anchor-spacing {
		lower = anchor - spacing
	}
	if upper < anchor+2*spacing {
		upper = anchor + 2*spacing
	}

	if outsideY == 0 {
		lower = anchor + spacing
	} else {
		upper = anchor
	}
	return lower, upper
}

// portfolio is the mutable working set of a rebalance in progress.
type portfolio struct {
	base     model.Position
	limit    model.Position
	outsideX float64
	outsideY float64
}

// rebalance burns both positions into the outside reserve and re-mints
// them at the given pool tick and price. Base bounds are recomputed only
// when recenterBase is set; a limit-trigger-only rebalance re-mints the
// base at its previous bounds. The limit range is always re-derived, and
// by construction absorbs exactly one token type.
func (e *Engine) rebalance(p portfolio, tick int, price float64, target model.Bias, recenterBase bool) (portfolio, error) {
	baseLowerPrice, err := e.priceAt(p.base.LowerTick)
	if err != nil {
		return p, err
	}
	baseUpperPrice, err := e.priceAt(p.base.UpperTick)
	if err != nil {
		return p, err
	}
	limitLowerPrice, err := e.priceAt(p.limit.LowerTick)
	if err != nil {
		return p, err
	}
	limitUpperPrice, err := e.priceAt(p.limit.UpperTick)
	if err != nil {
		return p, err
	}

	// Burn both positions into the reserve.
	baseX, baseY := amm.Quantities(p.base.Liquidity, baseLowerPrice, baseUpperPrice, price)
	limitX, limitY := amm.Quantities(p.limit.Liquidity, limitLowerPrice, limitUpperPrice, price)
	p.outsideX += baseX + limitX
	p.outsideY += baseY + limitY

	if recenterBase {
		lower, upper := e.baseBounds(tick, target)
		p.base = model.Position{LowerTick: lower, UpperTick: upper}
		if baseLowerPrice, err = e.priceAt(lower); err != nil {
			return p, err
		}
		if baseUpperPrice, err = e.priceAt(upper); err != nil {
			return p, err
		}
	}

	liquidity, usedX, usedY := amm.Mint(p.outsideX, p.outsideY, baseLowerPrice, baseUpperPrice, price)
	p.base.Liquidity = liquidity
	p.outsideX -= usedX
	p.outsideY -= usedY

	lower, upper := e.limitBounds(tick, target, p.outsideY)
	p.limit = model.Position{LowerTick: lower, UpperTick: upper}
	if limitLowerPrice, err = e.priceAt(lower); err != nil {
		return p, err
	}
	if limitUpperPrice, err = e.priceAt(upper); err != nil {
		return p, err
	}

	liquidity, usedX, usedY = amm.Mint(p.outsideX, p.outsideY, limitLowerPrice, limitUpperPrice, price)
	p.limit.Liquidity = liquidity
	p.outsideX -= usedX
	p.outsideY -= usedY

	return p, nil
}
