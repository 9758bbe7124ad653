package backtest

import (
	"fmt"
	"math"

	"rangehedge/internal/amm"
)

// Params holds the fixed strategy inputs of a run. Tick widths are in
// raw ticks; bounds derived from them are floored to the pool spacing.
type Params struct {
	DecimalsX int
	DecimalsY int

	TickSpacing int
	StartValue  float64

	DeltaThreshold float64

	BaseLowerBoundTicks   int
	BaseUpperBoundTicks   int
	BaseLowerTriggerTicks int
	BaseUpperTriggerTicks int

	LimitBoundTicks   int
	LimitTriggerTicks int

	LendingAPY           float64
	BorrowingAPY         float64
	LiquidationThreshold float64

	StepsPerYear float64
}

// Validate rejects parameter sets the simulation cannot run on. Trigger
// offsets may be negative (a band tighter than the position bounds);
// bound widths must cover at least one tick spacing, since a narrower
// width can floor both bounds onto the same aligned tick and collapse
// the position range.
func (p Params) Validate() error {
	if p.TickSpacing <= 0 {
		return fmt.Errorf("%w: tick spacing %d must be positive", ErrInvalidConfig, p.TickSpacing)
	}
	if p.StartValue <= 0 {
		return fmt.Errorf("%w: start value %v must be positive", ErrInvalidConfig, p.StartValue)
	}
	if p.StepsPerYear <= 0 {
		return fmt.Errorf("%w: steps per year %v must be positive", ErrInvalidConfig, p.StepsPerYear)
	}
	if p.BaseLowerBoundTicks < p.TickSpacing || p.BaseUpperBoundTicks < p.TickSpacing {
		return fmt.Errorf("%w: base bound widths (%d, %d) must be at least the tick spacing %d",
			ErrInvalidConfig, p.BaseLowerBoundTicks, p.BaseUpperBoundTicks, p.TickSpacing)
	}
	if p.LimitBoundTicks < p.TickSpacing {
		return fmt.Errorf("%w: limit bound width %d must be at least the tick spacing %d",
			ErrInvalidConfig, p.LimitBoundTicks, p.TickSpacing)
	}
	if p.DeltaThreshold < 0 {
		return fmt.Errorf("%w: delta threshold %v must not be negative", ErrInvalidConfig, p.DeltaThreshold)
	}

	// The decimal scale must keep the whole tick range finite and positive.
	for _, tick := range []int{amm.MinTick, 0, amm.MaxTick} {
		price := amm.PriceAtTick(tick, p.DecimalsX, p.DecimalsY)
		if price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
			return fmt.Errorf("%w: decimals (%d, %d) yield price %v at tick %d",
				ErrInvalidConfig, p.DecimalsX, p.DecimalsY, price, tick)
		}
	}

	return nil
}
