package backtest

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"rangehedge/internal/amm"
)

// Engine replays the strategy over a bar series. It owns no mutable
// state of its own; every step is a pure transition from one snapshot to
// the next, so a single Engine can serve any number of runs.
type Engine struct {
	params Params
	logger *zap.Logger
}

// NewEngine validates the parameters and builds an engine.
func NewEngine(params Params, logger *zap.Logger) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{params: params, logger: logger}, nil
}

// priceAt converts a tick to a price, clamping to the protocol limits
// first and rejecting anything the square-root math cannot handle.
func (e *Engine) priceAt(tick int) (float64, error) {
	price := amm.PriceAtTick(amm.ClampTick(tick), e.params.DecimalsX, e.params.DecimalsY)
	if price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		return 0, fmt.Errorf("%w: tick %d converts to %v", ErrNonPositivePrice, tick, price)
	}
	return price, nil
}
