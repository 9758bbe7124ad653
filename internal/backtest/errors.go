package backtest

import "errors"

// Fatal error kinds. Any of these invalidates the whole run.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrDegenerateHedge  = errors.New("degenerate hedge state")
	ErrNonPositivePrice = errors.New("non-positive price")
	ErrEmptySeries      = errors.New("empty input series")
)
