package model

// Summary holds the run-level metrics of a completed backtest.
type Summary struct {
	Steps            int     `json:"steps"`
	Rebalances       int     `json:"rebalances"`
	FinalValue       float64 `json:"final_value"`
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	Calmar           float64 `json:"calmar"`
	Sharpe           float64 `json:"sharpe"`
}
