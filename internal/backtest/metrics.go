package backtest

import (
	"math"

	"rangehedge/internal/model"
)

// Summarize computes the run-level metrics from a state sequence. The
// annualized return compounds the whole-run growth at the step cadence;
// the Sharpe ratio uses per-step returns with the sample standard
// deviation, annualized by the square root of the steps per year.
func Summarize(states []model.StepState, stepsPerYear float64) model.Summary {
	summary := model.Summary{Steps: len(states)}
	if len(states) == 0 {
		return summary
	}

	for _, state := range states {
		if state.Rebalanced {
			summary.Rebalances++
		}
	}

	first := states[0].TotalValue
	last := states[len(states)-1].TotalValue
	summary.FinalValue = last
	if first > 0 {
		summary.AnnualizedReturn = math.Pow(last/first, stepsPerYear/float64(len(states))) - 1
	}

	summary.MaxDrawdown = maxDrawdown(states)
	if summary.MaxDrawdown < 0 {
		summary.Calmar = -summary.AnnualizedReturn / summary.MaxDrawdown
	}
	summary.Sharpe = sharpe(states, stepsPerYear)

	return summary
}

// maxDrawdown is the deepest decline from a running peak, as a
// non-positive fraction.
func maxDrawdown(states []model.StepState) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, state := range states {
		if state.TotalValue > peak {
			peak = state.TotalValue
		}
		if peak > 0 {
			if dd := state.TotalValue/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

func sharpe(states []model.StepState, stepsPerYear float64) float64 {
	if len(states) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(states)-1)
	for i := 1; i < len(states); i++ {
		prev := states[i-1].TotalValue
		if prev == 0 {
			return 0
		}
		returns = append(returns, states[i].TotalValue/prev-1)
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return mean / std * math.Sqrt(stepsPerYear)
}
