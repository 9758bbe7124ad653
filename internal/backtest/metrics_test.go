package backtest

import (
	"math"
	"testing"

	"rangehedge/internal/model"
)

func statesWithValues(values ...float64) []model.StepState {
	states := make([]model.StepState, len(values))
	for i, v := range values {
		states[i] = model.StepState{Index: i, TotalValue: v}
	}
	return states
}

func TestSummarize(t *testing.T) {
	states := statesWithValues(1, 2, 1)
	states[0].Rebalanced = true
	states[2].Rebalanced = true

	// stepsPerYear equal to the series length makes the annualized return
	// the plain whole-run growth, which is zero here.
	s := Summarize(states, 3)

	if s.Steps != 3 || s.Rebalances != 2 {
		t.Fatalf("steps/rebalances = %d/%d, want 3/2", s.Steps, s.Rebalances)
	}
	if s.FinalValue != 1 {
		t.Fatalf("final value = %v, want 1", s.FinalValue)
	}
	if math.Abs(s.AnnualizedReturn) > 1e-12 {
		t.Fatalf("annualized return = %v, want 0", s.AnnualizedReturn)
	}
	if math.Abs(s.MaxDrawdown-(-0.5)) > 1e-12 {
		t.Fatalf("max drawdown = %v, want -0.5", s.MaxDrawdown)
	}
	if s.Calmar != 0 {
		t.Fatalf("calmar = %v, want 0 for a flat run", s.Calmar)
	}

	// Per-step returns are 1 and -0.5: mean 0.25, sample std sqrt(1.125).
	wantSharpe := 0.25 / math.Sqrt(1.125) * math.Sqrt(3)
	if math.Abs(s.Sharpe-wantSharpe) > 1e-12 {
		t.Fatalf("sharpe = %v, want %v", s.Sharpe, wantSharpe)
	}
}

func TestSummarizeGrowth(t *testing.T) {
	s := Summarize(statesWithValues(1, 1.1, 1.21), 6)

	// Two years' worth of cadence over a 21% run: (1.21)^2 - 1.
	want := math.Pow(1.21, 2) - 1
	if math.Abs(s.AnnualizedReturn-want) > 1e-12 {
		t.Fatalf("annualized return = %v, want %v", s.AnnualizedReturn, want)
	}
	if s.MaxDrawdown != 0 {
		t.Fatalf("max drawdown = %v, want 0 on a monotone run", s.MaxDrawdown)
	}
	if s.Calmar != 0 {
		t.Fatalf("calmar = %v, want 0 without a drawdown", s.Calmar)
	}
}

func TestSummarizeCalmarSign(t *testing.T) {
	s := Summarize(statesWithValues(1, 0.8, 1.2, 1.1), 4)

	if s.AnnualizedReturn <= 0 {
		t.Fatalf("annualized return = %v, want positive", s.AnnualizedReturn)
	}
	if s.MaxDrawdown >= 0 {
		t.Fatalf("max drawdown = %v, want negative", s.MaxDrawdown)
	}
	if s.Calmar <= 0 {
		t.Fatalf("calmar = %v, want positive", s.Calmar)
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	if s := Summarize(nil, 100); s.Steps != 0 || s.Sharpe != 0 {
		t.Fatalf("empty series summary: %+v", s)
	}
	if s := Summarize(statesWithValues(1, 2), 100); s.Sharpe != 0 {
		t.Fatalf("two-state sharpe = %v, want 0", s.Sharpe)
	}
	if s := Summarize(statesWithValues(1, 1, 1, 1), 100); s.Sharpe != 0 {
		t.Fatalf("flat-series sharpe = %v, want 0", s.Sharpe)
	}
}
