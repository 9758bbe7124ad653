package backtest

import (
	"errors"
	"math"
	"testing"

	"rangehedge/internal/amm"
	"rangehedge/internal/model"
)

func TestCompound(t *testing.T) {
	h := Hedge{Lent: 100, Borrowed: 50}

	flat := h.Compound(0, 0, 105120)
	if flat.Lent != 100 || flat.Borrowed != 50 {
		t.Fatalf("zero rates changed balances: %+v", flat)
	}

	grown := h.Compound(0.05, 0.02, 12)
	wantLent := 100 * math.Pow(1.05, 1.0/12)
	wantBorrowed := 50 * math.Pow(1.02, 1.0/12)
	if math.Abs(grown.Lent-wantLent) > 1e-12 || math.Abs(grown.Borrowed-wantBorrowed) > 1e-12 {
		t.Fatalf("compound = %+v, want (%v, %v)", grown, wantLent, wantBorrowed)
	}
}

func TestTargetBias(t *testing.T) {
	h := Hedge{Borrowed: 10}

	cases := []struct {
		delta float64
		want  model.Bias
	}{
		{-2, model.LongBias},  // ratio -0.2 < -0.1
		{2, model.ShortBias},  // ratio 0.2 > 0.1
		{0.5, model.Neutral},  // ratio 0.05 inside the band
		{-1, model.Neutral},   // ratio exactly -threshold stays neutral
		{1, model.Neutral},    // ratio exactly +threshold stays neutral
	}
	for _, c := range cases {
		got, err := h.TargetBias(c.delta, 0.1)
		if err != nil {
			t.Fatalf("TargetBias(%v): %v", c.delta, err)
		}
		if got != c.want {
			t.Errorf("TargetBias(%v) = %v, want %v", c.delta, got, c.want)
		}
	}
}

func TestTargetBiasDegenerate(t *testing.T) {
	h := Hedge{Borrowed: 0}
	if _, err := h.TargetBias(1, 0.1); !errors.Is(err, ErrDegenerateHedge) {
		t.Fatalf("expected ErrDegenerateHedge, got %v", err)
	}
}

func TestCurrentBias(t *testing.T) {
	spacing := 60
	maxTick := amm.MaxAlignedTick(spacing)
	minTick := amm.MinAlignedTick(spacing)

	cases := []struct {
		pos  model.Position
		want model.Bias
	}{
		{model.Position{LowerTick: -300, UpperTick: maxTick}, model.LongBias},
		{model.Position{LowerTick: minTick, UpperTick: 300}, model.ShortBias},
		{model.Position{LowerTick: -300, UpperTick: 300}, model.Neutral},
		// Directional but not pinned to the limit still reads neutral.
		{model.Position{LowerTick: -300, UpperTick: maxTick - spacing}, model.Neutral},
	}
	for _, c := range cases {
		if got := CurrentBias(c.pos, spacing); got != c.want {
			t.Errorf("CurrentBias(%+v) = %v, want %v", c.pos, got, c.want)
		}
	}
}

func TestDelta(t *testing.T) {
	h := Hedge{Borrowed: 5}
	if got := h.Delta(1, 2, 3); got != 1 {
		t.Fatalf("Delta = %v, want 1", got)
	}
}
