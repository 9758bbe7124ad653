package amm

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestQuantitiesAtRangeEdges(t *testing.T) {
	liquidity, lower, upper := 1000.0, 0.9, 1.1

	// Pool price at the lower bound: all token X.
	x, y := Quantities(liquidity, lower, upper, lower)
	wantX := liquidity * (1/math.Sqrt(lower) - 1/math.Sqrt(upper))
	if !almostEqual(x, wantX) || y != 0 {
		t.Fatalf("at lower bound got (%v, %v), want (%v, 0)", x, y, wantX)
	}

	// Pool price at the upper bound: all token Y.
	x, y = Quantities(liquidity, lower, upper, upper)
	wantY := liquidity * (math.Sqrt(upper) - math.Sqrt(lower))
	if x != 0 || !almostEqual(y, wantY) {
		t.Fatalf("at upper bound got (%v, %v), want (0, %v)", x, y, wantY)
	}
}

func TestQuantitiesClampsOutOfRangePrice(t *testing.T) {
	liquidity, lower, upper := 500.0, 0.9, 1.1

	belowX, belowY := Quantities(liquidity, lower, upper, 0.5)
	atLowerX, atLowerY := Quantities(liquidity, lower, upper, lower)
	if belowX != atLowerX || belowY != atLowerY {
		t.Fatalf("below-range price not clamped to lower bound")
	}

	aboveX, aboveY := Quantities(liquidity, lower, upper, 2.0)
	atUpperX, atUpperY := Quantities(liquidity, lower, upper, upper)
	if aboveX != atUpperX || aboveY != atUpperY {
		t.Fatalf("above-range price not clamped to upper bound")
	}
}

func TestQuantitiesNonNegativeInRange(t *testing.T) {
	for _, pool := range []float64{0.91, 1.0, 1.09} {
		x, y := Quantities(1234.5, 0.9, 1.1, pool)
		if x < 0 || y < 0 {
			t.Fatalf("negative quantity at pool price %v: (%v, %v)", pool, x, y)
		}
	}
	x, y := Quantities(0, 0.9, 1.1, 1.0)
	if x != 0 || y != 0 {
		t.Fatalf("zero liquidity yields (%v, %v)", x, y)
	}
}

func TestMintRoundTrip(t *testing.T) {
	lower, upper := 0.8, 1.25
	for _, pool := range []float64{0.9, 1.0, 1.2} {
		liquidity, usedX, usedY := Mint(10, 10, lower, upper, pool)
		if usedX > 10+tolerance || usedY > 10+tolerance {
			t.Fatalf("mint consumed more than offered: (%v, %v)", usedX, usedY)
		}
		x, y := Quantities(liquidity, lower, upper, pool)
		if !almostEqual(x, usedX) || !almostEqual(y, usedY) {
			t.Fatalf("round trip at pool %v: quantities (%v, %v), used (%v, %v)", pool, x, y, usedX, usedY)
		}
	}
}

func TestMintBelowRangeUsesOnlyX(t *testing.T) {
	liquidity, usedX, usedY := Mint(4, 7, 1.1, 1.3, 1.0)
	if usedY != 0 || usedX != 4 {
		t.Fatalf("below range used (%v, %v), want (4, 0)", usedX, usedY)
	}
	want := 4 / (1/math.Sqrt(1.1) - 1/math.Sqrt(1.3))
	if !almostEqual(liquidity, want) {
		t.Fatalf("below range liquidity %v, want %v", liquidity, want)
	}
}

func TestMintAboveRangeUsesOnlyY(t *testing.T) {
	liquidity, usedX, usedY := Mint(4, 7, 0.7, 0.9, 1.0)
	if usedX != 0 || usedY != 7 {
		t.Fatalf("above range used (%v, %v), want (0, 7)", usedX, usedY)
	}
	want := 7 / (math.Sqrt(0.9) - math.Sqrt(0.7))
	if !almostEqual(liquidity, want) {
		t.Fatalf("above range liquidity %v, want %v", liquidity, want)
	}
}

func TestMintBindingTokenSelection(t *testing.T) {
	lower, upper, pool := 0.8, 1.25, 1.0

	// Plenty of X: the Y balance binds and is fully consumed.
	_, usedX, usedY := Mint(1e6, 1, lower, upper, pool)
	if usedY != 1 {
		t.Fatalf("expected Y fully consumed, used %v", usedY)
	}
	if usedX >= 1e6 {
		t.Fatalf("expected X leftover, used %v", usedX)
	}

	// Scarce X: the fallback consumes X fully instead.
	_, usedX, usedY = Mint(1e-6, 1, lower, upper, pool)
	if usedX != 1e-6 {
		t.Fatalf("expected X fully consumed, used %v", usedX)
	}
	if usedY >= 1 {
		t.Fatalf("expected Y leftover, used %v", usedY)
	}
}
