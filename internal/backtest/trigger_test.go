package backtest

import (
	"testing"

	"rangehedge/internal/model"
)

func TestTriggerBoundaries(t *testing.T) {
	pos := model.Position{LowerTick: -100, UpperTick: 100}
	band := BandFor(pos, 50, 50) // [-150, 150)

	cases := []struct {
		tick int
		want bool
	}{
		{-150, false}, // lower trigger tick itself is inside
		{-151, true},
		{149, false},
		{150, true}, // upper trigger tick is already outside
		{0, false},
	}
	for _, c := range cases {
		if got := band.Triggered(c.tick); got != c.want {
			t.Errorf("Triggered(%d) = %v, want %v", c.tick, got, c.want)
		}
	}
}

func TestNegativeOffsetsTightenBand(t *testing.T) {
	pos := model.Position{LowerTick: -100, UpperTick: 100}
	band := BandFor(pos, -30, -30) // [-70, 70): inside the position bounds

	if band.Lower != -70 || band.Upper != 70 {
		t.Fatalf("band = [%d, %d), want [-70, 70)", band.Lower, band.Upper)
	}
	if !band.Triggered(-80) {
		t.Fatalf("tick inside position but outside tightened band should trigger")
	}
	if band.Triggered(0) {
		t.Fatalf("center tick should not trigger")
	}
}
