package backtest

import "rangehedge/internal/model"

// TriggerBand is the tick interval a position may drift within before a
// rebalance is forced. Offsets widen the band outward from the position
// bounds; negative offsets tighten it inside them.
type TriggerBand struct {
	Lower int
	Upper int
}

// BandFor derives the trigger band of a position from its bounds.
func BandFor(pos model.Position, lowerOffset, upperOffset int) TriggerBand {
	return TriggerBand{
		Lower: pos.LowerTick - lowerOffset,
		Upper: pos.UpperTick + upperOffset,
	}
}

// Triggered reports whether a pool tick has left the band. The band is
// half-open: the lower trigger tick itself is still inside, the upper
// trigger tick is already outside.
func (b TriggerBand) Triggered(tick int) bool {
	return !(b.Lower <= tick && tick < b.Upper)
}
