package amm

import "math"

// Protocol tick limits shared by Uniswap V3 style pools.
const (
	MinTick = -887272
	MaxTick = 887272
)

// PriceAtTick converts a tick index to a price in token Y per token X,
// adjusted for the decimal scaling of both tokens. The result grows
// monotonically with the tick. Callers clamp the tick to the protocol
// limits before converting.
func PriceAtTick(tick, decimalsX, decimalsY int) float64 {
	return math.Pow(1.0001, float64(tick)) / math.Pow(10, float64(decimalsY-decimalsX))
}

// ClampTick bounds a tick to the protocol limits.
func ClampTick(tick int) int {
	if tick < MinTick {
		return MinTick
	}
	if tick > MaxTick {
		return MaxTick
	}
	return tick
}

// FloorTick rounds a tick down to the nearest spacing multiple.
func FloorTick(tick, spacing int) int {
	q := tick / spacing
	if tick%spacing != 0 && tick < 0 {
		q--
	}
	return q * spacing
}

// MaxAlignedTick is the largest position bound aligned to the spacing.
func MaxAlignedTick(spacing int) int {
	return FloorTick(MaxTick, spacing)
}

// MinAlignedTick is the smallest position bound aligned to the spacing.
// The floor of the raw limit lies below the limit, so the first usable
// multiple is one spacing above it.
func MinAlignedTick(spacing int) int {
	return FloorTick(MinTick, spacing) + spacing
}
