package amm

import "math"

// Quantities returns the token amounts represented by a liquidity value
// over the price range [lowerPrice, upperPrice] at the given pool price.
// Below the range the position is entirely token X, above it entirely
// token Y, and inside it a mix of both.
func Quantities(liquidity, lowerPrice, upperPrice, poolPrice float64) (x, y float64) {
	price := poolPrice
	if price < lowerPrice {
		price = lowerPrice
	}
	if price > upperPrice {
		price = upperPrice
	}
	x = liquidity * (1/math.Sqrt(price) - 1/math.Sqrt(upperPrice))
	y = liquidity * (math.Sqrt(price) - math.Sqrt(lowerPrice))
	return x, y
}

// Mint computes the liquidity obtained by depositing up to x and y into
// the price range [lowerPrice, upperPrice] at the given pool price, along
// with the amounts actually consumed. Consumed amounts never exceed the
// offered balances; the caller keeps the remainder.
//
// With the pool price inside the range, two candidate liquidity values
// exist, one per binding token. The Y-funded candidate is tried first;
// the X-funded candidate applies only when the implied X requirement
// exceeds the offered X balance.
func Mint(x, y, lowerPrice, upperPrice, poolPrice float64) (liquidity, usedX, usedY float64) {
	sqrtLower := math.Sqrt(lowerPrice)
	sqrtUpper := math.Sqrt(upperPrice)

	if poolPrice <= lowerPrice {
		liquidity = x / (1/sqrtLower - 1/sqrtUpper)
		return liquidity, x, 0
	}
	if poolPrice >= upperPrice {
		liquidity = y / (sqrtUpper - sqrtLower)
		return liquidity, 0, y
	}

	sqrtPool := math.Sqrt(poolPrice)

	fromY := y / (sqrtPool - sqrtLower)
	impliedX := fromY * (1/sqrtPool - 1/sqrtUpper)
	if impliedX <= x {
		return fromY, impliedX, y
	}

	fromX := x / (1/sqrtPool - 1/sqrtUpper)
	impliedY := fromX * (sqrtPool - sqrtLower)
	return fromX, x, impliedY
}
