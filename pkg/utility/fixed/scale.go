package fixed

// Token amounts live on two scales: "base" is the human display scale and
// "wei" is the atomic integer scale. Every crossing carries an explicit token
// decimal count; the shift itself is exact.

func ToWei(v Point, decimals int) Point {
	return v.Shift(decimals)
}

func ToBase(v Point, decimals int) Point {
	return v.Shift(-decimals)
}

// RoundToAllowableAmount floors a wei amount to the nearest multiple of
// 10^tensMultiplier, the market's minimum tradable increment. This is the
// single lossy step in the pipeline; everything before it is exact.
func RoundToAllowableAmount(v Point, tensMultiplier int) Point {
	return v.Shift(-tensMultiplier).Floor().Shift(tensMultiplier)
}

// RoundToTick floors v to an integer multiple of tick. A result at or below
// zero collapses to the tick itself, so a rounded price is never non-positive.
func RoundToTick(v Point, tick Point) Point {
	if tick.Lte(Zero) {
		return v
	}
	rounded := v.Div(tick).Floor().Mul(tick)
	if rounded.Lte(Zero) {
		return tick
	}
	return rounded
}
