package common

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)
