package margin

import (
	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// All operations are total: business-invalid inputs (zero quantity, missing
// notional) map to Zero rather than an error, so callers rendering an order
// form never have to branch on failure.

// Calculate derives the required margin for a derivative order:
// quantity * price / leverage, floored to the market's allowable increment in
// wei scale and projected back to base scale.
func Calculate(quantity, price, leverage fixed.Point, tensMultiplier, quoteDecimals int) fixed.Point {
	if leverage.Lte(fixed.Zero) {
		return fixed.Zero
	}

	required := quantity.Mul(price).Div(leverage)
	inWei := fixed.ToWei(required, quoteDecimals)
	allowable := fixed.RoundToAllowableAmount(inWei, tensMultiplier)

	return fixed.ToBase(allowable, quoteDecimals)
}

// CalculateBinaryOptions prices binary options margin: a buy posts
// quantity * price, a sell posts quantity * (1 - price).
func CalculateBinaryOptions(quantity, price fixed.Point, side common.Side, tensMultiplier, quoteDecimals int) fixed.Point {
	var required fixed.Point
	if side == common.SideBuy {
		required = quantity.Mul(price)
	} else {
		required = quantity.Mul(fixed.One.Sub(price))
	}

	inWei := fixed.ToWei(required, quoteDecimals)
	allowable := fixed.RoundToAllowableAmount(inWei, tensMultiplier)

	return fixed.ToBase(allowable, quoteDecimals)
}

// LiquidationPrice solves the maintenance-margin boundary for a prospective
// position. Missing inputs yield Zero; a mathematically negative boundary is
// clamped to Zero since prices cannot go below it.
func LiquidationPrice(price, quantity, notionalWithLeverage fixed.Point, side common.Side, maintenanceMarginRatio fixed.Point) fixed.Point {
	if price.IsZero() || quantity.IsZero() || notionalWithLeverage.IsZero() {
		return fixed.Zero
	}

	notional := price.Mul(quantity)

	var numerator, denominator fixed.Point
	if side == common.SideBuy {
		numerator = notionalWithLeverage.Sub(notional)
		denominator = maintenanceMarginRatio.Sub(fixed.One).Mul(quantity)
	} else {
		numerator = notionalWithLeverage.Add(notional)
		denominator = maintenanceMarginRatio.Mul(quantity).Add(quantity)
	}

	if denominator.IsZero() {
		return fixed.Zero
	}

	liquidationPrice := numerator.Div(denominator)
	if liquidationPrice.IsNegative() {
		return fixed.Zero
	}
	return liquidationPrice
}

// MinTickPrice is the market's smallest price increment expressed on the
// chain (wei) scale of the quote token.
func MinTickPrice(market common.Market) fixed.Point {
	return ChainPrice(fixed.New(1, market.PriceDecimals), market.QuoteToken.Decimals)
}

// ChainPrice converts a display-scale derivative price to chain scale.
func ChainPrice(value fixed.Point, quoteDecimals int) fixed.Point {
	return fixed.ToWei(value, quoteDecimals)
}

// RoundedLiquidationPrice snaps a position's stored liquidation price to the
// market's minimum tick. Never returns a non-positive price: anything at or
// below zero collapses to the tick itself.
func RoundedLiquidationPrice(position common.Position, market common.Market) fixed.Point {
	minTickPrice := MinTickPrice(market)
	rounded := fixed.RoundToTick(position.LiquidationPrice, minTickPrice)
	if rounded.Lte(fixed.Zero) {
		return minTickPrice
	}
	return rounded
}
