package orderbook

import (
	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// BestBid returns the highest resting buy level.
func BestBid(book common.OrderbookSnapshot) (common.PriceLevel, bool) {
	if len(book.Buys) == 0 {
		return common.PriceLevel{}, false
	}
	return book.Buys[0], true
}

// BestAsk returns the lowest resting sell level.
func BestAsk(book common.OrderbookSnapshot) (common.PriceLevel, bool) {
	if len(book.Sells) == 0 {
		return common.PriceLevel{}, false
	}
	return book.Sells[0], true
}

// MidPrice is the midpoint of the spread, present only when both sides rest.
func MidPrice(book common.OrderbookSnapshot) (fixed.Point, bool) {
	bid, hasBid := BestBid(book)
	ask, hasAsk := BestAsk(book)
	if !hasBid || !hasAsk {
		return fixed.Zero, false
	}
	return bid.Price.Add(ask.Price).DivInt(2), true
}

// Summary folds one side into its aggregate quantity and notional.
func Summary(records []common.PriceLevel) (quantity, total fixed.Point) {
	quantity = fixed.Zero
	total = fixed.Zero
	for _, record := range records {
		quantity = quantity.Add(record.Quantity)
		total = total.Add(record.Total)
	}
	return quantity, total
}

// MaxAmountWithin walks one side from the top and accumulates the quantity
// and notional fillable without crossing limitPrice. Buy levels fill while at
// or above the limit, sell levels while at or below it.
func MaxAmountWithin(records []common.PriceLevel, isBuy bool, limitPrice fixed.Point) (quantity, total fixed.Point) {
	quantity = fixed.Zero
	total = fixed.Zero
	for _, record := range records {
		if isBuy && record.Price.Lt(limitPrice) {
			break
		}
		if !isBuy && record.Price.Gt(limitPrice) {
			break
		}
		quantity = quantity.Add(record.Quantity)
		total = total.Add(record.Price.Mul(record.Quantity))
	}
	return quantity, total
}
