package common

import (
	"time"

	"github.com/rishi95122/helix-core/pkg/utility"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// PriceLevel is one resting aggregate level of an order book side. Total is
// the notional carried by the upstream feed for that level.
type PriceLevel struct {
	Price    fixed.Point `json:"price"`
	Quantity fixed.Point `json:"quantity"`
	Total    fixed.Point `json:"total"`
}

// OrderbookSnapshot is a full point-in-time book for one market. Buys are
// strictly descending by price, sells strictly ascending, no duplicate price
// per side. Sequence is the upstream freshness authority.
type OrderbookSnapshot struct {
	MarketID string       `json:"market_id"`
	Sequence uint64       `json:"sequence"`
	Buys     []PriceLevel `json:"buys"`
	Sells    []PriceLevel `json:"sells"`

	Source    string          `json:"src,omitempty"`
	TraceID   utility.TraceID `json:"tid,omitempty"`
	TimeStamp time.Time       `json:"ts"`
}

// OrderbookUpdate is one incremental level change delivered by the stream.
// A zero quantity or an inactive flag removes the level.
type OrderbookUpdate struct {
	MarketID string      `json:"market_id"`
	Sequence uint64      `json:"sequence"`
	Side     Side        `json:"side"`
	Price    fixed.Point `json:"price"`
	Quantity fixed.Point `json:"quantity"`
	Total    fixed.Point `json:"total"`
	IsActive bool        `json:"is_active"`

	Source    string          `json:"src,omitempty"`
	TraceID   utility.TraceID `json:"tid,omitempty"`
	TimeStamp time.Time       `json:"ts"`
}
