package common

import (
	"time"

	"github.com/rishi95122/helix-core/pkg/utility"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// Position is an open derivative position as reported by the account feed.
// All monetary fields are wei scale. The engine never mutates positions; it
// only folds them into balance and liquidation figures.
type Position struct {
	MarketID     string    `json:"market_id"`
	SubaccountID string    `json:"subaccount_id"`
	Denom        string    `json:"denom"`
	Direction    Direction `json:"direction"`

	Quantity         fixed.Point `json:"quantity"`
	EntryPrice       fixed.Point `json:"entry_price"`
	Margin           fixed.Point `json:"margin"`
	MarkPrice        fixed.Point `json:"mark_price"`
	LiquidationPrice fixed.Point `json:"liquidation_price"`

	Source    string          `json:"src,omitempty"`
	TraceID   utility.TraceID `json:"tid,omitempty"`
	TimeStamp time.Time       `json:"ts"`
}

// MarkPrice is the live oracle valuation for one market.
type MarkPrice struct {
	MarketID string      `json:"market_id"`
	Price    fixed.Point `json:"price"`

	Source    string          `json:"src,omitempty"`
	TraceID   utility.TraceID `json:"tid,omitempty"`
	TimeStamp time.Time       `json:"ts"`
}
