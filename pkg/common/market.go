package common

import (
	"go.uber.org/zap"

	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

type MarketType string

const (
	MarketTypeSpot         MarketType = "spot"
	MarketTypeDerivative   MarketType = "derivative"
	MarketTypeBinaryOption MarketType = "binary_option"
)

type Token struct {
	Denom    string      `json:"denom"`
	Symbol   string      `json:"symbol"`
	Decimals int         `json:"decimals"`
	UsdPrice fixed.Point `json:"usd_price"`
}

// Market carries the per-market trading parameters resolved once at load
// time. MaintenanceMarginRatio is only meaningful for derivative markets.
type Market struct {
	ID   string     `json:"market_id"`
	Slug string     `json:"slug"`
	Type MarketType `json:"type"`

	BaseToken  Token `json:"base_token"`
	QuoteToken Token `json:"quote_token"`

	PriceDecimals          int         `json:"price_decimals"`
	PriceTensMultiplier    int         `json:"price_tens_multiplier"`
	QuantityTensMultiplier int         `json:"quantity_tens_multiplier"`
	MinPriceTickSize       fixed.Point `json:"min_price_tick_size"`
	MinQuantityTickSize    fixed.Point `json:"min_quantity_tick_size"`

	MaintenanceMarginRatio fixed.Point `json:"maintenance_margin_ratio,omitempty"`
}

func (m Market) IsDerivative() bool {
	return m.Type == MarketTypeDerivative || m.Type == MarketTypeBinaryOption
}

func (m Market) Fields() []zap.Field {
	return []zap.Field{
		zap.String("market_id", m.ID),
		zap.String("slug", m.Slug),
		zap.String("type", string(m.Type)),
		zap.String("quote_denom", m.QuoteToken.Denom),
	}
}
