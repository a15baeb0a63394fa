package indexer

// Wire shapes of the indexer REST and websocket APIs. All decimal values
// travel as strings; conversion to fixed.Point happens in conv.go.

type priceLevelPayload struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Total    string `json:"total"`
}

type orderbookPayload struct {
	Sequence uint64              `json:"sequence"`
	Buys     []priceLevelPayload `json:"buys"`
	Sells    []priceLevelPayload `json:"sells"`
}

type orderbookResponse struct {
	Orderbook orderbookPayload `json:"orderbook"`
}

type bankBalancePayload struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type bankBalancesResponse struct {
	Balances []bankBalancePayload `json:"balances"`
}

type depositPayload struct {
	AvailableBalance string `json:"availableBalance"`
	TotalBalance     string `json:"totalBalance"`
}

type subaccountBalancePayload struct {
	SubaccountID string         `json:"subaccountId"`
	Denom        string         `json:"denom"`
	Deposit      depositPayload `json:"deposit"`
}

type subaccountBalancesResponse struct {
	Balances []subaccountBalancePayload `json:"balances"`
}

type positionPayload struct {
	MarketID         string `json:"marketId"`
	SubaccountID     string `json:"subaccountId"`
	Denom            string `json:"denom"`
	Direction        string `json:"direction"`
	Quantity         string `json:"quantity"`
	EntryPrice       string `json:"entryPrice"`
	Margin           string `json:"margin"`
	MarkPrice        string `json:"markPrice"`
	LiquidationPrice string `json:"liquidationPrice"`
}

type positionsResponse struct {
	Positions []positionPayload `json:"positions"`
}

type markPriceResponse struct {
	MarketID string `json:"marketId"`
	Price    string `json:"price"`
}

type tokenPayload struct {
	Denom    string `json:"denom"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	UsdPrice string `json:"usdPrice"`
}

type marketPayload struct {
	MarketID               string       `json:"marketId"`
	Slug                   string       `json:"slug"`
	Type                   string       `json:"type"`
	BaseToken              tokenPayload `json:"baseToken"`
	QuoteToken             tokenPayload `json:"quoteToken"`
	PriceDecimals          int          `json:"priceDecimals"`
	PriceTensMultiplier    int          `json:"priceTensMultiplier"`
	QuantityTensMultiplier int          `json:"quantityTensMultiplier"`
	MinPriceTickSize       string       `json:"minPriceTickSize"`
	MinQuantityTickSize    string       `json:"minQuantityTickSize"`
	MaintenanceMarginRatio string       `json:"maintenanceMarginRatio"`
}

type marketsResponse struct {
	Markets []marketPayload `json:"markets"`
}

// streamRequest is the client-to-server control frame.
type streamRequest struct {
	Type     string `json:"type"`
	Channel  string `json:"channel"`
	MarketID string `json:"marketId,omitempty"`
}

type levelUpdatePayload struct {
	Side     string `json:"side"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Total    string `json:"total"`
	IsActive bool   `json:"isActive"`
}

// streamMessage is the server-to-client frame. Exactly one of Updates or
// Orderbook is populated depending on the channel.
type streamMessage struct {
	Channel   string               `json:"channel"`
	MarketID  string               `json:"marketId"`
	Sequence  uint64               `json:"sequence"`
	Timestamp int64                `json:"timestamp"`
	Updates   []levelUpdatePayload `json:"updates,omitempty"`
	Orderbook *orderbookPayload    `json:"orderbook,omitempty"`
}

const (
	channelOrderbookUpdate   = "orderbook_update"
	channelOrderbookSnapshot = "orderbook_snapshot"

	requestSubscribe   = "subscribe"
	requestUnsubscribe = "unsubscribe"
)
