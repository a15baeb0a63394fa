package indexer

import (
	"log/slog"
	"time"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

const sourceName = "indexer"

// toPriceLevels decodes wire levels into common levels. A level with an
// unparseable price or quantity is dropped with a warning; the remainder of
// the batch is kept.
func toPriceLevels(marketID string, payloads []priceLevelPayload) []common.PriceLevel {
	levels := make([]common.PriceLevel, 0, len(payloads))
	for _, p := range payloads {
		price, err := fixed.Parse(p.Price)
		if err != nil {
			slog.Warn("dropping malformed price level", "market_id", marketID, "price", p.Price, "error", err)
			continue
		}
		quantity, err := fixed.Parse(p.Quantity)
		if err != nil {
			slog.Warn("dropping malformed price level", "market_id", marketID, "quantity", p.Quantity, "error", err)
			continue
		}
		total, err := fixed.Parse(p.Total)
		if err != nil {
			total = price.Mul(quantity)
		}
		levels = append(levels, common.PriceLevel{
			Price:    price,
			Quantity: quantity,
			Total:    total,
		})
	}
	return levels
}

func toSnapshot(marketID string, payload orderbookPayload) common.OrderbookSnapshot {
	return common.OrderbookSnapshot{
		MarketID:  marketID,
		Sequence:  payload.Sequence,
		Buys:      toPriceLevels(marketID, payload.Buys),
		Sells:     toPriceLevels(marketID, payload.Sells),
		Source:    sourceName,
		TraceID:   utility.CreateTraceID(),
		TimeStamp: time.Now(),
	}
}

func toUpdates(msg streamMessage) []common.OrderbookUpdate {
	timeStamp := time.UnixMilli(msg.Timestamp)
	if msg.Timestamp == 0 {
		timeStamp = time.Now()
	}

	updates := make([]common.OrderbookUpdate, 0, len(msg.Updates))
	for _, u := range msg.Updates {
		side := common.Side(u.Side)
		if side != common.SideBuy && side != common.SideSell {
			slog.Warn("dropping malformed level update", "market_id", msg.MarketID, "side", u.Side)
			continue
		}
		price, err := fixed.Parse(u.Price)
		if err != nil {
			slog.Warn("dropping malformed level update", "market_id", msg.MarketID, "price", u.Price, "error", err)
			continue
		}
		quantity, err := fixed.Parse(u.Quantity)
		if err != nil {
			slog.Warn("dropping malformed level update", "market_id", msg.MarketID, "quantity", u.Quantity, "error", err)
			continue
		}
		total, err := fixed.Parse(u.Total)
		if err != nil {
			total = price.Mul(quantity)
		}
		updates = append(updates, common.OrderbookUpdate{
			MarketID:  msg.MarketID,
			Sequence:  msg.Sequence,
			Side:      side,
			Price:     price,
			Quantity:  quantity,
			Total:     total,
			IsActive:  u.IsActive,
			Source:    sourceName,
			TraceID:   utility.CreateTraceID(),
			TimeStamp: timeStamp,
		})
	}
	return updates
}

func toBankBalances(payloads []bankBalancePayload) []common.BankBalance {
	balances := make([]common.BankBalance, 0, len(payloads))
	for _, p := range payloads {
		amount, err := fixed.Parse(p.Amount)
		if err != nil {
			slog.Warn("dropping malformed bank balance", "denom", p.Denom, "amount", p.Amount, "error", err)
			continue
		}
		balances = append(balances, common.BankBalance{
			Denom:     p.Denom,
			Amount:    amount,
			Source:    sourceName,
			TraceID:   utility.CreateTraceID(),
			TimeStamp: time.Now(),
		})
	}
	return balances
}

func toSubaccountBalances(payloads []subaccountBalancePayload) []common.SubaccountBalance {
	balances := make([]common.SubaccountBalance, 0, len(payloads))
	for _, p := range payloads {
		available, err := fixed.Parse(p.Deposit.AvailableBalance)
		if err != nil {
			slog.Warn("dropping malformed subaccount balance", "denom", p.Denom, "available", p.Deposit.AvailableBalance, "error", err)
			continue
		}
		total, err := fixed.Parse(p.Deposit.TotalBalance)
		if err != nil {
			slog.Warn("dropping malformed subaccount balance", "denom", p.Denom, "total", p.Deposit.TotalBalance, "error", err)
			continue
		}
		balances = append(balances, common.SubaccountBalance{
			SubaccountID:     p.SubaccountID,
			Denom:            p.Denom,
			AvailableBalance: available,
			TotalBalance:     total,
			Source:           sourceName,
			TraceID:          utility.CreateTraceID(),
			TimeStamp:        time.Now(),
		})
	}
	return balances
}

func toPositions(payloads []positionPayload) []common.Position {
	positions := make([]common.Position, 0, len(payloads))
	for _, p := range payloads {
		direction := common.Direction(p.Direction)
		if direction != common.DirectionLong && direction != common.DirectionShort {
			slog.Warn("dropping malformed position", "market_id", p.MarketID, "direction", p.Direction)
			continue
		}
		quantity, err := fixed.Parse(p.Quantity)
		if err != nil {
			slog.Warn("dropping malformed position", "market_id", p.MarketID, "quantity", p.Quantity, "error", err)
			continue
		}
		entryPrice, err := fixed.Parse(p.EntryPrice)
		if err != nil {
			slog.Warn("dropping malformed position", "market_id", p.MarketID, "entry_price", p.EntryPrice, "error", err)
			continue
		}
		margin, err := fixed.Parse(p.Margin)
		if err != nil {
			slog.Warn("dropping malformed position", "market_id", p.MarketID, "margin", p.Margin, "error", err)
			continue
		}
		markPrice, err := fixed.Parse(p.MarkPrice)
		if err != nil {
			markPrice = fixed.Zero
		}
		liquidationPrice, err := fixed.Parse(p.LiquidationPrice)
		if err != nil {
			liquidationPrice = fixed.Zero
		}
		positions = append(positions, common.Position{
			MarketID:         p.MarketID,
			SubaccountID:     p.SubaccountID,
			Denom:            p.Denom,
			Direction:        direction,
			Quantity:         quantity,
			EntryPrice:       entryPrice,
			Margin:           margin,
			MarkPrice:        markPrice,
			LiquidationPrice: liquidationPrice,
			Source:           sourceName,
			TraceID:          utility.CreateTraceID(),
			TimeStamp:        time.Now(),
		})
	}
	return positions
}

func toToken(p tokenPayload) common.Token {
	usdPrice, err := fixed.Parse(p.UsdPrice)
	if err != nil {
		usdPrice = fixed.Zero
	}
	return common.Token{
		Denom:    p.Denom,
		Symbol:   p.Symbol,
		Decimals: p.Decimals,
		UsdPrice: usdPrice,
	}
}

func toMarket(p marketPayload) common.Market {
	minPriceTick, err := fixed.Parse(p.MinPriceTickSize)
	if err != nil {
		minPriceTick = fixed.Zero
	}
	minQuantityTick, err := fixed.Parse(p.MinQuantityTickSize)
	if err != nil {
		minQuantityTick = fixed.Zero
	}
	mmr, err := fixed.Parse(p.MaintenanceMarginRatio)
	if err != nil {
		mmr = fixed.Zero
	}
	return common.Market{
		ID:                     p.MarketID,
		Slug:                   p.Slug,
		Type:                   common.MarketType(p.Type),
		BaseToken:              toToken(p.BaseToken),
		QuoteToken:             toToken(p.QuoteToken),
		PriceDecimals:          p.PriceDecimals,
		PriceTensMultiplier:    p.PriceTensMultiplier,
		QuantityTensMultiplier: p.QuantityTensMultiplier,
		MinPriceTickSize:       minPriceTick,
		MinQuantityTickSize:    minQuantityTick,
		MaintenanceMarginRatio: mmr,
	}
}
