package middleware

import (
	"context"

	"github.com/rishi95122/helix-core/pkg/bus"
	"github.com/rishi95122/helix-core/pkg/common"
	"go.uber.org/zap"
)

type Telemetry struct {
	logger *zap.Logger

	orderbookSnapshotEventCounter int64
	orderbookUpdateEventCounter   int64
	bankBalanceEventCounter       int64
	subaccountBalanceEventCounter int64
	positionEventCounter          int64
	markPriceEventCounter         int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithOrderbookSnapshot(handler bus.OrderbookSnapshotEventHandler) bus.OrderbookSnapshotEventHandler {
	return func(ctx context.Context, snapshot common.OrderbookSnapshot) {
		t.orderbookSnapshotEventCounter++
		handler(ctx, snapshot)
	}
}

func (t *Telemetry) WithOrderbookUpdate(handler bus.OrderbookUpdateEventHandler) bus.OrderbookUpdateEventHandler {
	return func(ctx context.Context, updates []common.OrderbookUpdate) {
		t.orderbookUpdateEventCounter++
		handler(ctx, updates)
	}
}

func (t *Telemetry) WithBankBalance(handler bus.BankBalanceEventHandler) bus.BankBalanceEventHandler {
	return func(ctx context.Context, balance common.BankBalance) {
		t.bankBalanceEventCounter++
		handler(ctx, balance)
	}
}

func (t *Telemetry) WithSubaccountBalance(handler bus.SubaccountBalanceEventHandler) bus.SubaccountBalanceEventHandler {
	return func(ctx context.Context, balance common.SubaccountBalance) {
		t.subaccountBalanceEventCounter++
		handler(ctx, balance)
	}
}

func (t *Telemetry) WithPosition(handler bus.PositionEventHandler) bus.PositionEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithMarkPrice(handler bus.MarkPriceEventHandler) bus.MarkPriceEventHandler {
	return func(ctx context.Context, markPrice common.MarkPrice) {
		t.markPriceEventCounter++
		handler(ctx, markPrice)
	}
}

func (t *Telemetry) PrintStatistics() {
	t.logger.Info("event statistics",
		zap.Int64("orderbook_snapshot_events", t.orderbookSnapshotEventCounter),
		zap.Int64("orderbook_update_events", t.orderbookUpdateEventCounter),
		zap.Int64("bank_balance_events", t.bankBalanceEventCounter),
		zap.Int64("subaccount_balance_events", t.subaccountBalanceEventCounter),
		zap.Int64("position_events", t.positionEventCounter),
		zap.Int64("mark_price_events", t.markPriceEventCounter))
}
