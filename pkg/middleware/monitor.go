package middleware

import (
	"context"
	"log/slog"

	"github.com/rishi95122/helix-core/pkg/bus"
	"github.com/rishi95122/helix-core/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorOrderbookSnapshots
	MonitorOrderbookUpdates
	MonitorBankBalances
	MonitorSubaccountBalances
	MonitorPositions
	MonitorMarkPrices
)

type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) WithOrderbookSnapshot(handler bus.OrderbookSnapshotEventHandler) bus.OrderbookSnapshotEventHandler {
	return func(ctx context.Context, snapshot common.OrderbookSnapshot) {
		if m.flags&MonitorOrderbookSnapshots != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "orderbook_snapshot", snapshot)
		}
		handler(ctx, snapshot)
	}
}

func (m *Monitor) WithOrderbookUpdate(handler bus.OrderbookUpdateEventHandler) bus.OrderbookUpdateEventHandler {
	return func(ctx context.Context, updates []common.OrderbookUpdate) {
		if m.flags&MonitorOrderbookUpdates != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "orderbook_updates", updates)
		}
		handler(ctx, updates)
	}
}

func (m *Monitor) WithBankBalance(handler bus.BankBalanceEventHandler) bus.BankBalanceEventHandler {
	return func(ctx context.Context, balance common.BankBalance) {
		if m.flags&MonitorBankBalances != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "bank_balance", balance)
		}
		handler(ctx, balance)
	}
}

func (m *Monitor) WithSubaccountBalance(handler bus.SubaccountBalanceEventHandler) bus.SubaccountBalanceEventHandler {
	return func(ctx context.Context, balance common.SubaccountBalance) {
		if m.flags&MonitorSubaccountBalances != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "subaccount_balance", balance)
		}
		handler(ctx, balance)
	}
}

func (m *Monitor) WithPosition(handler bus.PositionEventHandler) bus.PositionEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.flags&MonitorPositions != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "position", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithMarkPrice(handler bus.MarkPriceEventHandler) bus.MarkPriceEventHandler {
	return func(ctx context.Context, markPrice common.MarkPrice) {
		if m.flags&MonitorMarkPrices != 0 || m.flags&MonitorAll != 0 {
			slog.Info("event", "mark_price", markPrice)
		}
		handler(ctx, markPrice)
	}
}
