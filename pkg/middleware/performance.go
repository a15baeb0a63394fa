package middleware

import (
	"context"
	"time"

	"github.com/rishi95122/helix-core/pkg/bus"
	"github.com/rishi95122/helix-core/pkg/common"
	"go.uber.org/zap"
)

type Performance struct {
	logger *zap.Logger

	totalSnapshotHandlerDur  time.Duration
	totalUpdateHandlerDur    time.Duration
	totalBankBalHandlerDur   time.Duration
	totalSubaccBalHandlerDur time.Duration
	totalPositionHandlerDur  time.Duration
	totalMarkPriceHandlerDur time.Duration
}

func NewPerformance(logger *zap.Logger) *Performance {
	return &Performance{
		logger: logger,
	}
}

func (p *Performance) WithOrderbookSnapshot(handler bus.OrderbookSnapshotEventHandler) bus.OrderbookSnapshotEventHandler {
	return func(ctx context.Context, snapshot common.OrderbookSnapshot) {
		startTime := time.Now()
		handler(ctx, snapshot)
		p.totalSnapshotHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithOrderbookUpdate(handler bus.OrderbookUpdateEventHandler) bus.OrderbookUpdateEventHandler {
	return func(ctx context.Context, updates []common.OrderbookUpdate) {
		startTime := time.Now()
		handler(ctx, updates)
		p.totalUpdateHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithBankBalance(handler bus.BankBalanceEventHandler) bus.BankBalanceEventHandler {
	return func(ctx context.Context, balance common.BankBalance) {
		startTime := time.Now()
		handler(ctx, balance)
		p.totalBankBalHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithSubaccountBalance(handler bus.SubaccountBalanceEventHandler) bus.SubaccountBalanceEventHandler {
	return func(ctx context.Context, balance common.SubaccountBalance) {
		startTime := time.Now()
		handler(ctx, balance)
		p.totalSubaccBalHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithPosition(handler bus.PositionEventHandler) bus.PositionEventHandler {
	return func(ctx context.Context, position common.Position) {
		startTime := time.Now()
		handler(ctx, position)
		p.totalPositionHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) WithMarkPrice(handler bus.MarkPriceEventHandler) bus.MarkPriceEventHandler {
	return func(ctx context.Context, markPrice common.MarkPrice) {
		startTime := time.Now()
		handler(ctx, markPrice)
		p.totalMarkPriceHandlerDur += time.Since(startTime)
	}
}

func (p *Performance) PrintStatistics(t *Telemetry) {
	if t == nil {
		p.logger.Warn("Telemetry is nil; cannot compute performance statistics")
		return
	}

	var fields []zap.Field

	if t.orderbookSnapshotEventCounter > 0 {
		avgSnapshot := p.totalSnapshotHandlerDur / time.Duration(t.orderbookSnapshotEventCounter)
		if avgSnapshot > 0 {
			fields = append(fields,
				zap.Duration("orderbook_snapshot_avg_duration", avgSnapshot),
				zap.Duration("orderbook_snapshot_total_duration", p.totalSnapshotHandlerDur),
			)
		}
	}

	if t.orderbookUpdateEventCounter > 0 {
		avgUpdate := p.totalUpdateHandlerDur / time.Duration(t.orderbookUpdateEventCounter)
		if avgUpdate > 0 {
			fields = append(fields,
				zap.Duration("orderbook_update_avg_duration", avgUpdate),
				zap.Duration("orderbook_update_total_duration", p.totalUpdateHandlerDur),
			)
		}
	}

	if t.bankBalanceEventCounter > 0 {
		avgBankBal := p.totalBankBalHandlerDur / time.Duration(t.bankBalanceEventCounter)
		if avgBankBal > 0 {
			fields = append(fields,
				zap.Duration("bank_balance_avg_duration", avgBankBal),
				zap.Duration("bank_balance_total_duration", p.totalBankBalHandlerDur),
			)
		}
	}

	if t.subaccountBalanceEventCounter > 0 {
		avgSubaccBal := p.totalSubaccBalHandlerDur / time.Duration(t.subaccountBalanceEventCounter)
		if avgSubaccBal > 0 {
			fields = append(fields,
				zap.Duration("subaccount_balance_avg_duration", avgSubaccBal),
				zap.Duration("subaccount_balance_total_duration", p.totalSubaccBalHandlerDur),
			)
		}
	}

	if t.positionEventCounter > 0 {
		avgPosition := p.totalPositionHandlerDur / time.Duration(t.positionEventCounter)
		if avgPosition > 0 {
			fields = append(fields,
				zap.Duration("position_avg_duration", avgPosition),
				zap.Duration("position_total_duration", p.totalPositionHandlerDur),
			)
		}
	}

	if t.markPriceEventCounter > 0 {
		avgMarkPrice := p.totalMarkPriceHandlerDur / time.Duration(t.markPriceEventCounter)
		if avgMarkPrice > 0 {
			fields = append(fields,
				zap.Duration("mark_price_avg_duration", avgMarkPrice),
				zap.Duration("mark_price_total_duration", p.totalMarkPriceHandlerDur))
		}
	}

	p.logger.Info("performance statistics", fields...)
}
