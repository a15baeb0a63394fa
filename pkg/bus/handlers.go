package bus

import (
	"context"

	"github.com/rishi95122/helix-core/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type OrderbookSnapshotEventHandler EventHandler[common.OrderbookSnapshot]
type OrderbookUpdateEventHandler EventHandler[[]common.OrderbookUpdate]
type BankBalanceEventHandler EventHandler[common.BankBalance]
type SubaccountBalanceEventHandler EventHandler[common.SubaccountBalance]
type PositionEventHandler EventHandler[common.Position]
type MarkPriceEventHandler EventHandler[common.MarkPrice]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
