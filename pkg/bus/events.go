package bus

type EventId uint8

const (
	OrderbookSnapshotEvent EventId = iota
	OrderbookUpdateEvent
	BankBalanceEvent
	SubaccountBalanceEvent
	PositionEvent
	MarkPriceEvent
)

func (id EventId) String() string {
	switch id {
	case OrderbookSnapshotEvent:
		return "orderbook_snapshot"
	case OrderbookUpdateEvent:
		return "orderbook_update"
	case BankBalanceEvent:
		return "bank_balance"
	case SubaccountBalanceEvent:
		return "subaccount_balance"
	case PositionEvent:
		return "position"
	case MarkPriceEvent:
		return "mark_price"
	default:
		return "unknown"
	}
}
