package orderbook

import (
	"context"
	"log/slog"

	"github.com/rishi95122/helix-core/pkg/common"
)

// BookHandler receives every successfully merged book.
type BookHandler func(common.OrderbookSnapshot)

// Manager owns one reconciler per subscribed market and routes feed events to
// it. All methods must be called from the router goroutine; the manager
// carries no locks by design, the bus serializes every mutation.
type Manager struct {
	reconcilers map[string]*Reconciler
	onBook      BookHandler
}

func NewManager(onBook BookHandler) *Manager {
	return &Manager{
		reconcilers: make(map[string]*Reconciler),
		onBook:      onBook,
	}
}

// Subscribe registers a market for reconciliation. Subscribing twice returns
// the existing reconciler untouched.
func (m *Manager) Subscribe(marketID string) *Reconciler {
	if reconciler, ok := m.reconcilers[marketID]; ok {
		return reconciler
	}
	reconciler := NewReconciler(marketID)
	m.reconcilers[marketID] = reconciler
	slog.Info("orderbook subscribed", "market_id", marketID)
	return reconciler
}

// Unsubscribe resets and removes the market's book. Snapshot responses still
// in flight will find no reconciler and are discarded.
func (m *Manager) Unsubscribe(marketID string) {
	reconciler, ok := m.reconcilers[marketID]
	if !ok {
		return
	}
	reconciler.Reset()
	delete(m.reconcilers, marketID)
	slog.Info("orderbook unsubscribed", "market_id", marketID)
}

func (m *Manager) Book(marketID string) (common.OrderbookSnapshot, bool) {
	reconciler, ok := m.reconcilers[marketID]
	if !ok {
		return common.OrderbookSnapshot{}, false
	}
	return reconciler.Book()
}

// HandleSnapshot is the bus handler for polled snapshot results.
func (m *Manager) HandleSnapshot(_ context.Context, snapshot common.OrderbookSnapshot) {
	reconciler, ok := m.reconcilers[snapshot.MarketID]
	if !ok {
		slog.Debug("snapshot for unsubscribed market dropped", "market_id", snapshot.MarketID)
		return
	}
	merged := reconciler.ApplySnapshot(snapshot)
	if m.onBook != nil {
		m.onBook(merged)
	}
}

// HandleUpdates is the bus handler for streamed update batches. A batch may
// span markets; each market's slice is merged independently.
func (m *Manager) HandleUpdates(_ context.Context, updates []common.OrderbookUpdate) {
	byMarket := make(map[string][]common.OrderbookUpdate)
	for _, update := range updates {
		byMarket[update.MarketID] = append(byMarket[update.MarketID], update)
	}

	for marketID, marketUpdates := range byMarket {
		reconciler, ok := m.reconcilers[marketID]
		if !ok {
			slog.Debug("updates for unsubscribed market dropped", "market_id", marketID)
			continue
		}
		merged := reconciler.ApplyUpdates(marketUpdates)
		if m.onBook != nil {
			m.onBook(merged)
		}
	}
}
