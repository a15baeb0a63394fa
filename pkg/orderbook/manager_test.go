package orderbook

import (
	"context"
	"testing"

	"github.com/rishi95122/helix-core/pkg/common"
)

func TestManager_SubscribeLifecycle(t *testing.T) {
	m := NewManager(nil)

	first := m.Subscribe("inj-usdt")
	second := m.Subscribe("inj-usdt")
	if first != second {
		t.Error("double subscribe should reuse the reconciler")
	}

	m.HandleSnapshot(context.Background(), snapshot(3, []common.PriceLevel{level("9", "1")}, nil))
	if _, ok := m.Book("inj-usdt"); !ok {
		t.Fatal("book missing after snapshot")
	}

	m.Unsubscribe("inj-usdt")
	if _, ok := m.Book("inj-usdt"); ok {
		t.Error("book should be gone after unsubscribe")
	}

	// Unsubscribing twice is a no-op.
	m.Unsubscribe("inj-usdt")
}

func TestManager_DropsEventsForUnsubscribedMarkets(t *testing.T) {
	published := 0
	m := NewManager(func(common.OrderbookSnapshot) { published++ })

	m.HandleSnapshot(context.Background(), snapshot(3, []common.PriceLevel{level("9", "1")}, nil))
	m.HandleUpdates(context.Background(), []common.OrderbookUpdate{update(4, common.SideBuy, "9", "2")})

	if published != 0 {
		t.Errorf("events for unsubscribed market published %d books", published)
	}
}

func TestManager_RepublishesMergedBooks(t *testing.T) {
	var books []common.OrderbookSnapshot
	m := NewManager(func(book common.OrderbookSnapshot) { books = append(books, book) })

	m.Subscribe("inj-usdt")
	m.HandleSnapshot(context.Background(), snapshot(3, []common.PriceLevel{level("9", "1")}, nil))
	m.HandleUpdates(context.Background(), []common.OrderbookUpdate{update(4, common.SideBuy, "9.1", "2")})

	if len(books) != 2 {
		t.Fatalf("expected 2 published books, got %d", len(books))
	}
	if books[1].Sequence != 4 {
		t.Errorf("second published sequence = %d; want 4", books[1].Sequence)
	}
	assertLevels(t, books[1].Buys, [][2]string{{"9.1", "2"}, {"9", "1"}})
}

func TestManager_UpdatesSpanningMarketsSplitPerBook(t *testing.T) {
	m := NewManager(nil)
	m.Subscribe("inj-usdt")
	m.Subscribe("btc-usdt")

	other := update(2, common.SideSell, "50000", "1")
	other.MarketID = "btc-usdt"

	m.HandleUpdates(context.Background(), []common.OrderbookUpdate{
		update(5, common.SideBuy, "9", "1"),
		other,
	})

	inj, _ := m.Book("inj-usdt")
	btc, _ := m.Book("btc-usdt")

	if inj.Sequence != 5 || len(inj.Buys) != 1 || len(inj.Sells) != 0 {
		t.Errorf("inj book wrong: seq=%d buys=%d sells=%d", inj.Sequence, len(inj.Buys), len(inj.Sells))
	}
	if btc.Sequence != 2 || len(btc.Sells) != 1 || len(btc.Buys) != 0 {
		t.Errorf("btc book wrong: seq=%d buys=%d sells=%d", btc.Sequence, len(btc.Buys), len(btc.Sells))
	}
}
