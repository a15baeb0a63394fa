package orderbook

import (
	"testing"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

func level(price, quantity string) common.PriceLevel {
	return common.PriceLevel{
		Price:    fixed.MustParse(price),
		Quantity: fixed.MustParse(quantity),
		Total:    fixed.MustParse(price).Mul(fixed.MustParse(quantity)),
	}
}

func update(sequence uint64, side common.Side, price, quantity string) common.OrderbookUpdate {
	return common.OrderbookUpdate{
		MarketID: "inj-usdt",
		Sequence: sequence,
		Side:     side,
		Price:    fixed.MustParse(price),
		Quantity: fixed.MustParse(quantity),
		Total:    fixed.MustParse(price).Mul(fixed.MustParse(quantity)),
		IsActive: true,
	}
}

func snapshot(sequence uint64, buys, sells []common.PriceLevel) common.OrderbookSnapshot {
	return common.OrderbookSnapshot{
		MarketID: "inj-usdt",
		Sequence: sequence,
		Buys:     buys,
		Sells:    sells,
	}
}

func assertSorted(t *testing.T, book common.OrderbookSnapshot) {
	t.Helper()
	for i := 1; i < len(book.Buys); i++ {
		if !book.Buys[i-1].Price.Gt(book.Buys[i].Price) {
			t.Errorf("buys not strictly descending at %d: %s then %s",
				i, book.Buys[i-1].Price, book.Buys[i].Price)
		}
	}
	for i := 1; i < len(book.Sells); i++ {
		if !book.Sells[i-1].Price.Lt(book.Sells[i].Price) {
			t.Errorf("sells not strictly ascending at %d: %s then %s",
				i, book.Sells[i-1].Price, book.Sells[i].Price)
		}
	}
}

func assertLevels(t *testing.T, got []common.PriceLevel, want [][2]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Price.String() != w[0] || got[i].Quantity.String() != w[1] {
			t.Errorf("level %d = %s@%s; want %s@%s",
				i, got[i].Quantity, got[i].Price, w[1], w[0])
		}
	}
}

func TestReconciler_FirstSnapshot(t *testing.T) {
	r := NewReconciler("inj-usdt")

	book := r.ApplySnapshot(snapshot(7,
		[]common.PriceLevel{level("9.5", "10"), level("9.8", "5")},
		[]common.PriceLevel{level("10.2", "3"), level("10.1", "4")},
	))

	if book.Sequence != 7 {
		t.Errorf("sequence = %d; want 7", book.Sequence)
	}
	assertSorted(t, book)
	assertLevels(t, book.Buys, [][2]string{{"9.8", "5"}, {"9.5", "10"}})
	assertLevels(t, book.Sells, [][2]string{{"10.1", "4"}, {"10.2", "3"}})
}

func TestReconciler_FreshSnapshotReplacesBook(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(5,
		[]common.PriceLevel{level("9.0", "1")},
		[]common.PriceLevel{level("11.0", "1")},
	))

	book := r.ApplySnapshot(snapshot(9,
		[]common.PriceLevel{level("9.5", "2")},
		nil,
	))

	if book.Sequence != 9 {
		t.Errorf("sequence = %d; want 9", book.Sequence)
	}
	// A fresh snapshot is the new baseline; levels absent from it are gone.
	assertLevels(t, book.Buys, [][2]string{{"9.5", "2"}})
	if len(book.Sells) != 0 {
		t.Errorf("expected empty sell side, got %d levels", len(book.Sells))
	}
}

func TestReconciler_StaleSnapshotKeepsSequenceButMergesLevels(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(10,
		[]common.PriceLevel{level("9.5", "10")},
		[]common.PriceLevel{level("10.5", "10")},
	))

	book := r.ApplySnapshot(snapshot(5,
		[]common.PriceLevel{level("9.4", "3")},
		nil,
	))

	if book.Sequence != 10 {
		t.Errorf("stale snapshot moved sequence to %d; want 10", book.Sequence)
	}
	// Retained book wins the sequence, but the fetched levels still merge in.
	assertLevels(t, book.Buys, [][2]string{{"9.5", "10"}, {"9.4", "3"}})
	assertLevels(t, book.Sells, [][2]string{{"10.5", "10"}})
	assertSorted(t, book)
}

func TestReconciler_ApplyUpdates(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(10,
		[]common.PriceLevel{level("9.5", "10"), level("9.4", "8")},
		[]common.PriceLevel{level("10.1", "4")},
	))

	book := r.ApplyUpdates([]common.OrderbookUpdate{
		update(11, common.SideBuy, "9.5", "12"),  // replace
		update(11, common.SideBuy, "9.6", "1"),   // insert
		update(11, common.SideSell, "10.1", "0"), // remove
		update(11, common.SideSell, "10.3", "2"), // insert
	})

	if book.Sequence != 11 {
		t.Errorf("sequence = %d; want 11", book.Sequence)
	}
	assertSorted(t, book)
	assertLevels(t, book.Buys, [][2]string{{"9.6", "1"}, {"9.5", "12"}, {"9.4", "8"}})
	assertLevels(t, book.Sells, [][2]string{{"10.3", "2"}})
}

func TestReconciler_UpdatesAreIdempotent(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(10,
		[]common.PriceLevel{level("9.5", "10")},
		[]common.PriceLevel{level("10.1", "4")},
	))

	batch := []common.OrderbookUpdate{
		update(12, common.SideBuy, "9.5", "7"),
		update(12, common.SideSell, "10.1", "0"),
	}

	first := r.ApplyUpdates(batch)
	second := r.ApplyUpdates(batch)

	if first.Sequence != second.Sequence {
		t.Errorf("sequence changed on duplicate batch: %d then %d", first.Sequence, second.Sequence)
	}
	assertLevels(t, second.Buys, [][2]string{{"9.5", "7"}})
	if len(second.Sells) != 0 {
		t.Errorf("expected empty sells after duplicate removal, got %d", len(second.Sells))
	}
}

func TestReconciler_SupersededBatchDropped(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(10,
		[]common.PriceLevel{level("9.5", "10")},
		nil,
	))

	book := r.ApplyUpdates([]common.OrderbookUpdate{
		update(4, common.SideBuy, "9.5", "99"),
		update(4, common.SideBuy, "1.0", "1"),
	})

	if book.Sequence != 10 {
		t.Errorf("sequence = %d; want 10", book.Sequence)
	}
	assertLevels(t, book.Buys, [][2]string{{"9.5", "10"}})
}

func TestReconciler_SequenceMonotonicUnderInterleaving(t *testing.T) {
	r := NewReconciler("inj-usdt")

	steps := []func() common.OrderbookSnapshot{
		func() common.OrderbookSnapshot {
			return r.ApplyUpdates([]common.OrderbookUpdate{update(3, common.SideBuy, "9.0", "1")})
		},
		func() common.OrderbookSnapshot {
			return r.ApplySnapshot(snapshot(2, []common.PriceLevel{level("8.9", "5")}, nil))
		},
		func() common.OrderbookSnapshot {
			return r.ApplyUpdates([]common.OrderbookUpdate{update(6, common.SideSell, "10.0", "2")})
		},
		func() common.OrderbookSnapshot {
			return r.ApplySnapshot(snapshot(4, nil, []common.PriceLevel{level("10.4", "1")}))
		},
		func() common.OrderbookSnapshot {
			return r.ApplyUpdates([]common.OrderbookUpdate{update(5, common.SideBuy, "9.1", "1")})
		},
	}

	last := uint64(0)
	for i, step := range steps {
		book := step()
		if book.Sequence < last {
			t.Errorf("step %d regressed sequence from %d to %d", i, last, book.Sequence)
		}
		last = book.Sequence
		assertSorted(t, book)
	}

	if last != 6 {
		t.Errorf("final sequence = %d; want 6", last)
	}
}

func TestReconciler_UpdatesBeforeAnySnapshot(t *testing.T) {
	r := NewReconciler("inj-usdt")

	book := r.ApplyUpdates([]common.OrderbookUpdate{
		update(3, common.SideBuy, "9.0", "1"),
	})

	if book.Sequence != 3 {
		t.Errorf("sequence = %d; want 3", book.Sequence)
	}
	assertLevels(t, book.Buys, [][2]string{{"9.0", "1"}})
}

func TestReconciler_InactiveUpdateRemovesLevel(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(1,
		[]common.PriceLevel{level("9.5", "10")},
		nil,
	))

	inactive := update(2, common.SideBuy, "9.5", "10")
	inactive.IsActive = false

	book := r.ApplyUpdates([]common.OrderbookUpdate{inactive})
	if len(book.Buys) != 0 {
		t.Errorf("inactive update should remove the level, got %d levels", len(book.Buys))
	}
}

func TestReconciler_Reset(t *testing.T) {
	r := NewReconciler("inj-usdt")
	r.ApplySnapshot(snapshot(10, []common.PriceLevel{level("9.5", "10")}, nil))

	r.Reset()

	if _, ok := r.Book(); ok {
		t.Error("Book() should report absent after Reset")
	}
	if r.Sequence() != 0 {
		t.Errorf("Sequence() = %d after Reset; want 0", r.Sequence())
	}

	// A snapshot that raced the reset is accepted as a first snapshot.
	book := r.ApplySnapshot(snapshot(2, []common.PriceLevel{level("1.0", "1")}, nil))
	if book.Sequence != 2 {
		t.Errorf("post-reset snapshot sequence = %d; want 2", book.Sequence)
	}
}

func TestReconciler_DuplicatePricesCollapse(t *testing.T) {
	r := NewReconciler("inj-usdt")

	book := r.ApplySnapshot(snapshot(1,
		[]common.PriceLevel{level("9.5", "10"), level("9.5", "4")},
		nil,
	))

	assertLevels(t, book.Buys, [][2]string{{"9.5", "4"}})
}
