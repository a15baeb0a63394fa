package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rishi95122/helix-core/pkg/common"
)

func TestBusRouter_Post(t *testing.T) {
	r := NewRouter(10)

	err := r.Post(OrderbookSnapshotEvent, common.OrderbookSnapshot{})
	if err != nil {
		t.Errorf("Post failed: %v", err)
	}

	if r.postCount.Load() != 1 {
		t.Errorf("Expected postCount=1, got %d", r.postCount.Load())
	}
}

func TestBusRouter_PostCapacityReached(t *testing.T) {
	r := NewRouter(1)

	err := r.Post(MarkPriceEvent, common.MarkPrice{})
	if err != nil {
		t.Errorf("First Post failed: %v", err)
	}

	err = r.Post(MarkPriceEvent, common.MarkPrice{})
	if err == nil {
		t.Error("Expected error when capacity reached")
	}

	if r.postFails.Load() != 1 {
		t.Errorf("Expected postFails=1, got %d", r.postFails.Load())
	}
}

func TestBusRouter_Exec(t *testing.T) {
	r := NewRouter(10)

	updateHandled := make(chan struct{})
	r.OrderbookUpdateHandler = func(ctx context.Context, updates []common.OrderbookUpdate) {
		if len(updates) != 2 {
			t.Errorf("Expected 2 updates, got %d", len(updates))
		}
		close(updateHandled)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Exec(ctx)

	updates := []common.OrderbookUpdate{
		{MarketID: "m1", Sequence: 1, Side: common.SideBuy},
		{MarketID: "m1", Sequence: 1, Side: common.SideSell},
	}
	if err := r.Post(OrderbookUpdateEvent, updates); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	select {
	case <-updateHandled:
	case <-time.After(time.Second):
		t.Fatal("update handler not called")
	}

	cancel()
	err := <-r.Done()
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if r.dispatchCount.Load() != 1 {
		t.Errorf("Expected dispatchCount=1, got %d", r.dispatchCount.Load())
	}
}

func TestBusRouter_DispatchWrongPayload(t *testing.T) {
	r := NewRouter(10)

	r.PositionHandler = func(ctx context.Context, position common.Position) {
		t.Error("handler must not run for a mistyped payload")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Exec(ctx)

	if err := r.Post(PositionEvent, "not-a-position"); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for r.dispatchFails.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("dispatch failure not recorded")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestBusRouter_NilHandlerIsNotAnError(t *testing.T) {
	r := NewRouter(10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Exec(ctx)

	if err := r.Post(BankBalanceEvent, common.BankBalance{}); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for r.dispatchCount.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("event never dispatched")
		}
		time.Sleep(time.Millisecond)
	}

	if r.dispatchFails.Load() != 0 {
		t.Errorf("nil handler should not count as dispatch failure, got %d", r.dispatchFails.Load())
	}
}

func TestBusRouter_MergeHandlers(t *testing.T) {
	var calls int
	h := MergeHandlers(
		func(ctx context.Context, mp common.MarkPrice) { calls++ },
		func(ctx context.Context, mp common.MarkPrice) { calls++ },
	)

	h(context.Background(), common.MarkPrice{})

	if calls != 2 {
		t.Errorf("Expected both handlers called, got %d", calls)
	}
}

func TestBusRouter_Statistics(t *testing.T) {
	r := NewRouter(10)

	_ = r.Post(MarkPriceEvent, common.MarkPrice{})
	_ = r.Post(MarkPriceEvent, common.MarkPrice{})

	stats := r.Statistics()
	if stats.PostCount != 2 {
		t.Errorf("Expected PostCount=2, got %d", stats.PostCount)
	}
	if stats.PostFails != 0 {
		t.Errorf("Expected PostFails=0, got %d", stats.PostFails)
	}
	if ratio := stats.PostFailRatio(); ratio != 0 {
		t.Errorf("Expected PostFailRatio=0, got %f", ratio)
	}
}

func TestBusRouter_StatisticsEventCounts(t *testing.T) {
	r := NewRouter(10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Exec(ctx)

	_ = r.Post(MarkPriceEvent, common.MarkPrice{})
	_ = r.Post(MarkPriceEvent, common.MarkPrice{})
	_ = r.Post(BankBalanceEvent, common.BankBalance{})

	deadline := time.Now().Add(time.Second)
	for r.dispatchCount.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("events never dispatched")
		}
		time.Sleep(time.Millisecond)
	}

	stats := r.Statistics()
	if got := stats.EventCounts[MarkPriceEvent]; got != 2 {
		t.Errorf("Expected 2 mark price dispatches, got %d", got)
	}
	if got := stats.EventCounts[BankBalanceEvent]; got != 1 {
		t.Errorf("Expected 1 bank balance dispatch, got %d", got)
	}
	if got := stats.EventCounts[PositionEvent]; got != 0 {
		t.Errorf("Expected 0 position dispatches, got %d", got)
	}
}

func TestBusStatistics_Ratios(t *testing.T) {
	stats := Statistics{
		RunTime:       2 * time.Second,
		PostCount:     3,
		PostFails:     1,
		DispatchCount: 4,
	}
	if got := stats.Throughput(); got != 2 {
		t.Errorf("Expected throughput=2, got %f", got)
	}
	if got := stats.PostFailRatio(); got != 0.25 {
		t.Errorf("Expected post fail ratio=0.25, got %f", got)
	}

	var empty Statistics
	if got := empty.Throughput(); got != 0 {
		t.Errorf("Expected zero throughput for empty statistics, got %f", got)
	}
	if got := empty.PostFailRatio(); got != 0 {
		t.Errorf("Expected zero fail ratio for empty statistics, got %f", got)
	}
}
