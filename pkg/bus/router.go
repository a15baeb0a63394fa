package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rishi95122/helix-core/pkg/common"
)

type event struct {
	id   EventId
	data interface{}
}

// Router is the single mutation point of the engine. All events, regardless
// of which goroutine produced them, are dispatched by the one goroutine
// running Exec, so handlers never need locks.
type Router struct {
	// Channels
	done   chan error
	events chan event

	// Handlers
	OrderbookSnapshotHandler OrderbookSnapshotEventHandler
	OrderbookUpdateHandler   OrderbookUpdateEventHandler
	BankBalanceHandler       BankBalanceEventHandler
	SubaccountBalanceHandler SubaccountBalanceEventHandler
	PositionHandler          PositionEventHandler
	MarkPriceHandler         MarkPriceEventHandler

	// Statistics
	runTime       time.Duration
	postCount     atomic.Uint64
	postFails     atomic.Uint64
	dispatchCount atomic.Uint64
	dispatchFails atomic.Uint64
	eventCounts   [eventKinds]atomic.Uint64
}

func NewRouter(eventCapacity int) *Router {
	return &Router{
		done:   make(chan error, 1),
		events: make(chan event, eventCapacity),
	}
}

// Post enqueues an event without blocking. A full queue is reported to the
// caller; nothing is ever dropped silently.
func (r *Router) Post(id EventId, data interface{}) error {
	select {
	case r.events <- event{id, data}:
		r.postCount.Add(1)
		return nil
	default:
		r.postFails.Add(1)
		return errors.New("event capacity reached")
	}
}

func (r *Router) Exec(ctx context.Context) {

	r.runTime = 0
	r.dispatchCount.Store(0)
	r.dispatchFails.Store(0)
	r.postCount.Store(0)
	r.postFails.Store(0)
	for i := range r.eventCounts {
		r.eventCounts[i].Store(0)
	}

	start := time.Now()
	defer func() {
		r.runTime += time.Since(start)
	}()

	for {
		select {
		case <-ctx.Done():
			r.done <- ctx.Err()
			return
		case ev := <-r.events:
			r.dispatchCount.Add(1)
			if int(ev.id) < eventKinds {
				r.eventCounts[ev.id].Add(1)
			}
			if err := r.dispatch(ctx, ev); err != nil {
				r.dispatchFails.Add(1)
				slog.Warn("dispatch failed", "error", err, "event", ev.id)
			}
		}
	}
}

func (r *Router) Done() <-chan error {
	return r.done
}

func (r *Router) Statistics() Statistics {
	stats := Statistics{
		RunTime:       r.runTime,
		PostCount:     r.postCount.Load(),
		PostFails:     r.postFails.Load(),
		DispatchCount: r.dispatchCount.Load(),
		DispatchFails: r.dispatchFails.Load(),
	}
	for i := range r.eventCounts {
		stats.EventCounts[i] = r.eventCounts[i].Load()
	}
	return stats
}

func (r *Router) dispatch(ctx context.Context, ev event) error {
	switch ev.id {
	case OrderbookSnapshotEvent:
		snapshot, ok := ev.data.(common.OrderbookSnapshot)
		if !ok {
			return errors.New("invalid type assertion for orderbook snapshot event")
		}
		if r.OrderbookSnapshotHandler != nil {
			r.OrderbookSnapshotHandler(ctx, snapshot)
		} else {
			slog.Debug("orderbook snapshot handler is nil")
		}
	case OrderbookUpdateEvent:
		updates, ok := ev.data.([]common.OrderbookUpdate)
		if !ok {
			return errors.New("invalid type assertion for orderbook update event")
		}
		if r.OrderbookUpdateHandler != nil {
			r.OrderbookUpdateHandler(ctx, updates)
		} else {
			slog.Debug("orderbook update handler is nil")
		}
	case BankBalanceEvent:
		balance, ok := ev.data.(common.BankBalance)
		if !ok {
			return errors.New("invalid type assertion for bank balance event")
		}
		if r.BankBalanceHandler != nil {
			r.BankBalanceHandler(ctx, balance)
		} else {
			slog.Debug("bank balance handler is nil")
		}
	case SubaccountBalanceEvent:
		balance, ok := ev.data.(common.SubaccountBalance)
		if !ok {
			return errors.New("invalid type assertion for subaccount balance event")
		}
		if r.SubaccountBalanceHandler != nil {
			r.SubaccountBalanceHandler(ctx, balance)
		} else {
			slog.Debug("subaccount balance handler is nil")
		}
	case PositionEvent:
		position, ok := ev.data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position event")
		}
		if r.PositionHandler != nil {
			r.PositionHandler(ctx, position)
		} else {
			slog.Debug("position handler is nil")
		}
	case MarkPriceEvent:
		markPrice, ok := ev.data.(common.MarkPrice)
		if !ok {
			return errors.New("invalid type assertion for mark price event")
		}
		if r.MarkPriceHandler != nil {
			r.MarkPriceHandler(ctx, markPrice)
		} else {
			slog.Debug("mark price handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", ev.id)
	}
	return nil
}
