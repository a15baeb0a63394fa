package orderbook

import (
	"sort"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// Reconciler maintains the authoritative book for one market, merging polled
// snapshots with streamed level updates. The sequence number is the only
// freshness authority: applying a superseded snapshot or a duplicate update
// batch never moves the book backwards. Not safe for concurrent use; a
// reconciler is owned by the goroutine that dispatches feed events.
type Reconciler struct {
	marketID string
	current  *common.OrderbookSnapshot
}

func NewReconciler(marketID string) *Reconciler {
	return &Reconciler{
		marketID: marketID,
	}
}

func (r *Reconciler) MarketID() string {
	return r.marketID
}

// Book returns the current merged snapshot. The second return is false until
// the first snapshot or update batch has been applied.
func (r *Reconciler) Book() (common.OrderbookSnapshot, bool) {
	if r.current == nil {
		return common.OrderbookSnapshot{}, false
	}
	return *r.current, true
}

// Sequence reports the current book sequence, zero when no book exists yet.
func (r *Reconciler) Sequence() uint64 {
	if r.current == nil {
		return 0
	}
	return r.current.Sequence
}

// Reset clears all state. Used on unsubscribe and market switch; a fetch
// response landing after a reset is treated like a first snapshot.
func (r *Reconciler) Reset() {
	r.current = nil
}

// ApplySnapshot merges a freshly fetched snapshot. A candidate at or above
// the current sequence replaces the book wholesale. A late candidate does not
// regress the sequence, but its levels are still merged as an update against
// the retained book so a racing fetch can never blank out levels the stream
// already advanced.
func (r *Reconciler) ApplySnapshot(candidate common.OrderbookSnapshot) common.OrderbookSnapshot {
	isMostRecent := r.current == nil || candidate.Sequence >= r.current.Sequence

	merged := common.OrderbookSnapshot{
		MarketID:  r.marketID,
		Source:    candidate.Source,
		TraceID:   candidate.TraceID,
		TimeStamp: candidate.TimeStamp,
	}

	if isMostRecent {
		merged.Sequence = candidate.Sequence
		merged.Buys = combineRecords(true, nil, candidate.Buys)
		merged.Sells = combineRecords(false, nil, candidate.Sells)
	} else {
		merged.Sequence = r.current.Sequence
		merged.Buys = combineRecords(true, r.current.Buys, candidate.Buys)
		merged.Sells = combineRecords(false, r.current.Sells, candidate.Sells)
	}

	r.current = &merged
	return merged
}

// ApplyUpdates merges one streamed batch. Batches whose sequence is below the
// current book are superseded and dropped whole; duplicates are therefore
// no-ops. The resulting sequence is the maximum of book and batch.
func (r *Reconciler) ApplyUpdates(updates []common.OrderbookUpdate) common.OrderbookSnapshot {
	if r.current == nil {
		r.current = &common.OrderbookSnapshot{MarketID: r.marketID}
	}

	batchSequence := uint64(0)
	for _, update := range updates {
		if update.Sequence > batchSequence {
			batchSequence = update.Sequence
		}
	}

	if batchSequence < r.current.Sequence {
		return *r.current
	}

	var buys, sells []common.PriceLevel
	for _, update := range updates {
		level := common.PriceLevel{
			Price:    update.Price,
			Quantity: update.Quantity,
			Total:    update.Total,
		}
		if !update.IsActive {
			level.Quantity = fixed.Zero
		}
		switch update.Side {
		case common.SideBuy:
			buys = append(buys, level)
		case common.SideSell:
			sells = append(sells, level)
		}
	}

	merged := common.OrderbookSnapshot{
		MarketID:  r.marketID,
		Sequence:  batchSequence,
		Buys:      combineRecords(true, r.current.Buys, buys),
		Sells:     combineRecords(false, r.current.Sells, sells),
		TimeStamp: r.current.TimeStamp,
		Source:    r.current.Source,
	}
	if len(updates) > 0 {
		merged.Source = updates[0].Source
		merged.TraceID = updates[0].TraceID
		merged.TimeStamp = updates[0].TimeStamp
	}

	r.current = &merged
	return merged
}

// combineRecords is the shared merge used by both paths: seed a price-keyed
// map with the current side, overwrite or delete from the update side, then
// re-emit sorted. Buys descend, sells ascend; duplicate prices collapse.
func combineRecords(isBuy bool, current, updated []common.PriceLevel) []common.PriceLevel {
	byPrice := make(map[string]common.PriceLevel, len(current)+len(updated))

	for _, record := range current {
		byPrice[record.Price.String()] = record
	}
	for _, record := range updated {
		key := record.Price.String()
		if !record.Quantity.IsPositive() {
			delete(byPrice, key)
			continue
		}
		byPrice[key] = record
	}

	records := make([]common.PriceLevel, 0, len(byPrice))
	for _, record := range byPrice {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if isBuy {
			return records[i].Price.Gt(records[j].Price)
		}
		return records[i].Price.Lt(records[j].Price)
	})

	return records
}
