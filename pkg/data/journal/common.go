package journal

import (
	"time"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

const (
	sideBuy  = uint32(0)
	sideSell = uint32(1)

	flagActive = uint32(1)
)

// BinaryUpdate is the fixed-width journal record for one level change.
// Journals are per market, so the record carries no market id. Field layout
// is 8-byte aligned with no padding; the mmap reader depends on that.
type BinaryUpdate struct {
	TimeStamp int64
	Sequence  uint64
	Price     float64
	Quantity  float64
	Total     float64
	Side      uint32
	Flags     uint32
}

func (binaryUpdate BinaryUpdate) ToModelUpdate(marketID string, update *common.OrderbookUpdate) {
	update.MarketID = marketID
	update.Sequence = binaryUpdate.Sequence
	update.Side = common.SideBuy
	if binaryUpdate.Side == sideSell {
		update.Side = common.SideSell
	}
	update.Price = fixed.FromFloat64(binaryUpdate.Price)
	update.Quantity = fixed.FromFloat64(binaryUpdate.Quantity)
	update.Total = fixed.FromFloat64(binaryUpdate.Total)
	update.IsActive = binaryUpdate.Flags&flagActive != 0
	update.TimeStamp = time.Unix(0, binaryUpdate.TimeStamp)
}

func FromModelUpdate(update common.OrderbookUpdate) BinaryUpdate {
	side := sideBuy
	if update.Side == common.SideSell {
		side = sideSell
	}
	flags := uint32(0)
	if update.IsActive {
		flags |= flagActive
	}
	price, _ := update.Price.Float64()
	quantity, _ := update.Quantity.Float64()
	total, _ := update.Total.Float64()
	return BinaryUpdate{
		TimeStamp: update.TimeStamp.UnixNano(),
		Sequence:  update.Sequence,
		Price:     price,
		Quantity:  quantity,
		Total:     total,
		Side:      side,
		Flags:     flags,
	}
}
