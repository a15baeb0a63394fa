package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/data/journal"
	"github.com/rishi95122/helix-core/pkg/orderbook"
)

// bookdump replays a journal recorded by helixd and prints the book that
// results from merging every update in order.
func replay(path, marketId string, batchSize int) (common.OrderbookSnapshot, int64, error) {
	reader := journal.NewReader[journal.BinaryUpdate](path)
	if err := reader.Open(); err != nil {
		return common.OrderbookSnapshot{}, 0, err
	}
	defer reader.Close()

	reconciler := orderbook.NewReconciler(marketId)

	var count int64
	batch := make([]common.OrderbookUpdate, 0, batchSize)
	flush := func() {
		if len(batch) > 0 {
			reconciler.ApplyUpdates(batch)
			batch = batch[:0]
		}
	}

	err := reader.Each(func(index int64, rec journal.BinaryUpdate) error {
		var update common.OrderbookUpdate
		rec.ToModelUpdate(marketId, &update)
		batch = append(batch, update)
		count++
		if len(batch) == batchSize {
			flush()
		}
		return nil
	})
	if err != nil {
		return common.OrderbookSnapshot{}, count, err
	}
	flush()

	book, _ := reconciler.Book()
	return book, count, nil
}

func printSide(name string, levels []common.PriceLevel, top int) {
	fmt.Printf("%s (%d levels):\n", name, len(levels))
	for i, level := range levels {
		if i == top {
			fmt.Printf("  ... %d more\n", len(levels)-top)
			break
		}
		fmt.Printf("  %s x %s\n", level.Price, level.Quantity)
	}
}

func main() {
	path := flag.String("journal", "", "journal file to replay")
	marketId := flag.String("market", "", "market id (defaults to journal file name)")
	top := flag.Int("top", 10, "levels to print per side")
	batchSize := flag.Int("batch", 100, "updates per merge batch")
	flag.Parse()

	if *path == "" {
		slog.Error("journal is required")
		os.Exit(1)
	}
	if *marketId == "" {
		*marketId = strings.TrimSuffix(filepath.Base(*path), ".journal")
	}

	book, count, err := replay(*path, *marketId, *batchSize)
	if err != nil {
		slog.Error("replay failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("market %s: %d updates replayed, final sequence %d\n", book.MarketID, count, book.Sequence)
	printSide("sells", book.Sells, *top)
	printSide("buys", book.Buys, *top)
	if mid, ok := orderbook.MidPrice(book); ok {
		fmt.Printf("mid: %s\n", mid)
	}
}
