package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rishi95122/helix-core/internal/dbg"
	"github.com/rishi95122/helix-core/pkg/bus"
	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/data/duckdb"
	"github.com/rishi95122/helix-core/pkg/data/journal"
	"github.com/rishi95122/helix-core/pkg/indexer"
	"github.com/rishi95122/helix-core/pkg/middleware"
	"github.com/rishi95122/helix-core/pkg/orderbook"
	"github.com/rishi95122/helix-core/pkg/utility"
)

const version = "0.1.0"

func main() {
	logger := dbg.NewDevLogger()
	if environment == "prod" {
		logger = dbg.NewProdLogger()
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	sessionId := utility.GetSessionID()
	logger.Info("helixd started",
		zap.String("environment", environment),
		zap.String("version", version),
		zap.String("session_id", sessionId.String()))
	defer logger.Info("helixd finished")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := bus.NewRouter(RouterEventCapacity)
	client := indexer.NewClient(indexerRestUrl, logger)
	stream := indexer.NewStream(indexerWsUrl, router, logger)

	markets, err := client.FetchMarkets(ctx)
	if err != nil {
		logger.Fatal("unable to fetch markets", zap.Error(err))
	}
	view := newAccountView(logger, accountAddress, markets)

	manager := orderbook.NewManager(func(book common.OrderbookSnapshot) {
		if mid, ok := orderbook.MidPrice(book); ok {
			logger.Debug("book merged",
				zap.String("market_id", book.MarketID),
				zap.Uint64("sequence", book.Sequence),
				zap.String("mid", mid.String()))
		}
	})

	monitor := middleware.NewMonitor(MonitorFlags)
	telemetry := middleware.NewTelemetry(logger)

	snapshotWrappers := []func(bus.OrderbookSnapshotEventHandler) bus.OrderbookSnapshotEventHandler{
		monitor.WithOrderbookSnapshot, telemetry.WithOrderbookSnapshot,
	}

	if duckdbPath != "" {
		db, err := duckdb.Connect(ctx, duckdbPath)
		if err != nil {
			logger.Fatal("unable to open duckdb", zap.Error(err))
		}
		defer func() {
			_ = db.Close()
		}()
		if err := duckdb.CreateSchema(ctx, db); err != nil {
			logger.Fatal("unable to create schema", zap.Error(err))
		}
		recorder := middleware.NewRecorder(db, sessionId.String())
		snapshotWrappers = append(snapshotWrappers, recorder.WithOrderbookSnapshot)
	}

	updateHandler := middleware.Chain(
		monitor.WithOrderbookUpdate,
		telemetry.WithOrderbookUpdate,
	)(manager.HandleUpdates)

	if journalDir != "" {
		writers := make(map[string]*journal.Writer[journal.BinaryUpdate])
		for _, marketId := range marketIds {
			writer := journal.NewWriter[journal.BinaryUpdate](filepath.Join(journalDir, marketId+".journal"))
			if err := writer.Open(); err != nil {
				logger.Fatal("unable to open journal", zap.Error(err), zap.String("market_id", marketId))
			}
			writers[marketId] = writer
			defer func(w *journal.Writer[journal.BinaryUpdate]) {
				_ = w.Close()
			}(writer)
		}
		inner := updateHandler
		updateHandler = func(ctx context.Context, updates []common.OrderbookUpdate) {
			for _, update := range updates {
				if writer, ok := writers[update.MarketID]; ok {
					if err := writer.Write(journal.FromModelUpdate(update)); err != nil {
						logger.Warn("journal write failed", zap.Error(err))
					}
				}
			}
			inner(ctx, updates)
		}
	}

	router.OrderbookSnapshotHandler = middleware.Chain(snapshotWrappers...)(manager.HandleSnapshot)
	router.OrderbookUpdateHandler = updateHandler
	router.BankBalanceHandler = middleware.Chain(monitor.WithBankBalance, telemetry.WithBankBalance)(view.OnBankBalance)
	router.SubaccountBalanceHandler = middleware.Chain(monitor.WithSubaccountBalance, telemetry.WithSubaccountBalance)(view.OnSubaccountBalance)
	router.PositionHandler = middleware.Chain(monitor.WithPosition, telemetry.WithPosition)(view.OnPosition)
	router.MarkPriceHandler = middleware.Chain(monitor.WithMarkPrice, telemetry.WithMarkPrice)(view.OnMarkPrice)

	listed := make(map[string]common.Market, len(markets))
	for _, market := range markets {
		listed[market.ID] = market
	}
	for _, marketId := range marketIds {
		manager.Subscribe(marketId)
		stream.SubscribeOrderbook(marketId)
		if market, ok := listed[marketId]; ok {
			logger.Info("market subscribed", market.Fields()...)
		} else {
			logger.Warn("market not listed by indexer", zap.String("market_id", marketId))
		}
	}

	go stream.Run(ctx)
	go pollSnapshots(ctx, logger, client, router)
	go pollAccount(ctx, logger, client, router)
	go router.Exec(ctx)

	defer router.Statistics().Print()
	defer telemetry.PrintStatistics()

	if err := <-router.Done(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("something unexpected happened", zap.Error(err))
	}
}

// pollSnapshots refreshes every subscribed book once at startup and then on
// a slow cadence, posting results to the bus so merges stay serialized with
// the stream.
func pollSnapshots(ctx context.Context, logger *zap.Logger, client *indexer.Client, router *bus.Router) {
	ticker := time.NewTicker(AccountPollInterval)
	defer ticker.Stop()

	for {
		for _, marketId := range marketIds {
			snapshot, err := client.FetchOrderbook(ctx, marketId)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("orderbook fetch failed", zap.Error(err), zap.String("market_id", marketId))
				}
				continue
			}
			if err := router.Post(bus.OrderbookSnapshotEvent, snapshot); err != nil {
				logger.Warn("unable to post snapshot", zap.Error(err), zap.String("market_id", marketId))
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func pollAccount(ctx context.Context, logger *zap.Logger, client *indexer.Client, router *bus.Router) {
	if accountAddress == "" {
		logger.Info("no account address configured, balance feed disabled")
		return
	}
	defaultSubaccountId := utility.DefaultSubaccountID(accountAddress)

	ticker := time.NewTicker(AccountPollInterval)
	defer ticker.Stop()

	for {
		if balances, err := client.FetchBankBalances(ctx, accountAddress); err != nil {
			logger.Warn("bank balance fetch failed", zap.Error(err))
		} else {
			for _, balance := range balances {
				if err := router.Post(bus.BankBalanceEvent, balance); err != nil {
					logger.Warn("unable to post bank balance", zap.Error(err))
				}
			}
		}

		if balances, err := client.FetchSubaccountBalances(ctx, defaultSubaccountId); err != nil {
			logger.Warn("subaccount balance fetch failed", zap.Error(err))
		} else {
			for _, balance := range balances {
				if err := router.Post(bus.SubaccountBalanceEvent, balance); err != nil {
					logger.Warn("unable to post subaccount balance", zap.Error(err))
				}
			}
		}

		if positions, err := client.FetchPositions(ctx, defaultSubaccountId); err != nil {
			logger.Warn("position fetch failed", zap.Error(err))
		} else {
			for _, position := range positions {
				if err := router.Post(bus.PositionEvent, position); err != nil {
					logger.Warn("unable to post position", zap.Error(err))
				}
			}
		}

		for _, marketId := range marketIds {
			markPrice, err := client.FetchMarkPrice(ctx, marketId)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("mark price fetch failed", zap.Error(err), zap.String("market_id", marketId))
				}
				continue
			}
			if err := router.Post(bus.MarkPriceEvent, markPrice); err != nil {
				logger.Warn("unable to post mark price", zap.Error(err))
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
