package middleware

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/rishi95122/helix-core/pkg/bus"
	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/data/duckdb"
)

// Recorder persists reconciled book state as it flows through the pipeline.
type Recorder struct {
	db        *sql.DB
	sessionId string
}

func NewRecorder(db *sql.DB, sessionId string) *Recorder {
	return &Recorder{
		db:        db,
		sessionId: sessionId,
	}
}

func (r *Recorder) WithOrderbookSnapshot(handler bus.OrderbookSnapshotEventHandler) bus.OrderbookSnapshotEventHandler {
	return func(ctx context.Context, snapshot common.OrderbookSnapshot) {
		go func() {
			if err := duckdb.InsertSnapshot(ctx, r.db, r.sessionId, snapshot); err != nil {
				slog.Warn("unable to insert snapshot", "error", err)
			}
		}()
		handler(ctx, snapshot)
	}
}
