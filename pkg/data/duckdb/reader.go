package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rishi95122/helix-core/pkg/common"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadSnapshots(ctx context.Context, marketID string, from, to time.Time, handler func(snapshot common.OrderbookSnapshot) error) error {

	query := `SELECT market_id, sequence, ts, buys, sells FROM book_snapshots
	          WHERE market_id = ? AND ts BETWEEN ? AND ? ORDER BY sequence`

	rows, err := r.db.QueryContext(ctx, query, marketID, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			panic(err)
		}
	}(rows)

	for rows.Next() {
		var snapshot common.OrderbookSnapshot
		var buys, sells string
		if err := rows.Scan(&snapshot.MarketID, &snapshot.Sequence, &snapshot.TimeStamp, &buys, &sells); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(buys), &snapshot.Buys); err != nil {
			return fmt.Errorf("error decoding buys: %w", err)
		}
		if err := json.Unmarshal([]byte(sells), &snapshot.Sells); err != nil {
			return fmt.Errorf("error decoding sells: %w", err)
		}
		if err := handler(snapshot); err != nil {
			return fmt.Errorf("error processing snapshot: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
