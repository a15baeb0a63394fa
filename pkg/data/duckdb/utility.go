package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/rishi95122/helix-core/pkg/common"
)

func Connect(ctx context.Context, dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

func CreateSchema(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS book_snapshots (
		session_id VARCHAR,
		market_id  VARCHAR,
		sequence   UBIGINT,
		ts         TIMESTAMP,
		buys       VARCHAR,
		sells      VARCHAR
	);
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

func InsertSnapshot(ctx context.Context, db *sql.DB, sessionId string, snapshot common.OrderbookSnapshot) error {
	buys, err := json.Marshal(snapshot.Buys)
	if err != nil {
		return fmt.Errorf("unable to encode buys: %w", err)
	}
	sells, err := json.Marshal(snapshot.Sells)
	if err != nil {
		return fmt.Errorf("unable to encode sells: %w", err)
	}

	query := `
	INSERT INTO book_snapshots (
		session_id,
		market_id,
		sequence,
		ts,
		buys,
		sells
	) VALUES (?, ?, ?, ?, ?, ?);
	`

	_, err = db.ExecContext(
		ctx,
		query,
		sessionId,
		snapshot.MarketID,
		snapshot.Sequence,
		snapshot.TimeStamp,
		string(buys),
		string(sells),
	)

	return err
}
