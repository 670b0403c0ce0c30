package postgres

import (
	"context"
	"fmt"
)

// schema creates every table the dashboard reads from.
// Statements are idempotent so Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales_data (
		id            UUID PRIMARY KEY,
		date          DATE NOT NULL,
		customer_name TEXT NOT NULL,
		region        TEXT NOT NULL,
		revenue       NUMERIC(14, 2) NOT NULL CHECK (revenue >= 0),
		orders        INTEGER NOT NULL DEFAULT 0 CHECK (orders >= 0),
		sessions      INTEGER NOT NULL DEFAULT 0 CHECK (sessions >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS sales_data_date_idx ON sales_data (date)`,
	`CREATE TABLE IF NOT EXISTS repair_orders (
		id        UUID PRIMARY KEY,
		shop_name TEXT NOT NULL,
		opened_on DATE NOT NULL,
		total     NUMERIC(14, 2) NOT NULL CHECK (total >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS repair_orders_opened_on_idx ON repair_orders (opened_on)`,
	`CREATE TABLE IF NOT EXISTS shipments (
		id                 UUID PRIMARY KEY,
		order_number       TEXT NOT NULL UNIQUE,
		customer_name      TEXT NOT NULL,
		status             TEXT NOT NULL CHECK (status IN ('PACKING', 'SHIPPED', 'DELIVERED')),
		packing_started_at TIMESTAMPTZ NOT NULL,
		value              NUMERIC(14, 2) NOT NULL CHECK (value >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS shipments_status_idx ON shipments (status, packing_started_at)`,
}

// Migrate creates the schema inside a single database transaction
func Migrate(ctx context.Context, db *DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}
