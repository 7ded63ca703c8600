package repository

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

// schema is written once for both dialects; {{ts}} and {{num}} are replaced
// with the dialect's timestamp and decimal types. Dates stay YYYY-MM-DD text.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		notes TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS manufacturers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		notes TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id TEXT PRIMARY KEY,
		customer_number TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id TEXT PRIMARY KEY,
		po_number TEXT NOT NULL UNIQUE,
		supplier_id TEXT REFERENCES suppliers(id),
		customer_id TEXT REFERENCES customers(id),
		order_date TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT 'C',
		notes TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parts (
		id TEXT PRIMARY KEY,
		c TEXT NOT NULL DEFAULT 'x',
		part TEXT NOT NULL,
		descr TEXT NOT NULL DEFAULT '',
		qty INTEGER NOT NULL DEFAULT 0,
		po TEXT NOT NULL DEFAULT '',
		proj TEXT NOT NULL DEFAULT '',
		"each" {{num}} NOT NULL DEFAULT 0,
		d TEXT NOT NULL DEFAULT 'C',
		pn TEXT NOT NULL DEFAULT '',
		dwg TEXT NOT NULL DEFAULT '',
		ord TEXT NOT NULL DEFAULT '',
		s INTEGER NOT NULL DEFAULT 1,
		sup TEXT NOT NULL DEFAULT '',
		mfg TEXT NOT NULL DEFAULT '',
		n TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL,
		UNIQUE (po, part)
	)`,
	`CREATE INDEX IF NOT EXISTS parts_c_idx ON parts (c)`,
	`CREATE TABLE IF NOT EXISTS po_line_items (
		id TEXT PRIMARY KEY,
		purchase_order_id TEXT NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
		part_id TEXT NOT NULL REFERENCES parts(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 0,
		unit_price {{num}} NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'C',
		created_at {{ts}} NOT NULL,
		UNIQUE (purchase_order_id, part_id)
	)`,
	`CREATE TABLE IF NOT EXISTS raw_ingest (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		processing_status TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		report_json TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS raw_ingest_hash_idx ON raw_ingest (content_hash, processing_status)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		entity TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '{}',
		created_at {{ts}} NOT NULL
	)`,
}

// Migrate creates any missing tables and indexes. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	ts, num := "TIMESTAMPTZ", "NUMERIC(14,4)"
	if s.Dialect() == dialect.SQLite {
		ts, num = "TIMESTAMP", "NUMERIC"
	}
	r := strings.NewReplacer("{{ts}}", ts, "{{num}}", num)

	for _, stmt := range schema {
		if err := s.drv.Exec(ctx, r.Replace(stmt), []any{}, nil); err != nil {
			s.logger.Error("migration failed", "error", err)
			return fmt.Errorf("migrate: %w", err)
		}
	}
	s.logger.Info("database schema up to date", "dialect", s.Dialect())
	return nil
}
