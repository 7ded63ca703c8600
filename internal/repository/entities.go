package repository

import (
	"context"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/extract"
)

// EntityRepository upserts the reference entities a document names.
// Repeated calls with the same natural key return the same ID.
type EntityRepository interface {
	UpsertSupplier(ctx context.Context, c extract.SupplierCandidate) (uuid.UUID, error)
	UpsertManufacturer(ctx context.Context, c extract.ManufacturerCandidate) (uuid.UUID, error)
	UpsertCustomer(ctx context.Context, c extract.CustomerCandidate) (uuid.UUID, error)
}

type entityRepo struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewEntityRepository(drv *entsql.Driver, logger *slog.Logger) EntityRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &entityRepo{drv: drv, logger: logger}
}

func (r *entityRepo) UpsertSupplier(ctx context.Context, c extract.SupplierCandidate) (uuid.UUID, error) {
	if c.Name == "" {
		return uuid.Nil, dbError("upsert supplier", common.ErrInvalidInput)
	}
	return r.upsert(ctx, "suppliers", "name", []string{"name", "notes"}, []any{c.Name, c.Notes}, "notes")
}

func (r *entityRepo) UpsertManufacturer(ctx context.Context, c extract.ManufacturerCandidate) (uuid.UUID, error) {
	if c.Name == "" {
		return uuid.Nil, dbError("upsert manufacturer", common.ErrInvalidInput)
	}
	return r.upsert(ctx, "manufacturers", "name", []string{"name", "notes"}, []any{c.Name, c.Notes}, "notes")
}

func (r *entityRepo) UpsertCustomer(ctx context.Context, c extract.CustomerCandidate) (uuid.UUID, error) {
	if c.CustomerNumber == "" {
		return uuid.Nil, dbError("upsert customer", common.ErrInvalidInput)
	}
	return r.upsert(ctx, "customers", "customer_number",
		[]string{"customer_number", "name", "notes"}, []any{c.CustomerNumber, c.Name, c.Notes},
		"name", "notes")
}

// upsert inserts a row keyed by key, or refreshes updateCols on the existing
// row. The stored ID is returned either way.
func (r *entityRepo) upsert(ctx context.Context, table, key string, cols []string, vals []any, updateCols ...string) (uuid.UUID, error) {
	now := nowUTC()
	cols = append(append([]string{"id"}, cols...), "created_at", "updated_at")
	vals = append(append([]any{uuid.New()}, vals...), now, now)

	ins := entsql.Dialect(r.drv.Dialect()).
		Insert(table).
		Columns(cols...).
		Values(vals...).
		OnConflict(
			entsql.ConflictColumns(key),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range updateCols {
					u.SetExcluded(c)
				}
				u.SetExcluded("updated_at")
			}),
		).
		Returning("id")

	id, err := queryID(ctx, r.drv, ins)
	if err != nil {
		r.logger.Error("entity upsert failed", "table", table, "key", vals[1], "error", err)
		return uuid.Nil, dbError("upsert "+table, err)
	}
	r.logger.Debug("entity upserted", "table", table, "id", id)
	return id, nil
}
