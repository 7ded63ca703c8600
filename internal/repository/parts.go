package repository

import (
	"context"
	"errors"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/extract"
)

// partColumns are the data columns of parts in insert order.
var partColumns = []string{"c", "part", "descr", "qty", "po", "proj", "each", "d", "pn", "dwg", "ord", "s", "sup", "mfg", "n"}

type PartRepository interface {
	// Save writes a part keyed by (po, part) and reports whether it was
	// inserted rather than updated.
	Save(ctx context.Context, c extract.PartInsertCandidate) (uuid.UUID, bool, error)
	List(ctx context.Context, f entity.PartFilter) ([]entity.Part, error)
}

type partRepo struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewPartRepository(drv *entsql.Driver, logger *slog.Logger) PartRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &partRepo{drv: drv, logger: logger}
}

func partValues(c extract.PartInsertCandidate) []any {
	return []any{
		string(c.C), c.Part, c.Desc, c.Qty, c.PO, c.Proj, c.Each, string(c.D),
		c.PN, c.Dwg, c.Ord, int(c.S), c.Sup, c.Mfg, c.N,
	}
}

func (r *partRepo) Save(ctx context.Context, c extract.PartInsertCandidate) (uuid.UUID, bool, error) {
	if c.Part == "" {
		return uuid.Nil, false, dbError("save part", common.ErrInvalidInput)
	}
	d := entsql.Dialect(r.drv.Dialect())
	now := nowUTC()
	vals := partValues(c)

	existing, err := queryID(ctx, r.drv, d.Select("id").From(d.Table("parts")).
		Where(entsql.And(entsql.EQ("po", c.PO), entsql.EQ("part", c.Part))))
	switch {
	case err == nil:
		upd := d.Update("parts").Set("updated_at", now).Where(entsql.EQ("id", existing))
		for i, col := range partColumns {
			upd.Set(col, vals[i])
		}
		if _, err := execStmt(ctx, r.drv, upd); err != nil {
			r.logger.Error("failed to update part", "part", c.Part, "po", c.PO, "error", err)
			return uuid.Nil, false, dbError("update part", err)
		}
		return existing, false, nil
	case !errors.Is(err, common.ErrNotFound):
		return uuid.Nil, false, dbError("lookup part", err)
	}

	cols := append(append([]string{"id"}, partColumns...), "created_at", "updated_at")
	args := append(append([]any{uuid.New()}, vals...), now, now)
	ins := d.Insert("parts").
		Columns(cols...).
		Values(args...).
		OnConflict(
			entsql.ConflictColumns("po", "part"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, col := range partColumns {
					u.SetExcluded(col)
				}
				u.SetExcluded("updated_at")
			}),
		).
		Returning("id")
	id, err := queryID(ctx, r.drv, ins)
	if err != nil {
		r.logger.Error("failed to insert part", "part", c.Part, "po", c.PO, "error", err)
		return uuid.Nil, false, dbError("insert part", err)
	}
	return id, true, nil
}

func (r *partRepo) List(ctx context.Context, f entity.PartFilter) ([]entity.Part, error) {
	d := entsql.Dialect(r.drv.Dialect())
	sel := d.Select(append(append([]string{"id"}, partColumns...), "created_at", "updated_at")...).
		From(d.Table("parts")).
		OrderBy("po", "part")
	if f.PO != "" {
		sel.Where(entsql.EQ("po", f.PO))
	}
	if f.Category != "" {
		sel.Where(entsql.EQ("c", string(f.Category)))
	}
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	out := []entity.Part{}
	err := queryEach(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.C, &p.Part, &p.Desc, &p.Qty, &p.PO, &p.Proj, &p.Each, &p.D,
			&p.PN, &p.Dwg, &p.Ord, &p.S, &p.Sup, &p.Mfg, &p.N, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		r.logger.Error("failed to list parts", "po", f.PO, "category", f.Category, "error", err)
		return nil, dbError("list parts", err)
	}
	return out, nil
}
