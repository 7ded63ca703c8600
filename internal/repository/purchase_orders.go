package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
)

// PurchaseOrderInput carries the header fields written for a purchase order.
type PurchaseOrderInput struct {
	PONumber   string
	SupplierID *uuid.UUID
	CustomerID *uuid.UUID
	OrderDate  string // YYYY-MM-DD or empty
	Currency   constants.Currency
	Notes      string
}

const maxPONumberLen = 64

func (in PurchaseOrderInput) validate() error {
	return common.NewValidator().
		Field("po_number", in.PONumber, common.Required, common.MaxLength(maxPONumberLen)).
		Field("order_date", in.OrderDate, common.ISODate).
		Err()
}

type PurchaseOrderRepository interface {
	// Upsert writes the purchase order keyed by PO number and reports whether
	// the row was newly created.
	Upsert(ctx context.Context, in PurchaseOrderInput) (uuid.UUID, bool, error)
	// AddLineItem links a part to a purchase order; relinking updates the
	// quantity and price.
	AddLineItem(ctx context.Context, poID, partID uuid.UUID, qty int, unitPrice decimal.Decimal, cur constants.Currency) error
	Get(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
}

type purchaseOrderRepo struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewPurchaseOrderRepository(drv *entsql.Driver, logger *slog.Logger) PurchaseOrderRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &purchaseOrderRepo{drv: drv, logger: logger}
}

func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func (r *purchaseOrderRepo) Upsert(ctx context.Context, in PurchaseOrderInput) (uuid.UUID, bool, error) {
	if err := in.validate(); err != nil {
		return uuid.Nil, false, dbError("upsert purchase order", fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if !in.Currency.Valid() {
		in.Currency = constants.DefaultCurrency
	}
	d := entsql.Dialect(r.drv.Dialect())
	now := nowUTC()

	existing, err := queryID(ctx, r.drv, d.Select("id").From(d.Table("purchase_orders")).Where(entsql.EQ("po_number", in.PONumber)))
	switch {
	case err == nil:
		upd := d.Update("purchase_orders").
			Set("currency", string(in.Currency)).
			Set("notes", in.Notes).
			Set("updated_at", now).
			Where(entsql.EQ("id", existing))
		// a later document may replace these but never clears them
		if in.OrderDate != "" {
			upd.Set("order_date", in.OrderDate)
		}
		if in.SupplierID != nil {
			upd.Set("supplier_id", in.SupplierID.String())
		}
		if in.CustomerID != nil {
			upd.Set("customer_id", in.CustomerID.String())
		}
		if _, err := execStmt(ctx, r.drv, upd); err != nil {
			r.logger.Error("failed to update purchase order", "po_number", in.PONumber, "error", err)
			return uuid.Nil, false, dbError("update purchase order", err)
		}
		return existing, false, nil
	case !errors.Is(err, common.ErrNotFound):
		return uuid.Nil, false, dbError("lookup purchase order", err)
	}

	ins := d.Insert("purchase_orders").
		Columns("id", "po_number", "supplier_id", "customer_id", "order_date", "currency", "notes", "created_at", "updated_at").
		Values(uuid.New(), in.PONumber, nullableID(in.SupplierID), nullableID(in.CustomerID), in.OrderDate, string(in.Currency), in.Notes, now, now).
		OnConflict(
			entsql.ConflictColumns("po_number"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("order_date")
				u.SetExcluded("currency")
				u.SetExcluded("notes")
				u.SetExcluded("updated_at")
			}),
		).
		Returning("id")
	id, err := queryID(ctx, r.drv, ins)
	if err != nil {
		r.logger.Error("failed to create purchase order", "po_number", in.PONumber, "error", err)
		return uuid.Nil, false, dbError("create purchase order", err)
	}
	r.logger.Debug("purchase order created", "po_number", in.PONumber, "id", id)
	return id, true, nil
}

func (r *purchaseOrderRepo) AddLineItem(ctx context.Context, poID, partID uuid.UUID, qty int, unitPrice decimal.Decimal, cur constants.Currency) error {
	if !cur.Valid() {
		cur = constants.DefaultCurrency
	}
	ins := entsql.Dialect(r.drv.Dialect()).
		Insert("po_line_items").
		Columns("id", "purchase_order_id", "part_id", "quantity", "unit_price", "currency", "created_at").
		Values(uuid.New(), poID, partID, qty, unitPrice, string(cur), nowUTC()).
		OnConflict(
			entsql.ConflictColumns("purchase_order_id", "part_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("quantity")
				u.SetExcluded("unit_price")
				u.SetExcluded("currency")
			}),
		)
	if _, err := execStmt(ctx, r.drv, ins); err != nil {
		r.logger.Error("failed to add po line item", "purchase_order_id", poID, "part_id", partID, "error", err)
		return dbError("add line item", err)
	}
	return nil
}

func (r *purchaseOrderRepo) Get(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	d := entsql.Dialect(r.drv.Dialect())
	sel := d.Select("id", "po_number", "supplier_id", "customer_id", "order_date", "currency", "notes", "created_at", "updated_at").
		From(d.Table("purchase_orders")).
		Where(entsql.EQ("po_number", poNumber))

	var po *entity.PurchaseOrder
	err := queryEach(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			row           entity.PurchaseOrder
			supID, custID sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.PONumber, &supID, &custID, &row.OrderDate, &row.Currency, &row.Notes, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return err
		}
		row.SupplierID = parseNullID(supID)
		row.CustomerID = parseNullID(custID)
		po = &row
		return nil
	})
	if err != nil {
		return nil, dbError("get purchase order", err)
	}
	if po == nil {
		return nil, dbError("get purchase order "+poNumber, common.ErrNotFound)
	}

	li, p := d.Table("po_line_items").As("li"), d.Table("parts").As("p")
	items := d.Select(li.C("part_id"), p.C("part"), li.C("quantity"), li.C("unit_price"), li.C("currency")).
		From(li).
		Join(p).On(li.C("part_id"), p.C("id")).
		Where(entsql.EQ(li.C("purchase_order_id"), po.ID)).
		OrderBy(p.C("part"))
	po.LineItems = []entity.POLineItem{}
	err = queryEach(ctx, r.drv, items, func(rows *entsql.Rows) error {
		var it entity.POLineItem
		if err := rows.Scan(&it.PartID, &it.Part, &it.Quantity, &it.UnitPrice, &it.Currency); err != nil {
			return err
		}
		po.LineItems = append(po.LineItems, it)
		return nil
	})
	if err != nil {
		return nil, dbError("list line items", err)
	}
	return po, nil
}

func parseNullID(s sql.NullString) *uuid.UUID {
	if !s.Valid || s.String == "" {
		return nil
	}
	id, err := uuid.Parse(s.String)
	if err != nil {
		return nil
	}
	return &id
}
