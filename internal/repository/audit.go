package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/oklog/ulid/v2"

	"github.com/joseph-ayodele/parts-inventory/internal/entity"
)

type AuditRepository interface {
	Record(ctx context.Context, ev entity.AuditEvent) error
}

type auditRepo struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewAuditRepository(drv *entsql.Driver, logger *slog.Logger) AuditRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &auditRepo{drv: drv, logger: logger}
}

func (r *auditRepo) Record(ctx context.Context, ev entity.AuditEvent) error {
	details := []byte("{}")
	if len(ev.Details) > 0 {
		b, err := json.Marshal(ev.Details)
		if err != nil {
			return dbError("encode audit details", err)
		}
		details = b
	}
	ins := entsql.Dialect(r.drv.Dialect()).
		Insert("audit_log").
		Columns("id", "action", "entity", "entity_id", "details", "created_at").
		Values(ulid.Make().String(), ev.Action, ev.Entity, ev.EntityID, string(details), nowUTC())
	if _, err := execStmt(ctx, r.drv, ins); err != nil {
		r.logger.Error("failed to record audit event", "action", ev.Action, "entity_id", ev.EntityID, "error", err)
		return dbError("record audit event", err)
	}
	return nil
}
