package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/oklog/ulid/v2"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
)

var ingestColumns = []string{"id", "source", "content_hash", "processing_status", "error_message", "report_json", "created_at", "updated_at"}

// IngestRepository tracks documents through raw_ingest.
type IngestRepository interface {
	Create(ctx context.Context, source, contentHash string) (*entity.IngestRecord, error)
	MarkProcessing(ctx context.Context, id string) error
	Complete(ctx context.Context, id string, report json.RawMessage) error
	Fail(ctx context.Context, id, message string, report json.RawMessage) error
	// GetByHash returns the most recent completed record with the given
	// content hash, or ErrNotFound.
	GetByHash(ctx context.Context, contentHash string) (*entity.IngestRecord, error)
	ListRecent(ctx context.Context, limit int) ([]entity.IngestRecord, error)
}

type ingestRepo struct {
	drv    *entsql.Driver
	logger *slog.Logger
}

func NewIngestRepository(drv *entsql.Driver, logger *slog.Logger) IngestRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestRepo{drv: drv, logger: logger}
}

func (r *ingestRepo) Create(ctx context.Context, source, contentHash string) (*entity.IngestRecord, error) {
	now := nowUTC()
	rec := &entity.IngestRecord{
		ID:          ulid.Make().String(),
		Source:      source,
		ContentHash: contentHash,
		Status:      constants.IngestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ins := entsql.Dialect(r.drv.Dialect()).
		Insert("raw_ingest").
		Columns(ingestColumns...).
		Values(rec.ID, rec.Source, rec.ContentHash, string(rec.Status), "", "", now, now)
	if _, err := execStmt(ctx, r.drv, ins); err != nil {
		r.logger.Error("failed to create ingest record", "source", source, "error", err)
		return nil, dbError("create ingest record", err)
	}
	return rec, nil
}

func (r *ingestRepo) MarkProcessing(ctx context.Context, id string) error {
	return r.update(ctx, id, constants.IngestProcessing, "", nil)
}

func (r *ingestRepo) Complete(ctx context.Context, id string, report json.RawMessage) error {
	return r.update(ctx, id, constants.IngestCompleted, "", report)
}

func (r *ingestRepo) Fail(ctx context.Context, id, message string, report json.RawMessage) error {
	return r.update(ctx, id, constants.IngestFailed, message, report)
}

func (r *ingestRepo) update(ctx context.Context, id string, status constants.IngestStatus, message string, report json.RawMessage) error {
	upd := entsql.Dialect(r.drv.Dialect()).
		Update("raw_ingest").
		Set("processing_status", string(status)).
		Set("error_message", message).
		Set("updated_at", nowUTC()).
		Where(entsql.EQ("id", id))
	if report != nil {
		upd.Set("report_json", string(report))
	}
	n, err := execStmt(ctx, r.drv, upd)
	if err != nil {
		r.logger.Error("failed to update ingest record", "id", id, "status", status, "error", err)
		return dbError("update ingest record", err)
	}
	if n == 0 {
		return dbError("update ingest record "+id, common.ErrNotFound)
	}
	return nil
}

func (r *ingestRepo) GetByHash(ctx context.Context, contentHash string) (*entity.IngestRecord, error) {
	d := entsql.Dialect(r.drv.Dialect())
	recs, err := r.list(ctx, d.Select(ingestColumns...).
		From(d.Table("raw_ingest")).
		Where(entsql.And(
			entsql.EQ("content_hash", contentHash),
			entsql.EQ("processing_status", string(constants.IngestCompleted)),
		)).
		OrderBy(entsql.Desc("id")).
		Limit(1))
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, common.ErrNotFound
	}
	return &recs[0], nil
}

func (r *ingestRepo) ListRecent(ctx context.Context, limit int) ([]entity.IngestRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	d := entsql.Dialect(r.drv.Dialect())
	// ULIDs sort by creation time
	return r.list(ctx, d.Select(ingestColumns...).
		From(d.Table("raw_ingest")).
		OrderBy(entsql.Desc("id")).
		Limit(limit))
}

func (r *ingestRepo) list(ctx context.Context, sel *entsql.Selector) ([]entity.IngestRecord, error) {
	out := []entity.IngestRecord{}
	err := queryEach(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			rec    entity.IngestRecord
			report string
		)
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.ContentHash, &rec.Status, &rec.ErrorMessage, &report, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return err
		}
		if report != "" {
			rec.Report = json.RawMessage(report)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		r.logger.Error("failed to list ingest records", "error", err)
		return nil, dbError("list ingest records", err)
	}
	return out, nil
}
