// Package ingest imports purchase-order and quote documents into the parts
// inventory: load, extract text, parse, and write the resulting records.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/parts-inventory/internal/async"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/extract"
	"github.com/joseph-ayodele/parts-inventory/internal/metrics"
	"github.com/joseph-ayodele/parts-inventory/internal/objectstore"
	"github.com/joseph-ayodele/parts-inventory/internal/repository"
	"github.com/joseph-ayodele/parts-inventory/internal/textextract"
)

// TextExtractor turns document bytes into text.
type TextExtractor interface {
	ExtractBytes(ctx context.Context, name string, data []byte) (textextract.Result, error)
}

// ObjectGetter fetches documents from object storage.
type ObjectGetter interface {
	Get(ctx context.Context, key string) (*objectstore.Object, error)
	Bucket() string
}

type Importer struct {
	entities repository.EntityRepository
	orders   repository.PurchaseOrderRepository
	parts    repository.PartRepository
	ingests  repository.IngestRepository
	audit    repository.AuditRepository

	text    TextExtractor
	objects ObjectGetter
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Importer)

// WithObjectStore enables s3:// sources.
func WithObjectStore(o ObjectGetter) Option {
	return func(im *Importer) { im.objects = o }
}

// WithBatchTimeout bounds each document of a batch import.
func WithBatchTimeout(d time.Duration) Option {
	return func(im *Importer) {
		if d > 0 {
			im.timeout = d
		}
	}
}

func NewImporter(store *repository.Store, text TextExtractor, logger *slog.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	im := &Importer{
		entities: store.Entities,
		orders:   store.PurchaseOrders,
		parts:    store.Parts,
		ingests:  store.Ingests,
		audit:    store.Audit,
		text:     text,
		timeout:  2 * time.Minute,
		logger:   logger,
	}
	for _, o := range opts {
		o(im)
	}
	return im
}

// LoadFile reads a local document.
func LoadFile(p string) (Document, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return Document{}, fmt.Errorf("abs path: %w", err)
	}
	if ext := filepath.Ext(abs); !AllowedExt(ext) {
		return Document{}, common.NewAppError("UNSUPPORTED_FORMAT", fmt.Sprintf("unsupported or missing extension %q", ext), common.ErrInvalidInput)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, common.NewAppError("FILE_NOT_FOUND", abs, common.ErrNotFound)
		}
		return Document{}, fmt.Errorf("read %s: %w", abs, err)
	}
	return Document{Source: abs, Name: filepath.Base(abs), Data: data}, nil
}

// Load resolves a source string, a local path or s3://bucket/key.
func (im *Importer) Load(ctx context.Context, source string) (Document, error) {
	bucket, key, ok := objectstore.ParseURI(source)
	if !ok {
		return LoadFile(source)
	}
	if im.objects == nil {
		return Document{}, common.NewAppError("NO_OBJECT_STORE", "object storage is not configured", common.ErrInvalidInput)
	}
	if bucket != im.objects.Bucket() {
		return Document{}, common.NewAppError("UNKNOWN_BUCKET", bucket, common.ErrInvalidInput)
	}
	obj, err := im.objects.Get(ctx, key)
	if err != nil {
		return Document{}, err
	}
	return Document{Source: source, Name: path.Base(key), Data: obj.Data}, nil
}

// ImportSource loads and imports one source. Load failures are reported in
// the returned report rather than as an error.
func (im *Importer) ImportSource(ctx context.Context, source string) Report {
	doc, err := im.Load(ctx, source)
	if err != nil {
		r := newReport(source)
		r.Errors = append(r.Errors, err.Error())
		metrics.RecordImport(metrics.StatusFailed, 0)
		im.logger.Warn("import.load.failed", "source", source, "error", err)
		return r
	}
	return im.ImportDocument(ctx, doc)
}

// Handle is the async queue handler for fire-and-forget imports.
func (im *Importer) Handle(ctx context.Context, job async.Job) error {
	r := im.ImportSource(ctx, job.Source)
	if r.Failed() {
		return errors.New(strings.Join(r.Errors, "; "))
	}
	return nil
}

// ImportBatch imports every source on its own worker and combines the
// reports. One document failing never affects the others.
func (im *Importer) ImportBatch(ctx context.Context, sources []string, workers int) Report {
	reports := make([]Report, len(sources))
	var wg sync.WaitGroup

	q := async.NewQueue(func(ctx context.Context, job async.Job) error {
		i, _ := strconv.Atoi(job.ID)
		reports[i] = im.ImportSource(ctx, job.Source)
		if reports[i].Failed() {
			return errors.New(strings.Join(reports[i].Errors, "; "))
		}
		return nil
	}, im.logger, async.WithWorkers(workers), async.WithQueueSize(len(sources)), async.WithProcessTimeout(im.timeout))

	for i, src := range sources {
		wg.Add(1)
		job := async.Job{ID: strconv.Itoa(i), Source: src, TraceID: common.RequestIDFromContext(ctx), Done: func(error) { wg.Done() }}
		if err := q.Enqueue(ctx, job); err != nil {
			wg.Done()
			reports[i] = newReport(src)
			reports[i].Errors = append(reports[i].Errors, err.Error())
		}
	}
	wg.Wait()
	q.Shutdown(context.Background())

	return CombineReports(reports...)
}

// ImportDocument runs one document through dedup, text extraction, parsing
// and persistence. Stage failures mark the ingest record failed and land in
// Errors; per-record problems become Warnings and do not stop the import.
func (im *Importer) ImportDocument(ctx context.Context, doc Document) Report {
	start := time.Now()
	report := newReport(doc.Source)
	status := metrics.StatusCompleted
	defer func() { metrics.RecordImport(status, time.Since(start)) }()

	sum := sha256.Sum256(doc.Data)
	hash := hex.EncodeToString(sum[:])

	prev, err := im.ingests.GetByHash(ctx, hash)
	switch {
	case err == nil:
		status = metrics.StatusDeduplicated
		report.IngestID = prev.ID
		report.Deduplicated = true
		report.warnf("Document already imported as %s; skipped", prev.ID)
		im.logger.Info("import.dedup", "source", doc.Source, "ingest_id", prev.ID, "hash", hash)
		return report
	case !errors.Is(err, common.ErrNotFound):
		status = metrics.StatusFailed
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	rec, err := im.ingests.Create(ctx, doc.Source, hash)
	if err != nil {
		status = metrics.StatusFailed
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to create ingest record: %v", err))
		return report
	}
	report.IngestID = rec.ID

	if err := im.process(ctx, rec.ID, doc, &report); err != nil {
		status = metrics.StatusFailed
		report.Errors = append(report.Errors, err.Error())
		b, _ := json.Marshal(report)
		if ferr := im.ingests.Fail(ctx, rec.ID, err.Error(), b); ferr != nil {
			im.logger.Error("failed to mark ingest failed", "ingest_id", rec.ID, "error", ferr)
		}
		im.logger.Warn("import.failed", "source", doc.Source, "ingest_id", rec.ID, "error", err)
		return report
	}

	b, _ := json.Marshal(report)
	if err := im.ingests.Complete(ctx, rec.ID, b); err != nil {
		status = metrics.StatusFailed
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to complete ingest record: %v", err))
		return report
	}
	im.logger.Info("import.ok",
		"source", doc.Source,
		"ingest_id", rec.ID,
		"parts_inserted", report.PartsInserted,
		"parts_updated", report.PartsUpdated,
		"pos_created", report.PurchaseOrdersCreated,
		"warnings", len(report.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report
}

func (im *Importer) process(ctx context.Context, ingestID string, doc Document, report *Report) error {
	if err := im.ingests.MarkProcessing(ctx, ingestID); err != nil {
		return err
	}

	name := doc.Name
	if name == "" {
		name = doc.Source
	}
	text, err := im.text.ExtractBytes(ctx, name, doc.Data)
	if err != nil {
		return fmt.Errorf("text extraction: %w", err)
	}
	res, err := extract.Parse(text.Text)
	if err != nil {
		return err
	}
	cats := make([]string, len(res.Document.LineItems))
	for i, it := range res.Document.LineItems {
		cats[i] = string(it.Category)
	}
	metrics.RecordParse(string(res.Mode), cats)
	if len(res.Parts) == 0 {
		report.warnf("No line items found in document")
	}

	var supplierID, customerID *uuid.UUID
	for _, s := range res.Entities.Suppliers {
		id, err := im.entities.UpsertSupplier(ctx, s)
		if err != nil {
			report.warnf("Failed to upsert supplier: %v", err)
			continue
		}
		supplierID = &id
	}
	for _, m := range res.Entities.Manufacturers {
		if _, err := im.entities.UpsertManufacturer(ctx, m); err != nil {
			report.warnf("Failed to upsert manufacturer: %v", err)
		}
	}
	for _, c := range res.Entities.Customers {
		id, err := im.entities.UpsertCustomer(ctx, c)
		if err != nil {
			report.warnf("Failed to upsert customer: %v", err)
			continue
		}
		customerID = &id
	}

	var poID uuid.UUID
	if po := res.Document.PONumber; po != "" {
		orderDate, _ := extract.FormatDateForDB(res.Document.OrderDate)
		id, created, err := im.orders.Upsert(ctx, repository.PurchaseOrderInput{
			PONumber:   po,
			SupplierID: supplierID,
			CustomerID: customerID,
			OrderDate:  orderDate,
			Currency:   res.Document.Currency,
			Notes:      "Imported from document: " + doc.Source,
		})
		switch {
		case err != nil:
			report.warnf("Failed to create/update PO: %v", err)
		default:
			poID = id
			if created {
				report.PurchaseOrdersCreated = 1
			}
		}
	}

	for _, p := range res.Parts {
		id, inserted, err := im.parts.Save(ctx, p)
		if err != nil {
			report.warnf("Failed to insert part %s: %v", p.Part, err)
			continue
		}
		if inserted {
			report.PartsInserted++
		} else {
			report.PartsUpdated++
		}
		if poID != uuid.Nil {
			if err := im.orders.AddLineItem(ctx, poID, id, p.Qty, p.Each, p.D); err != nil {
				report.warnf("Failed to link part %s to %s: %v", p.Part, p.PO, err)
			}
		}
	}
	metrics.RecordWrite("parts", "insert", report.PartsInserted)
	metrics.RecordWrite("parts", "update", report.PartsUpdated)
	metrics.RecordWrite("purchase_orders", "insert", report.PurchaseOrdersCreated)

	err = im.audit.Record(ctx, entity.AuditEvent{
		Action:   "document.import",
		Entity:   "raw_ingest",
		EntityID: ingestID,
		Details: map[string]any{
			"source":         doc.Source,
			"parts_inserted": report.PartsInserted,
			"parts_updated":  report.PartsUpdated,
			"pos_created":    report.PurchaseOrdersCreated,
		},
	})
	if err != nil {
		report.warnf("Failed to record audit event: %v", err)
	}
	return nil
}
