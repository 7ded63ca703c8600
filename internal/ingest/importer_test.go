package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/objectstore"
	"github.com/joseph-ayodele/parts-inventory/internal/repository"
	"github.com/joseph-ayodele/parts-inventory/internal/textextract"
)

const orderText = `PURCHASE ORDER
PO Number: PO-538-003
Date: 2024-03-15

Supplier: Advanced Components Ltd.
Customer No: CUST-001

Line Items:
Part#: VALVE-SS-1/4    Description: Stainless Steel Ball Valve 1/4"    Qty: 5    Price: $125.00
Part#: GAUGE-VAC-001   Description: Vacuum Gauge 0-30 inHg            Qty: 2    Price: $89.50

Total: $1,462.50 CAD
`

func newTestImporter(t *testing.T, opts ...Option) (*Importer, *repository.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := repository.OpenSQLite(ctx, ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(ctx))
	return NewImporter(store, textextract.NewExtractor(textextract.Config{}, nil), nil, opts...), store
}

func txtDoc(name, text string) Document {
	return Document{Source: "/inbox/" + name, Name: name, Data: []byte(text)}
}

func TestImportDocument_PurchaseOrder(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	r := im.ImportDocument(ctx, txtDoc("po.txt", orderText))
	require.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, 2, r.PartsInserted)
	assert.Equal(t, 0, r.PartsUpdated)
	assert.Equal(t, 1, r.PurchaseOrdersCreated)
	assert.False(t, r.Deduplicated)
	assert.NotEmpty(t, r.IngestID)

	parts, err := store.Parts.List(ctx, entity.PartFilter{PO: "PO-538-003"})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	byCode := map[string]entity.Part{}
	for _, p := range parts {
		byCode[p.Part] = p
	}
	assert.Equal(t, constants.Vacuum, byCode["GAUGE-VAC-001"].C)
	assert.Equal(t, 5, byCode["VALVE-SS-1/4"].Qty)
	assert.Equal(t, "Advanced Components Ltd.", byCode["VALVE-SS-1/4"].Sup)

	po, err := store.PurchaseOrders.Get(ctx, "PO-538-003")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", po.OrderDate)
	assert.Equal(t, "Imported from document: /inbox/po.txt", po.Notes)
	assert.NotNil(t, po.SupplierID)
	assert.NotNil(t, po.CustomerID)
	assert.Len(t, po.LineItems, 2)

	recent, err := store.Ingests.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, constants.IngestCompleted, recent[0].Status)
}

func TestImportDocument_DedupAndUpdate(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	first := im.ImportDocument(ctx, txtDoc("po.txt", orderText))
	require.Empty(t, first.Errors)

	again := im.ImportDocument(ctx, txtDoc("copy.txt", orderText))
	assert.True(t, again.Deduplicated)
	assert.Equal(t, first.IngestID, again.IngestID)
	assert.Zero(t, again.PartsInserted+again.PartsUpdated+again.PurchaseOrdersCreated)
	require.Len(t, again.Warnings, 1)

	revised := im.ImportDocument(ctx, txtDoc("po-rev.txt", strings.Replace(orderText, "Qty: 5", "Qty: 6", 1)))
	require.Empty(t, revised.Errors)
	assert.False(t, revised.Deduplicated)
	assert.Equal(t, 0, revised.PartsInserted)
	assert.Equal(t, 2, revised.PartsUpdated)
	assert.Equal(t, 0, revised.PurchaseOrdersCreated)

	parts, err := store.Parts.List(ctx, entity.PartFilter{PO: "PO-538-003"})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	for _, p := range parts {
		if p.Part == "VALVE-SS-1/4" {
			assert.Equal(t, 6, p.Qty)
		}
	}

	recent, err := store.Ingests.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestImportDocument_EmptyTextFails(t *testing.T) {
	im, store := newTestImporter(t)
	ctx := context.Background()

	r := im.ImportDocument(ctx, txtDoc("blank.txt", "   \n\n"))
	require.True(t, r.Failed())
	assert.Contains(t, r.Errors[0], "text extraction")
	assert.Zero(t, r.PartsInserted)

	recent, err := store.Ingests.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, constants.IngestFailed, recent[0].Status)
	assert.NotEmpty(t, recent[0].ErrorMessage)
}

func TestImportDocument_NoLineItems(t *testing.T) {
	im, _ := newTestImporter(t)

	r := im.ImportDocument(context.Background(), txtDoc("memo.txt", "Thanks for your business.\nSee you next quarter."))
	require.Empty(t, r.Errors)
	assert.Zero(t, r.PartsInserted)
	assert.Contains(t, r.Warnings, "No line items found in document")
}

func TestImportSource_LoadErrors(t *testing.T) {
	im, _ := newTestImporter(t)
	ctx := context.Background()
	dir := t.TempDir()

	r := im.ImportSource(ctx, filepath.Join(dir, "missing.txt"))
	require.True(t, r.Failed())

	img := filepath.Join(dir, "scan.png")
	require.NoError(t, os.WriteFile(img, []byte("x"), 0o600))
	r = im.ImportSource(ctx, img)
	require.True(t, r.Failed())

	r = im.ImportSource(ctx, "s3://incoming-pdfs/po.txt")
	require.True(t, r.Failed())
}

type fakeObjects struct {
	bucket  string
	objects map[string][]byte
}

func (f *fakeObjects) Bucket() string { return f.bucket }

func (f *fakeObjects) Get(_ context.Context, key string) (*objectstore.Object, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &objectstore.Object{Key: key, Data: data}, nil
}

func TestImportSource_ObjectStore(t *testing.T) {
	objs := &fakeObjects{bucket: "incoming-pdfs", objects: map[string][]byte{"2024/po.txt": []byte(orderText)}}
	im, _ := newTestImporter(t, WithObjectStore(objs))
	ctx := context.Background()

	r := im.ImportSource(ctx, "s3://incoming-pdfs/2024/po.txt")
	require.Empty(t, r.Errors)
	assert.Equal(t, 2, r.PartsInserted)
	assert.Equal(t, "s3://incoming-pdfs/2024/po.txt", r.Source)

	r = im.ImportSource(ctx, "s3://other-bucket/2024/po.txt")
	require.True(t, r.Failed())

	r = im.ImportSource(ctx, "s3://incoming-pdfs/absent.txt")
	require.True(t, r.Failed())
}

func TestImportBatch_IsolatesFailures(t *testing.T) {
	im, _ := newTestImporter(t, WithBatchTimeout(10*time.Second))
	dir := t.TempDir()

	good := filepath.Join(dir, "po.txt")
	require.NoError(t, os.WriteFile(good, []byte(orderText), 0o600))
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(blank, []byte(" "), 0o600))

	r := im.ImportBatch(context.Background(), []string{good, blank, filepath.Join(dir, "nope.txt")}, 2)
	assert.Equal(t, 2, r.PartsInserted)
	assert.Equal(t, 1, r.PurchaseOrdersCreated)
	assert.False(t, r.Deduplicated)
	require.Len(t, r.Errors, 2)
	for _, e := range r.Errors {
		assert.True(t, strings.HasPrefix(e, dir), e)
	}
}

func TestImportBatch_Empty(t *testing.T) {
	im, _ := newTestImporter(t)
	r := im.ImportBatch(context.Background(), nil, 4)
	assert.Empty(t, r.Errors)
	assert.NotNil(t, r.Warnings)
	assert.False(t, r.Deduplicated)
}
