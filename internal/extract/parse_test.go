package extract

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

func TestParse_PurchaseOrder(t *testing.T) {
	fixClock(t, fixedTime)

	res, err := Parse(purchaseOrderText)
	require.NoError(t, err)

	assert.Equal(t, ModeStructured, res.Mode)
	assert.Equal(t, "PO-538-003", res.Document.PONumber)
	assert.Equal(t, constants.CAD, res.Document.Currency)
	require.Len(t, res.Document.LineItems, 2)

	require.Len(t, res.Parts, 2)
	assert.Equal(t, "VALVE-SS-1/4", res.Parts[0].Part)
	assert.Equal(t, "PO-538-003", res.Parts[0].PO)
	assert.Equal(t, "2024-03-15", res.Parts[0].Ord)
	assert.Equal(t, "Advanced Components Ltd.", res.Parts[0].Sup)
	assert.Equal(t, constants.Vacuum, res.Parts[1].C)

	require.Len(t, res.Entities.Suppliers, 1)
	assert.Equal(t, "Advanced Components Ltd.", res.Entities.Suppliers[0].Name)
	require.Len(t, res.Entities.Customers, 1)
	assert.Equal(t, "CUST-001", res.Entities.Customers[0].CustomerNumber)
	assert.Empty(t, res.Entities.Manufacturers)
}

func TestParse_EmptyText(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\n"} {
		_, err := Parse(in)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyText)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}
}

func TestParse_NoMarkers(t *testing.T) {
	res, err := Parse("hello there\ngeneral kenobi")
	require.NoError(t, err)
	assert.Equal(t, ModeNone, res.Mode)
	assert.NotNil(t, res.Document.LineItems)
	assert.Empty(t, res.Document.LineItems)
	assert.Empty(t, res.Parts)
	assert.Equal(t, constants.CAD, res.Document.Currency)
}

func TestParse_SupplierKeepsInnerSpacing(t *testing.T) {
	text := "PO Number: PO-9-1\nSupplier: Acme  Industries Ltd.\n" +
		"Part#: A-1    Description: Ball Valve    Qty: 2    Price: $5.00\n"

	res, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "Acme  Industries Ltd.", res.Document.SupplierName)
	require.Len(t, res.Parts, 1)
	assert.Equal(t, "Acme  Industries Ltd.", res.Parts[0].Sup)
	require.Len(t, res.Entities.Suppliers, 1)
	assert.Equal(t, "Acme  Industries Ltd.", res.Entities.Suppliers[0].Name)
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(purchaseOrderText)
	require.NoError(t, err)
	assert.Equal(t, purchaseOrderText, doc.RawText)
	assert.Len(t, doc.LineItems, 2)
}

func TestParse_ConcurrentCallsAgree(t *testing.T) {
	want, err := Parse(purchaseOrderText)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Parse(purchaseOrderText)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want.Document.LineItems, got.Document.LineItems)
		assert.Equal(t, want.Mode, got.Mode)
	}
}
