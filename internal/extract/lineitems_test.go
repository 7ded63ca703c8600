package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestExtractLineItems_LabeledRows(t *testing.T) {
	doc := ExtractHeader(purchaseOrderText)
	items, mode := ExtractLineItems(purchaseOrderText, doc.Header())

	require.Len(t, items, 2)
	assert.Equal(t, ModeStructured, mode)

	first := items[0]
	assert.Equal(t, "VALVE-SS-1/4", first.PartNumber)
	assert.Equal(t, `Stainless Steel Ball Valve 1/4"`, first.Description)
	assert.Equal(t, 5, first.Quantity)
	assert.True(t, dec("125.00").Equal(first.UnitPrice))
	assert.Equal(t, constants.Plumbing, first.Category)
	assert.Equal(t, constants.CAD, first.Currency)

	second := items[1]
	assert.Equal(t, "GAUGE-VAC-001", second.PartNumber)
	assert.Equal(t, "Vacuum Gauge 0-30 inHg", second.Description)
	assert.Equal(t, 2, second.Quantity)
	assert.True(t, dec("89.50").Equal(second.UnitPrice))
	assert.Equal(t, constants.Vacuum, second.Category)
}

func TestExtractLineItems_Categories(t *testing.T) {
	items, _ := ExtractLineItems(categoryRowsText, ExtractHeader(categoryRowsText).Header())

	require.Len(t, items, 3)
	assert.Equal(t, constants.Plumbing, items[0].Category)
	assert.Equal(t, constants.Vacuum, items[1].Category)
	assert.Equal(t, constants.Electrical, items[2].Category)
	assert.True(t, dec("4500").Equal(items[1].UnitPrice))
	assert.Equal(t, 10, items[2].Quantity)
}

func TestExtractLineItems_NumberedTable(t *testing.T) {
	text := "PO: PO-77-1\n" +
		"1  VALVE-001  Ball Valve  5  $125.00\n" +
		"2  HOSE-010  Braided Hose  3  $42.50\n"
	items, mode := ExtractLineItems(text, ExtractHeader(text).Header())

	require.Len(t, items, 2)
	assert.Equal(t, ModeStructured, mode)
	assert.Equal(t, 1, items[0].LineNumber)
	assert.Equal(t, "VALVE-001", items[0].PartNumber)
	assert.Equal(t, "Ball Valve", items[0].Description)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 2, items[1].LineNumber)
	assert.Equal(t, "HOSE-010", items[1].PartNumber)
	assert.True(t, dec("42.50").Equal(items[1].UnitPrice))
	assert.Equal(t, constants.Plumbing, items[1].Category)
}

func TestExtractLineItems_ThousandsSeparators(t *testing.T) {
	text := "Part#: BOLT-1 Description: Hex Bolt Qty: 1,000 Price: $1,250.25"
	items, _ := ExtractLineItems(text, Header{Currency: constants.CAD})

	require.Len(t, items, 1)
	assert.Equal(t, 1000, items[0].Quantity)
	assert.True(t, dec("1250.25").Equal(items[0].UnitPrice))
}

func TestExtractLineItems_InheritsHeaderContext(t *testing.T) {
	text := "Project: 538\nCurrency: USD\nDrawing: D-100\n" +
		"Part#: VALVE-001 Description: Ball Valve Qty: 1 Price: $2.00\n"
	doc := ExtractHeader(text)
	items, _ := ExtractLineItems(text, doc.Header())

	require.Len(t, items, 1)
	assert.Equal(t, "538", items[0].Project)
	assert.Equal(t, "D-100", items[0].Drawing)
	assert.Equal(t, constants.USD, items[0].Currency)
}

func TestExtractLineItems_Fallback(t *testing.T) {
	doc := ExtractHeader(fallbackText)
	require.Equal(t, "PO-100-200", doc.PONumber)

	items, mode := ExtractLineItems(fallbackText, doc.Header())

	// max(3 parts, 2 quantities, 4 prices, 1) = 4
	require.Len(t, items, 4)
	assert.Equal(t, ModeFallback, mode)

	parts := []string{items[0].PartNumber, items[1].PartNumber, items[2].PartNumber, items[3].PartNumber}
	assert.Equal(t, []string{"ABC-1", "ABC-2", "ABC-3", "PART-4"}, parts)

	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 7, items[1].Quantity)
	assert.Equal(t, 1, items[2].Quantity)
	assert.Equal(t, 1, items[3].Quantity)

	assert.True(t, dec("10").Equal(items[0].UnitPrice))
	assert.True(t, dec("40").Equal(items[3].UnitPrice))
	for _, it := range items {
		assert.Empty(t, it.Description)
		assert.Equal(t, constants.Misc, it.Category)
		assert.Equal(t, constants.CAD, it.Currency)
	}
}

func TestExtractLineItems_FallbackSynthesizesMissingPartNumbers(t *testing.T) {
	text := "PO Number: PO-100-201\nPart: ABC-1\nPart: ABC-2\nQty: 4\nQty: 7\n" +
		"Price: $10.00\nPrice: $20.00\nPrice: $30.00\nPrice: $40.00\n"
	items, _ := ExtractLineItems(text, ExtractHeader(text).Header())

	require.Len(t, items, 4)
	assert.Equal(t, "PART-3", items[2].PartNumber)
	assert.Equal(t, "PART-4", items[3].PartNumber)
	assert.Equal(t, 1, items[3].Quantity)
}

func TestExtractLineItems_FallbackRequiresPONumber(t *testing.T) {
	text := "Part: ABC-1\nQty: 4\nPrice: $10.00\n"
	doc := ExtractHeader(text)
	require.Empty(t, doc.PONumber)

	items, mode := ExtractLineItems(text, doc.Header())
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Equal(t, ModeNone, mode)
}

func TestExtractLineItems_FallbackWithOnlyPONumber(t *testing.T) {
	text := "PO Number: PO-1-2\nThank you for your business"
	items, mode := ExtractLineItems(text, ExtractHeader(text).Header())

	require.Len(t, items, 1)
	assert.Equal(t, ModeFallback, mode)
	assert.Equal(t, "PART-1", items[0].PartNumber)
	assert.Equal(t, 1, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.IsZero())
}

func TestExtractLineItems_FallbackDescriptionsDriveCategory(t *testing.T) {
	text := "PO #: PO-5-5\nItem: X-1\nDescription: Roughing pump oil\nQty: 2\n"
	items, _ := ExtractLineItems(text, ExtractHeader(text).Header())

	require.Len(t, items, 1)
	assert.Equal(t, "X-1", items[0].PartNumber)
	assert.Equal(t, "Roughing pump oil", items[0].Description)
	assert.Equal(t, constants.Vacuum, items[0].Category)
	assert.Equal(t, 2, items[0].Quantity)
}
