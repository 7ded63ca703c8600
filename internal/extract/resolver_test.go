package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEntities(t *testing.T) {
	fixClock(t, fixedTime)

	got := ResolveEntities(Header{
		SupplierName:     "Test Supplier Inc.",
		ManufacturerName: "Test Manufacturer Corp.",
		CustomerNumber:   "CUST-001",
	})

	require.Len(t, got.Suppliers, 1)
	assert.Equal(t, "Test Supplier Inc.", got.Suppliers[0].Name)
	assert.Equal(t, "Auto-created from document import on 2024-03-20T14:30:00Z", got.Suppliers[0].Notes)

	require.Len(t, got.Manufacturers, 1)
	assert.Equal(t, "Test Manufacturer Corp.", got.Manufacturers[0].Name)

	require.Len(t, got.Customers, 1)
	assert.Equal(t, "CUST-001", got.Customers[0].CustomerNumber)
	assert.Equal(t, "Customer CUST-001", got.Customers[0].Name)
	assert.Contains(t, got.Customers[0].Notes, "2024-03-20T14:30:00Z")
}

func TestResolveEntities_SameSupplierAndManufacturer(t *testing.T) {
	got := ResolveEntities(Header{
		SupplierName:     "Same Company Ltd.",
		ManufacturerName: "Same Company Ltd.",
	})

	assert.Len(t, got.Suppliers, 1)
	assert.Empty(t, got.Manufacturers)
	assert.Empty(t, got.Customers)
}

func TestResolveEntities_ComparisonIsExact(t *testing.T) {
	got := ResolveEntities(Header{
		SupplierName:     "Same Company Ltd.",
		ManufacturerName: "SAME COMPANY LTD.",
	})
	assert.Len(t, got.Manufacturers, 1)
}

func TestResolveEntities_ManufacturerOnly(t *testing.T) {
	got := ResolveEntities(Header{ManufacturerName: "Edwards"})
	assert.Empty(t, got.Suppliers)
	assert.Len(t, got.Manufacturers, 1)
}

func TestResolveEntities_EmptyHeader(t *testing.T) {
	got := ResolveEntities(Header{})
	assert.NotNil(t, got.Suppliers)
	assert.NotNil(t, got.Manufacturers)
	assert.NotNil(t, got.Customers)
	assert.Empty(t, got.Suppliers)
}
