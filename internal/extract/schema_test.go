package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

func TestValidateDocument(t *testing.T) {
	doc, err := ParseDocument(purchaseOrderText)
	require.NoError(t, err)
	assert.NoError(t, ValidateDocument(doc))
}

func TestValidateDocument_RejectsUnknownCategory(t *testing.T) {
	doc := &ParsedDocument{
		Currency: constants.CAD,
		LineItems: []ParsedLineItem{{
			PartNumber: "A-1",
			Quantity:   1,
			UnitPrice:  dec("1.50"),
			Currency:   constants.CAD,
			Category:   constants.Category("q"),
		}},
	}
	err := ValidateDocument(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestValidateDocument_RejectsNegativeQuantity(t *testing.T) {
	doc := &ParsedDocument{
		Currency: constants.USD,
		LineItems: []ParsedLineItem{{
			Quantity:  -2,
			UnitPrice: dec("1"),
			Currency:  constants.USD,
			Category:  constants.Misc,
		}},
	}
	assert.ErrorIs(t, ValidateDocument(doc), common.ErrValidation)
}
