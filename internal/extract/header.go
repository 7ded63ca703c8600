package extract

import (
	"github.com/joseph-ayodele/parts-inventory/constants"
)

// ExtractHeader recovers the document-level fields. Missing fields stay
// empty; currency always resolves, defaulting to CAD.
func ExtractHeader(text string) ParsedDocument {
	doc := ParsedDocument{
		RawText:  text,
		Currency: constants.DefaultCurrency,
	}
	doc.PONumber, _ = FirstMatch(text, FieldPONumber)
	doc.CustomerNumber, _ = FirstMatch(text, FieldCustomerNumber)
	doc.SupplierName, _ = FirstMatch(text, FieldSupplierName)
	doc.ManufacturerName, _ = FirstMatch(text, FieldManufacturerName)
	doc.OrderDate, _ = FirstMatch(text, FieldOrderDate)
	doc.Project, _ = FirstMatch(text, FieldProject)
	doc.Drawing, _ = FirstMatch(text, FieldDrawing)

	if token, ok := FirstMatch(text, FieldCurrency); ok {
		doc.Currency = constants.CurrencyFromToken(token)
	}
	return doc
}
