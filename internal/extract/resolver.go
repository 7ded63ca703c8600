package extract

import (
	"fmt"
	"time"
)

// now is swapped in tests.
var now = time.Now

func provenanceNote() string {
	return fmt.Sprintf("Auto-created from document import on %s", now().UTC().Format(time.RFC3339))
}

// ResolveEntities builds the supplier, manufacturer and customer upsert
// candidates for a document. A manufacturer whose name equals the supplier
// name is not emitted.
func ResolveEntities(h Header) EntityCandidates {
	out := EntityCandidates{
		Suppliers:     []SupplierCandidate{},
		Manufacturers: []ManufacturerCandidate{},
		Customers:     []CustomerCandidate{},
	}
	note := provenanceNote()

	if h.SupplierName != "" {
		out.Suppliers = append(out.Suppliers, SupplierCandidate{Name: h.SupplierName, Notes: note})
	}
	if h.ManufacturerName != "" && h.ManufacturerName != h.SupplierName {
		out.Manufacturers = append(out.Manufacturers, ManufacturerCandidate{Name: h.ManufacturerName, Notes: note})
	}
	if h.CustomerNumber != "" {
		out.Customers = append(out.Customers, CustomerCandidate{
			CustomerNumber: h.CustomerNumber,
			Name:           "Customer " + h.CustomerNumber,
			Notes:          note,
		})
	}
	return out
}
