package extract

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

// ParsedDocument is the structured view of one purchase order or quote.
// Empty strings mean the field was not found.
type ParsedDocument struct {
	PONumber         string             `json:"poNumber,omitempty"`
	CustomerNumber   string             `json:"customerNumber,omitempty"`
	SupplierName     string             `json:"supplierName,omitempty"`
	ManufacturerName string             `json:"manufacturerName,omitempty"`
	OrderDate        string             `json:"orderDate,omitempty"`
	Project          string             `json:"project,omitempty"`
	Drawing          string             `json:"drawing,omitempty"`
	Currency         constants.Currency `json:"currency"`
	LineItems        []ParsedLineItem   `json:"lineItems"`
	RawText          string             `json:"-"`
}

// ParsedLineItem is one extracted row. Values are set at construction and not changed afterwards.
type ParsedLineItem struct {
	LineNumber  int                `json:"lineNumber,omitempty"`
	PartNumber  string             `json:"partNumber,omitempty"`
	Description string             `json:"description,omitempty"`
	Quantity    int                `json:"quantity"`
	UnitPrice   decimal.Decimal    `json:"unitPrice"`
	Currency    constants.Currency `json:"currency"`
	Category    constants.Category `json:"category"`
	Project     string             `json:"project,omitempty"`
	Drawing     string             `json:"drawing,omitempty"`
}

// Header is the document-level context passed to the line-item extractor.
type Header struct {
	PONumber         string
	CustomerNumber   string
	SupplierName     string
	ManufacturerName string
	OrderDate        string
	Project          string
	Drawing          string
	Currency         constants.Currency
}

// Header returns the header fields of the document.
func (d ParsedDocument) Header() Header {
	return Header{
		PONumber:         d.PONumber,
		CustomerNumber:   d.CustomerNumber,
		SupplierName:     d.SupplierName,
		ManufacturerName: d.ManufacturerName,
		OrderDate:        d.OrderDate,
		Project:          d.Project,
		Drawing:          d.Drawing,
		Currency:         d.Currency,
	}
}

// PartInsertCandidate mirrors the parts table columns.
type PartInsertCandidate struct {
	C    constants.Category   `json:"c"`
	Part string               `json:"part"`
	Desc string               `json:"desc,omitempty"`
	Qty  int                  `json:"qty"`
	PO   string               `json:"po,omitempty"`
	Proj string               `json:"proj,omitempty"`
	Each decimal.Decimal      `json:"each"`
	D    constants.Currency   `json:"d"`
	PN   string               `json:"pn,omitempty"`
	Dwg  string               `json:"dwg,omitempty"`
	Ord  string               `json:"ord,omitempty"`
	S    constants.PartStatus `json:"s"`
	Sup  string               `json:"sup,omitempty"`
	Mfg  string               `json:"mfg,omitempty"`
	N    string               `json:"n"`
}

type SupplierCandidate struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

type ManufacturerCandidate struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

type CustomerCandidate struct {
	CustomerNumber string `json:"customer_number"`
	Name           string `json:"name"`
	Notes          string `json:"notes"`
}

// EntityCandidates holds at most one candidate per kind for a single document.
type EntityCandidates struct {
	Suppliers     []SupplierCandidate     `json:"suppliers"`
	Manufacturers []ManufacturerCandidate `json:"manufacturers"`
	Customers     []CustomerCandidate     `json:"customers"`
}
