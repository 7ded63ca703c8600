package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

// PurchaseOrder represents a purchase order for data transfer between layers.
type PurchaseOrder struct {
	ID         uuid.UUID          `json:"id"`
	PONumber   string             `json:"po_number"`
	SupplierID *uuid.UUID         `json:"supplier_id,omitempty"`
	CustomerID *uuid.UUID         `json:"customer_id,omitempty"`
	OrderDate  string             `json:"order_date,omitempty"`
	Currency   constants.Currency `json:"currency"`
	Notes      string             `json:"notes"`
	LineItems  []POLineItem       `json:"line_items"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// POLineItem links a part to the purchase order it was quoted or ordered on.
type POLineItem struct {
	PartID    uuid.UUID          `json:"part_id"`
	Part      string             `json:"part"`
	Quantity  int                `json:"quantity"`
	UnitPrice decimal.Decimal    `json:"unit_price"`
	Currency  constants.Currency `json:"currency"`
}
