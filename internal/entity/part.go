package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

// Part is a stored parts-inventory row. Field names follow the inventory
// sheet's short column names.
type Part struct {
	ID        uuid.UUID            `json:"id"`
	C         constants.Category   `json:"c"`
	Part      string               `json:"part"`
	Desc      string               `json:"desc"`
	Qty       int                  `json:"qty"`
	PO        string               `json:"po"`
	Proj      string               `json:"proj"`
	Each      decimal.Decimal      `json:"each"`
	D         constants.Currency   `json:"d"`
	PN        string               `json:"pn"`
	Dwg       string               `json:"dwg"`
	Ord       string               `json:"ord"`
	S         constants.PartStatus `json:"s"`
	Sup       string               `json:"sup"`
	Mfg       string               `json:"mfg"`
	N         string               `json:"n"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// PartFilter narrows part listings. Zero values match everything.
type PartFilter struct {
	PO       string
	Category constants.Category
	Limit    int
}
