package constants

import "strings"

// Currency is the single-letter currency code stored on parts and PO line items.
type Currency string

const (
	CAD Currency = "C"
	USD Currency = "U"
)

// DefaultCurrency applies when a document carries no currency token.
const DefaultCurrency = CAD

// CurrencyFromToken maps a raw token (USD, CAD, US, CA) to a code.
// Only tokens containing "USD" map to USD; everything else is CAD.
func CurrencyFromToken(token string) Currency {
	if strings.Contains(strings.ToUpper(token), "USD") {
		return USD
	}
	return CAD
}

func (c Currency) Valid() bool {
	return c == CAD || c == USD
}

// ISO returns the ISO 4217 code.
func (c Currency) ISO() string {
	if c == USD {
		return "USD"
	}
	return "CAD"
}
