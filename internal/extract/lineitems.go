package extract

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode records which extraction path produced the line items.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeFallback   Mode = "fallback"
	ModeNone       Mode = "none"
)

// ExtractLineItems returns the line items of the document in document order.
// Structured rows are tried first; the fallback path runs only when no row
// matched.
func ExtractLineItems(text string, h Header) ([]ParsedLineItem, Mode) {
	if items := extractStructured(text, h); len(items) > 0 {
		return items, ModeStructured
	}
	if items := extractFallback(text, h); len(items) > 0 {
		return items, ModeFallback
	}
	return []ParsedLineItem{}, ModeNone
}

func extractStructured(text string, h Header) []ParsedLineItem {
	rows := matchRows(text)
	items := make([]ParsedLineItem, 0, len(rows))
	for _, row := range rows {
		item := ParsedLineItem{
			PartNumber:  row.part,
			Description: row.description,
			Quantity:    parseQuantity(row.quantity, 0),
			UnitPrice:   parsePrice(row.price),
			Currency:    h.Currency,
			Project:     h.Project,
			Drawing:     h.Drawing,
		}
		if row.line != "" {
			item.LineNumber, _ = strconv.Atoi(row.line)
		}
		item.Category = InferCategory(firstNonEmpty(item.Description, item.PartNumber))
		items = append(items, item)
	}
	return items
}

func parseQuantity(s string, def int) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parsePrice(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
