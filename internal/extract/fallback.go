package extract

import (
	"fmt"
)

// extractFallback is the last-resort path for documents without tabular
// rows. Part numbers, quantities, prices and descriptions are collected
// independently and paired by position: the i-th of each list forms item i.
// Pairing can associate fields from unrelated parts of the text when counts
// differ.
//
// Nothing is produced unless the header carries a PO number.
func extractFallback(text string, h Header) []ParsedLineItem {
	if h.PONumber == "" {
		return nil
	}

	parts := AllMatches(text, FieldPartNumber)
	quantities := AllMatches(text, FieldQuantity)
	prices := AllMatches(text, FieldUnitPrice)
	descriptions := AllMatches(text, FieldDescription)

	n := max(len(parts), len(quantities), len(prices), 1)
	items := make([]ParsedLineItem, 0, n)
	for i := 0; i < n; i++ {
		item := ParsedLineItem{
			PartNumber:  at(parts, i),
			Description: at(descriptions, i),
			Quantity:    parseQuantity(at(quantities, i), 1),
			UnitPrice:   parsePrice(at(prices, i)),
			Currency:    h.Currency,
			Project:     h.Project,
			Drawing:     h.Drawing,
		}
		if item.PartNumber == "" {
			item.PartNumber = fmt.Sprintf("PART-%d", i+1)
		}
		item.Category = InferCategory(firstNonEmpty(item.Description, item.PartNumber))
		items = append(items, item)
	}
	return items
}

func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}
