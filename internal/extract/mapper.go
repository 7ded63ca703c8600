package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

const dbDateLayout = "2006-01-02"

// dateLayouts are tried in order; numeric slash dates are read month first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"1/2/06",
	"01/02/06",
	"1-2-06",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Jan. 2, 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC3339,
}

// FormatDateForDB converts a document date to YYYY-MM-DD. It returns false
// when the value cannot be read as a date.
func FormatDateForDB(s string) (string, bool) {
	t, ok := parseDate(s)
	if !ok {
		return "", false
	}
	return t.Format(dbDateLayout), true
}

// NormalizeDate is the older conversion used by manual entry paths; it
// substitutes today's date when the value cannot be parsed.
func NormalizeDate(s string) string {
	if v, ok := FormatDateForDB(s); ok {
		return v
	}
	return now().UTC().Format(dbDateLayout)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MapToPartRecords converts each line item into a part row, preserving order.
// Imported parts always start as Quoted.
func MapToPartRecords(doc *ParsedDocument) []PartInsertCandidate {
	if doc == nil {
		return nil
	}
	ts := now()
	note := fmt.Sprintf("Imported from document on %s", ts.UTC().Format(time.RFC3339))

	var ord string
	if doc.OrderDate != "" {
		ord, _ = FormatDateForDB(doc.OrderDate)
	}

	out := make([]PartInsertCandidate, 0, len(doc.LineItems))
	for _, item := range doc.LineItems {
		cat := item.Category
		if !cat.Valid() {
			cat = constants.Misc
		}
		cur := item.Currency
		if !cur.Valid() {
			cur = constants.DefaultCurrency
		}
		code := item.PartNumber
		if code == "" {
			code = fmt.Sprintf("UNKNOWN-%d", ts.UnixMilli())
		}
		out = append(out, PartInsertCandidate{
			C:    cat,
			Part: code,
			Desc: item.Description,
			Qty:  max(item.Quantity, 0),
			PO:   doc.PONumber,
			Proj: firstNonEmpty(item.Project, doc.Project),
			Each: item.UnitPrice,
			D:    cur,
			PN:   item.PartNumber,
			Dwg:  firstNonEmpty(item.Drawing, doc.Drawing),
			Ord:  ord,
			S:    constants.StatusQuoted,
			Sup:  doc.SupplierName,
			Mfg:  doc.ManufacturerName,
			N:    note,
		})
	}
	return out
}
