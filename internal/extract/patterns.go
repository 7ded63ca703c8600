package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Field names a semantic value the pattern library can locate in document text.
type Field string

const (
	FieldPONumber         Field = "po_number"
	FieldCustomerNumber   Field = "customer_number"
	FieldSupplierName     Field = "supplier_name"
	FieldManufacturerName Field = "manufacturer_name"
	FieldPartNumber       Field = "part_number"
	FieldUnitPrice        Field = "unit_price"
	FieldQuantity         Field = "quantity"
	FieldDescription      Field = "description"
	FieldOrderDate        Field = "order_date"
	FieldCurrency         Field = "currency"
	FieldProject          Field = "project"
	FieldDrawing          Field = "drawing"
)

// rule is one compiled pattern. Group 1 holds the value; accept optionally
// rejects a syntactically matching value so the scan moves on.
type rule struct {
	re     *regexp.Regexp
	accept func(string) bool
}

func (r rule) ok(v string) bool {
	return v != "" && (r.accept == nil || r.accept(v))
}

func newRule(expr string) rule {
	return rule{re: regexp.MustCompile(`(?im)` + expr)}
}

func newDigitRule(expr string) rule {
	r := newRule(expr)
	r.accept = hasDigit
	return r
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

const (
	// identifier-like token: starts alphanumeric, may contain dashes
	idToken = `([A-Z0-9][A-Z0-9\-]*)`
	// part token additionally allows / . _
	partToken = `([A-Z0-9][A-Z0-9\-/._]*)`
	amount    = `(\d[\d,]*(?:\.\d+)?)`
	// free text ends at a newline, pipe or semicolon
	freeText = `([^\s:|;][^\r\n|;]*?)[ \t]*(?:$|[\r|;])`
	dateExpr = `(\d{4}[/-]\d{1,2}[/-]\d{1,2}|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|[A-Z][a-z]{2,8}\.?[ \t]+\d{1,2},?[ \t]+\d{4})`
	label    = `[ \t]*(?:#|No\.?|Number)?[ \t]*:?[ \t]*`
)

// fieldRules is constant configuration; list order is match priority.
var fieldRules = map[Field][]rule{
	FieldPONumber: {
		newDigitRule(`\bPO\b[ \t]*(?:Number|No\.?|#)?[ \t]*:?[ \t]*` + idToken),
		newDigitRule(`\bPurchase[ \t]*Order` + label + idToken),
		newDigitRule(`\bOrder[ \t]*(?:Number|No\.?|#)[ \t]*:?[ \t]*` + idToken),
	},
	FieldCustomerNumber: {
		newDigitRule(`\bCustomer[ \t]*(?:No\.?|#|Number)[ \t]*:?[ \t]*` + idToken),
		newDigitRule(`\bCust\.?[ \t]*#[ \t]*:?[ \t]*` + idToken),
		newDigitRule(`\bAccount[ \t]*(?:#|No\.?|Number)[ \t]*:?[ \t]*` + idToken),
	},
	FieldSupplierName: {
		newRule(`\bSupplier\b[ \t]*:?[ \t]*` + freeText),
		newRule(`\bVendor\b[ \t]*:?[ \t]*` + freeText),
		newRule(`\bFrom[ \t]*:[ \t]*` + freeText),
	},
	FieldManufacturerName: {
		newRule(`\bManufacturer\b[ \t]*:?[ \t]*` + freeText),
		newRule(`\bMfg\b\.?[ \t]*:?[ \t]*` + freeText),
		newRule(`\bBrand\b[ \t]*:?[ \t]*` + freeText),
	},
	FieldPartNumber: {
		newRule(`\bPart\b` + label + partToken),
		newRule(`\bPN\b[ \t]*:?[ \t]*` + partToken),
		newRule(`\bItem\b` + label + partToken),
		newRule(`\bModel\b` + label + partToken),
	},
	FieldUnitPrice: {
		newRule(`\bUnit[ \t]*Price\b[ \t]*:?[ \t]*\$?[ \t]*` + amount),
		newRule(`\bEach\b[ \t]*:?[ \t]*\$?[ \t]*` + amount),
		newRule(`\bPrice\b[ \t]*:?[ \t]*\$?[ \t]*` + amount),
		newRule(`\bCost\b[ \t]*:?[ \t]*\$?[ \t]*` + amount),
	},
	FieldQuantity: {
		newRule(`\bQty\b[ \t]*:?[ \t]*(\d[\d,]*)`),
		newRule(`\bQuantity\b[ \t]*:?[ \t]*(\d[\d,]*)`),
	},
	FieldDescription: {
		newRule(`\bDescription\b[ \t]*:?[ \t]*` + freeText),
		newRule(`\bDesc\b\.?[ \t]*:?[ \t]*` + freeText),
	},
	FieldOrderDate: {
		newRule(`\bOrder[ \t]*Date\b[ \t]*:?[ \t]*` + dateExpr),
		newRule(`\bDate\b[ \t]*:?[ \t]*` + dateExpr),
		newRule(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`),
	},
	FieldCurrency: {
		newRule(`\bCurrency\b[ \t]*:?[ \t]*(USD|CAD|US|CA)\b`),
		newRule(`\$[ \t]?(USD|CAD)\b`),
		newRule(`\b(USD|CAD)\b`),
	},
	FieldProject: {
		newRule(`\bProject\b` + label + idToken),
		newRule(`\bProj\b\.?` + label + idToken),
		newRule(`\bJob\b` + label + idToken),
	},
	FieldDrawing: {
		newDigitRule(`\bDrawing\b` + label + `([A-Z0-9][A-Z0-9\-.]*)`),
		newDigitRule(`\bDWG\b` + label + `([A-Z0-9][A-Z0-9\-.]*)`),
		newDigitRule(`\bPrint\b` + label + `([A-Z0-9][A-Z0-9\-.]*)`),
	},
}

// Patterns returns the expressions registered for a field, in priority order.
func Patterns(f Field) []string {
	rules := fieldRules[f]
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.re.String()
	}
	return out
}

// FirstMatch returns the trimmed value of the first pattern in the field's
// list that matches text. Later patterns are not tried once one succeeds.
func FirstMatch(text string, f Field) (string, bool) {
	return firstMatch(text, fieldRules[f])
}

// AllMatches applies every pattern of the field and concatenates the values
// pattern by pattern. A span already captured by an earlier pattern is not
// reported twice.
func AllMatches(text string, f Field) []string {
	return allMatches(text, fieldRules[f])
}

func firstMatch(text string, rules []rule) (string, bool) {
	for _, r := range rules {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			if len(m) < 2 {
				continue
			}
			v := strings.TrimSpace(m[1])
			if r.ok(v) {
				return v, true
			}
		}
	}
	return "", false
}

type span struct{ start, end int }

func allMatches(text string, rules []rule) []string {
	var out []string
	seen := make(map[span]struct{})
	for _, r := range rules {
		for _, idx := range r.re.FindAllStringSubmatchIndex(text, -1) {
			if len(idx) < 4 || idx[2] < 0 {
				continue
			}
			v := strings.TrimSpace(text[idx[2]:idx[3]])
			if !r.ok(v) {
				continue
			}
			s := span{idx[2], idx[3]}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// rowVariant is one surface syntax for a tabular line item. Group indexes
// are declared per variant; 0 means the variant has no such group.
type rowVariant struct {
	name  string
	re    *regexp.Regexp
	line  int
	part  int
	desc  int
	qty   int
	price int
}

var rowVariants = []rowVariant{
	{
		// Part#: X  Description: Y  Qty: 5  Price: $1.00
		name: "labeled",
		re: regexp.MustCompile(`(?im)\b(?:Part|PN|Item)\b` + label + partToken +
			`[ \t]+(?:Description|Desc)\b[ \t]*:?[ \t]*([^\r\n|;]+?)` +
			`[ \t]+(?:Qty|Quantity)\b[ \t]*:?[ \t]*(\d[\d,]*)` +
			`[ \t]+(?:Unit[ \t]*)?(?:Price|Each|Cost)\b[ \t]*:?[ \t]*\$?[ \t]*` + amount),
		part: 1, desc: 2, qty: 3, price: 4,
	},
	{
		// 1  X  Y  5  $1.00
		name: "numbered",
		re: regexp.MustCompile(`(?im)^[ \t]*(\d+)[ \t]+` + partToken +
			`[ \t]+([^0-9\r\n|;]+?)[ \t]+(\d[\d,]*)[ \t]+\$?[ \t]*` + amount),
		line: 1, part: 2, desc: 3, qty: 4, price: 5,
	},
	{
		// X  Y  5  $1.00
		name: "table",
		re: regexp.MustCompile(`(?im)^[ \t]*` + partToken +
			`[ \t]+([^0-9\r\n|;]+?)[ \t]+(\d[\d,]*)[ \t]+\$?[ \t]*` + amount),
		part: 1, desc: 2, qty: 3, price: 4,
	},
}

// rowMatch is a raw structured row before numeric parsing.
type rowMatch struct {
	variant     string
	line        string
	part        string
	description string
	quantity    string
	price       string
}

func group(text string, idx []int, g int) string {
	if g <= 0 || 2*g+1 >= len(idx) || idx[2*g] < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx[2*g]:idx[2*g+1]])
}

// matchRows collects rows from every variant in list order. A match that
// overlaps text already claimed by an earlier match is dropped.
func matchRows(text string) []rowMatch {
	var (
		out     []rowMatch
		claimed []span
	)
	overlaps := func(s span) bool {
		for _, c := range claimed {
			if s.start < c.end && c.start < s.end {
				return true
			}
		}
		return false
	}
	for _, v := range rowVariants {
		for _, idx := range v.re.FindAllStringSubmatchIndex(text, -1) {
			s := span{idx[0], idx[1]}
			if overlaps(s) {
				continue
			}
			claimed = append(claimed, s)
			out = append(out, rowMatch{
				variant:     v.name,
				line:        group(text, idx, v.line),
				part:        group(text, idx, v.part),
				description: group(text, idx, v.desc),
				quantity:    group(text, idx, v.qty),
				price:       group(text, idx, v.price),
			})
		}
	}
	return out
}
