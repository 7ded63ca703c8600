package extract

import (
	"strings"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

type categoryKeywords struct {
	category constants.Category
	keywords []string
}

// categoryTable is checked top to bottom; the first category with any
// keyword contained in the text wins. Vacuum and plumbing terms sit above
// the generic material and compressor terms so "vacuum pump" and
// "steel valve" resolve to the specific category.
var categoryTable = []categoryKeywords{
	{constants.Vacuum, []string{"vacuum", "turbo", "roughing", "scroll", "diaphragm", "gauge", "manifold"}},
	{constants.Plumbing, []string{"fitting", "valve", "pipe", "hose", "coupling", "adapter", "plumbing"}},
	{constants.Material, []string{"steel", "aluminum", "material", "tube", "tubing", "pipe", "sheet", "plate", "rod", "bar"}},
	{constants.Electrical, []string{"cable", "wire", "power", "electrical", "connector", "terminal", "junction"}},
	{constants.Electronics, []string{"controller", "plc", "sensor", "electronic", "pcb", "circuit", "processor", "module"}},
	{constants.Systems, []string{"system", "assembly", "unit", "chamber", "housing", "enclosure", "frame"}},
	{constants.Compressors, []string{"pump", "compressor", "blower", "fan", "motor"}},
	{constants.Misc, []string{"misc", "other", "tool", "consumable", "accessory", "hardware"}},
}

// InferCategory maps free text to a category code. Text with no known
// keyword maps to Misc.
func InferCategory(text string) constants.Category {
	lower := strings.ToLower(text)
	for _, entry := range categoryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return constants.Misc
}

// CategoryKeywords returns the keyword list for a category in match order.
func CategoryKeywords(c constants.Category) []string {
	for _, entry := range categoryTable {
		if entry.category == c {
			out := make([]string, len(entry.keywords))
			copy(out, entry.keywords)
			return out
		}
	}
	return nil
}

// CategoryPrecedence returns the order in which categories are checked.
func CategoryPrecedence() []constants.Category {
	out := make([]constants.Category, len(categoryTable))
	for i, entry := range categoryTable {
		out[i] = entry.category
	}
	return out
}
