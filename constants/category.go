package constants

import (
	"strings"
)

// Category is the single-letter part category code stored in parts.c.
type Category string

const (
	Material    Category = "m"
	Electrical  Category = "e"
	Electronics Category = "t"
	Systems     Category = "s"
	Plumbing    Category = "p"
	Compressors Category = "c"
	Vacuum      Category = "v"
	Misc        Category = "x"
)

// allCategories is the display and validation order.
var allCategories = []Category{
	Material,
	Electrical,
	Electronics,
	Systems,
	Plumbing,
	Compressors,
	Vacuum,
	Misc,
}

var categoryLabels = map[Category]string{
	Material:    "Material",
	Electrical:  "Electrical",
	Electronics: "Electronics",
	Systems:     "Systems",
	Plumbing:    "Plumbing",
	Compressors: "Compressors",
	Vacuum:      "Vacuum",
	Misc:        "Misc/Other",
}

// AllCategories returns a copy of the category codes in display order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Label returns the human name of the category, or the Misc label for unknown codes.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[Misc]
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// CanonicalizeCategory accepts a code ("p") or a label ("Plumbing") and returns the code.
func CanonicalizeCategory(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Misc, false
	}

	synonyms := map[string]Category{
		"misc":  Misc,
		"other": Misc,
	}
	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	for _, cat := range allCategories {
		if normalized == string(cat) || normalized == strings.ToLower(cat.Label()) {
			return cat, true
		}
	}

	return Misc, false
}
