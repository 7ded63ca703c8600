package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

func TestInferCategory(t *testing.T) {
	cases := []struct {
		text string
		want constants.Category
	}{
		{`Stainless Steel Ball Valve 1/4"`, constants.Plumbing},
		{"Vacuum Turbo Pump", constants.Vacuum},
		{"Power Cable 10 AWG", constants.Electrical},
		{"Vacuum Gauge 0-30 inHg", constants.Vacuum},
		{"Aluminum sheet 2mm", constants.Material},
		{"PLC Controller", constants.Electronics},
		{"Chamber assembly", constants.Systems},
		{"Rotary blower", constants.Compressors},
		{"VACUUM", constants.Vacuum},
		{"Widget", constants.Misc},
		{"", constants.Misc},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, InferCategory(tc.text))
			assert.Equal(t, InferCategory(tc.text), InferCategory(tc.text))
		})
	}
}

func TestInferCategory_KeywordMapsToItsCategoryUnlessShadowed(t *testing.T) {
	precedence := CategoryPrecedence()
	for i, cat := range precedence {
		for _, kw := range CategoryKeywords(cat) {
			shadowed := false
			for _, earlier := range precedence[:i] {
				for _, other := range CategoryKeywords(earlier) {
					if strings.Contains(kw, other) {
						shadowed = true
					}
				}
			}
			if shadowed {
				continue
			}
			assert.Equal(t, cat, InferCategory("part: "+kw), kw)
		}
	}
}

func TestCategoryTableCoversEveryCode(t *testing.T) {
	assert.ElementsMatch(t, constants.AllCategories(), CategoryPrecedence())
	assert.Equal(t, constants.Misc, CategoryPrecedence()[len(CategoryPrecedence())-1])
}
