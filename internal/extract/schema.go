package extract

import (
	"encoding/json"
	"fmt"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["currency", "lineItems"],
  "properties": {
    "poNumber":         {"type": "string", "minLength": 1},
    "customerNumber":   {"type": "string", "minLength": 1},
    "supplierName":     {"type": "string", "minLength": 1},
    "manufacturerName": {"type": "string", "minLength": 1},
    "orderDate":        {"type": "string"},
    "project":          {"type": "string"},
    "drawing":          {"type": "string"},
    "currency":         {"enum": ["C", "U"]},
    "lineItems": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["quantity", "unitPrice", "currency", "category"],
        "properties": {
          "lineNumber":  {"type": "integer", "minimum": 0},
          "partNumber":  {"type": "string"},
          "description": {"type": "string"},
          "quantity":    {"type": "integer", "minimum": 0},
          "unitPrice":   {"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?$"},
          "currency":    {"enum": ["C", "U"]},
          "category":    {"enum": ["m", "e", "t", "s", "p", "c", "v", "x"]},
          "project":     {"type": "string"},
          "drawing":     {"type": "string"}
        }
      }
    }
  }
}`

var parsedDocumentSchema = common.MustCompileSchema("parsed_document.json", []byte(documentSchema))

// ValidateDocument checks the JSON form of a parsed document: closed
// currency and category sets, non-negative quantities and prices.
func ValidateDocument(doc *ParsedDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return common.ValidateJSON(parsedDocumentSchema, b)
}
