// Package extract turns raw purchase-order and quote text into structured
// line items, entity upsert candidates and part rows. Everything here is
// pure: no I/O, no shared mutable state, safe for concurrent use.
package extract

import (
	"strings"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

// ErrEmptyText is returned when no document text was supplied at all.
var ErrEmptyText = common.NewAppError("EMPTY_TEXT", "document text is required", common.ErrInvalidInput)

// Result is the full output of one pipeline run.
type Result struct {
	Document ParsedDocument        `json:"document"`
	Mode     Mode                  `json:"mode"`
	Parts    []PartInsertCandidate `json:"parts"`
	Entities EntityCandidates      `json:"entities"`
}

// Parse runs header extraction, line-item extraction, entity resolution and
// record mapping over one document.
func Parse(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	res := &Result{Document: ExtractHeader(text)}
	res.Document.LineItems, res.Mode = ExtractLineItems(text, res.Document.Header())
	res.Entities = ResolveEntities(res.Document.Header())
	res.Parts = MapToPartRecords(&res.Document)
	return res, nil
}

// ParseDocument is Parse without the derived records.
func ParseDocument(text string) (*ParsedDocument, error) {
	res, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return &res.Document, nil
}
