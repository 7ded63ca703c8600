package entity

import (
	"encoding/json"
	"time"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

// IngestRecord tracks one imported document from arrival to completion.
type IngestRecord struct {
	ID           string                 `json:"id"`
	Source       string                 `json:"source"`
	ContentHash  string                 `json:"content_hash"`
	Status       constants.IngestStatus `json:"status"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Report       json.RawMessage        `json:"report,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// AuditEvent is an append-only record of a change made by an import.
type AuditEvent struct {
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entity_id"`
	Details  map[string]any `json:"details,omitempty"`
}
