package constants

// PartStatus is the lifecycle code stored in parts.s.
type PartStatus int

const (
	StatusUnknown   PartStatus = 0
	StatusQuoted    PartStatus = 1
	StatusOrdered   PartStatus = 2
	StatusShipped   PartStatus = 3
	StatusReceived  PartStatus = 4
	StatusInstalled PartStatus = 5
	StatusBackorder PartStatus = 6
	StatusCancelled PartStatus = 7
	StatusReturned  PartStatus = 8
	StatusArchived  PartStatus = 9
)

var statusLabels = map[PartStatus]string{
	StatusUnknown:   "Unknown",
	StatusQuoted:    "Quoted",
	StatusOrdered:   "Ordered",
	StatusShipped:   "Shipped",
	StatusReceived:  "Received",
	StatusInstalled: "Installed",
	StatusBackorder: "Backorder",
	StatusCancelled: "Cancelled",
	StatusReturned:  "Returned",
	StatusArchived:  "Archived",
}

func (s PartStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusUnknown]
}

// IngestStatus is the canonical status for rows in raw_ingest.
type IngestStatus string

// Stable values (store these exact strings in DB).
const (
	IngestPending    IngestStatus = "pending"
	IngestProcessing IngestStatus = "processing"
	IngestCompleted  IngestStatus = "completed"
	IngestFailed     IngestStatus = "failed"
)
