package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/parts-inventory/constants"
)

// Document is one file to import: where it came from and its raw bytes.
type Document struct {
	Source string // local absolute path or s3://bucket/key
	Name   string // file name used to pick the format
	Data   []byte
}

// Report is the outcome of importing one document, or several combined.
// Warnings and Errors are never nil so they encode as [].
type Report struct {
	Source                string   `json:"source,omitempty"`
	IngestID              string   `json:"ingestId,omitempty"`
	PartsInserted         int      `json:"partsInserted"`
	PartsUpdated          int      `json:"partsUpdated"`
	PurchaseOrdersCreated int      `json:"purchaseOrdersCreated"`
	Deduplicated          bool     `json:"deduplicated"`
	Warnings              []string `json:"warnings"`
	Errors                []string `json:"errors"`
}

func newReport(source string) Report {
	return Report{Source: source, Warnings: []string{}, Errors: []string{}}
}

// Failed reports whether any stage of the import failed.
func (r Report) Failed() bool { return len(r.Errors) > 0 }

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// CombineReports sums counts and flattens messages. Errors are prefixed with
// the source they came from. The result is Deduplicated only when every
// input was.
func CombineReports(reports ...Report) Report {
	out := newReport("")
	out.Deduplicated = len(reports) > 0
	for _, r := range reports {
		out.PartsInserted += r.PartsInserted
		out.PartsUpdated += r.PartsUpdated
		out.PurchaseOrdersCreated += r.PurchaseOrdersCreated
		out.Deduplicated = out.Deduplicated && r.Deduplicated
		out.Warnings = append(out.Warnings, r.Warnings...)
		for _, e := range r.Errors {
			if r.Source != "" {
				e = r.Source + ": " + e
			}
			out.Errors = append(out.Errors, e)
		}
	}
	return out
}

// FileResult is the per-file outcome of a directory import.
type FileResult struct {
	Path         string `json:"path"`
	IngestID     string `json:"ingestId,omitempty"`
	Deduplicated bool   `json:"deduplicated"`
	Report       Report `json:"report"`
	Err          string `json:"error,omitempty"`
}

// DirStats summarizes a directory import.
type DirStats struct {
	Scanned      uint32 `json:"scanned"`
	Matched      uint32 `json:"matched"`
	Succeeded    uint32 `json:"succeeded"`
	Deduplicated uint32 `json:"deduplicated"`
	Failed       uint32 `json:"failed"`
}

// AllowedExt checks if a file extension is one the importer reads (pdf, txt).
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
