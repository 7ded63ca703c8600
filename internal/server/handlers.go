package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/extract"
	"github.com/joseph-ayodele/parts-inventory/internal/objectstore"
)

const (
	maxRecentLimit = 500
	maxPONumberLen = 64
)

var (
	parseRequestSchema = common.MustCompileSchema("parse_request.json", []byte(`{
  "type": "object",
  "required": ["text"],
  "properties": {"text": {"type": "string"}}
}`))

	ingestRequestSchema = common.MustCompileSchema("ingest_request.json", []byte(`{
  "type": "object",
  "required": ["filePaths"],
  "properties": {
    "filePaths": {"type": "array", "minItems": 1, "maxItems": 1000, "items": {"type": "string", "minLength": 1}}
  }
}`))
)

type parseRequest struct {
	Text string `json:"text"`
}

type ingestRequest struct {
	FilePaths []string `json:"filePaths"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Health(ctx); err != nil {
			s.logger.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": "database unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// parse runs the extraction pipeline over posted text without persisting anything.
func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(r, parseRequestSchema, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := extract.Parse(req.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := decodeBody(r, ingestRequestSchema, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	sources, err := s.resolveSources(req.FilePaths)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("starting batch import", "files", len(sources), "request_id", common.RequestIDFromContext(r.Context()))
	report := s.deps.Importer.ImportBatch(r.Context(), sources, s.deps.Workers)
	writeJSON(w, http.StatusOK, report)
}

// resolveSources maps client paths onto the configured document source: keys
// in the object store bucket, or files under the inbox directory. Clients never
// name arbitrary server paths.
func (s *Server) resolveSources(paths []string) ([]string, error) {
	if s.deps.Bucket == "" && s.deps.InboxDir == "" {
		return nil, common.NewAppError("NO_DOCUMENT_SOURCE", "no object store bucket or inbox directory is configured", common.ErrInvalidInput)
	}

	v := common.NewValidator()
	sources := make([]string, 0, len(paths))
	for i, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		field := fmt.Sprintf("filePaths[%d]", i)
		switch {
		case s.deps.Bucket != "":
			if !objectstore.IsURI(p) {
				p = "s3://" + s.deps.Bucket + "/" + strings.TrimPrefix(p, "/")
			}
		case objectstore.IsURI(p):
			v.Field(field, p, noObjectStore)
			continue
		default:
			resolved, err := s.inboxPath(p)
			if err != nil {
				v.Field(field, p, escapesInbox)
				continue
			}
			p = resolved
		}
		sources = append(sources, p)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, common.InvalidArgumentError("filePaths must name at least one file")
	}
	return sources, nil
}

// inboxPath resolves rel under the inbox and rejects symlinks leading out of
// it. Missing files pass so the importer can report them per document.
func (s *Server) inboxPath(rel string) (string, error) {
	p, err := common.ResolveWithin(s.deps.InboxDir, rel)
	if err != nil {
		return "", err
	}
	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		return p, nil
	}
	root, err := filepath.EvalSymlinks(s.deps.InboxDir)
	if err != nil {
		return "", err
	}
	if within, err := filepath.Rel(root, target); err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", common.InvalidArgumentErrorf("path %q escapes the inbox", rel)
	}
	return p, nil
}

func noObjectStore(fieldName string, value any) *common.ValidationError {
	return &common.ValidationError{Field: fieldName, Value: value, Message: "names an object but no object store is configured"}
}

func escapesInbox(fieldName string, value any) *common.ValidationError {
	return &common.ValidationError{Field: fieldName, Value: value, Message: "must stay inside the inbox"}
}

func (s *Server) recentIngests(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var n any = raw
		if parsed, err := strconv.Atoi(raw); err == nil {
			n = parsed
		}
		if err := common.NewValidator().Field("limit", n, common.IntBetween(1, maxRecentLimit)).Err(); err != nil {
			s.writeError(w, r, err)
			return
		}
		limit = n.(int)
	}
	recs, err := s.deps.Ingests.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []entity.IngestRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ingests": recs})
}

func (s *Server) exportXLSX(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.PartFilter{PO: strings.TrimSpace(q.Get("po"))}
	if err := common.NewValidator().Field("po", filter.PO, common.MaxLength(maxPONumberLen)).Err(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if c := strings.TrimSpace(q.Get("category")); c != "" {
		cat, ok := constants.CanonicalizeCategory(c)
		if !ok {
			s.writeError(w, r, common.InvalidArgumentErrorf("unknown category %q", c))
			return
		}
		filter.Category = cat
	}

	b, err := s.deps.Exporter.ExportPartsXLSX(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name := "parts.xlsx"
	if filter.PO != "" {
		name = "parts-" + sanitizeFilename(filter.PO) + ".xlsx"
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) getPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	po := strings.TrimSpace(chi.URLParam(r, "po"))
	if err := common.NewValidator().Field("po", po, common.Required, common.MaxLength(maxPONumberLen)).Err(); err != nil {
		s.writeError(w, r, err)
		return
	}
	order, err := s.deps.PurchaseOrders.Get(r.Context(), po)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
