// Package server exposes parsing, import, export and inventory lookups over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/ingest"
	"github.com/joseph-ayodele/parts-inventory/internal/metrics"
)

// Importer runs synchronous batch imports.
type Importer interface {
	ImportBatch(ctx context.Context, sources []string, workers int) ingest.Report
}

type IngestLister interface {
	ListRecent(ctx context.Context, limit int) ([]entity.IngestRecord, error)
}

type PurchaseOrderGetter interface {
	Get(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
}

type Exporter interface {
	ExportPartsXLSX(ctx context.Context, filter entity.PartFilter) ([]byte, error)
}

// Deps are the collaborators behind the HTTP API.
type Deps struct {
	Importer       Importer
	Ingests        IngestLister
	PurchaseOrders PurchaseOrderGetter
	Exporter       Exporter
	// Health pings the database; nil skips the check.
	Health func(ctx context.Context) error
	// Bucket, when set, turns bare file keys into s3://Bucket/key sources.
	Bucket         string
	// InboxDir, used when no bucket is configured, is the only directory
	// local ingest paths may name, relative to it.
	InboxDir       string
	Workers        int
	RequestTimeout time.Duration
}

type Server struct {
	deps   Deps
	logger *slog.Logger
}

func New(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Workers <= 0 {
		deps.Workers = 4
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = 5 * time.Minute
	}
	return &Server{deps: deps, logger: logger}
}

// Router builds the chi router with all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestContext)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.deps.RequestTimeout))

	r.Get("/health", s.health)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.parse)
		r.Route("/parts", func(r chi.Router) {
			r.Post("/ingest", s.ingest)
			r.Get("/ingest", s.recentIngests)
			r.Get("/export.xlsx", s.exportXLSX)
		})
		r.Get("/purchase-orders/{po}", s.getPurchaseOrder)
	})
	return r
}

// requestContext copies chi's request ID into the context key the rest of
// the codebase reads.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimiddleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(common.WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", common.RequestIDFromContext(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
