package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/parts-inventory/internal/async"
	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/export"
	"github.com/joseph-ayodele/parts-inventory/internal/ingest"
	"github.com/joseph-ayodele/parts-inventory/internal/objectstore"
	"github.com/joseph-ayodele/parts-inventory/internal/repository"
	"github.com/joseph-ayodele/parts-inventory/internal/server"
	"github.com/joseph-ayodele/parts-inventory/internal/textextract"
)

func main() {
	cfg := common.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.OpenConfigured(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.HealthCheck(ctx, 5*time.Second); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if err := store.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	text := textextract.NewExtractor(textextract.Config{
		PDFToText: cfg.Text.PDFToTextBin,
		MaxPages:  cfg.Text.MaxPages,
	}, logger)

	opts := []ingest.Option{ingest.WithBatchTimeout(cfg.Worker.ProcessTimeout)}
	bucket := ""
	if cfg.Storage.Endpoint != "" {
		objects, err := objectstore.New(ctx, cfg.Storage, logger)
		if err != nil {
			logger.Error("failed to create object store client", "error", err)
			os.Exit(1)
		}
		if err := objects.Ping(ctx); err != nil {
			logger.Warn("object store not reachable at startup", "bucket", objects.Bucket(), "error", err)
		}
		opts = append(opts, ingest.WithObjectStore(objects))
		bucket = objects.Bucket()
	}
	importer := ingest.NewImporter(store, text, logger, opts...)

	queue := async.NewQueue(importer.Handle, logger,
		async.WithWorkers(cfg.Worker.Workers),
		async.WithQueueSize(cfg.Worker.QueueSize),
		async.WithProcessTimeout(cfg.Worker.ProcessTimeout),
	)

	if cfg.Inbox.Dir != "" {
		if err := os.MkdirAll(cfg.Inbox.Dir, 0o755); err != nil {
			logger.Error("failed to create inbox directory", "dir", cfg.Inbox.Dir, "error", err)
			os.Exit(1)
		}
		if err := ingest.WatchInbox(ctx, queue, cfg.Inbox.Dir, cfg.Inbox.Debounce, logger); err != nil {
			logger.Error("failed to start inbox watcher", "dir", cfg.Inbox.Dir, "error", err)
			os.Exit(1)
		}
	}

	api := server.New(server.Deps{
		Importer:       importer,
		Ingests:        store.Ingests,
		PurchaseOrders: store.PurchaseOrders,
		Exporter:       export.NewService(store.Parts, logger),
		Health:         func(ctx context.Context) error { return store.HealthCheck(ctx, 0) },
		Bucket:         bucket,
		InboxDir:       cfg.Inbox.Dir,
		Workers:        cfg.Worker.Workers,
		RequestTimeout: cfg.Worker.ProcessTimeout * 2,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("partsd listening", "addr", cfg.Server.HTTPAddr, "driver", cfg.Database.Driver, "inbox", cfg.Inbox.Dir)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	queue.Shutdown(shutdownCtx)
}
