package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/export"
	"github.com/joseph-ayodele/parts-inventory/internal/ingest"
	"github.com/joseph-ayodele/parts-inventory/internal/objectstore"
)

type dirImportOutput struct {
	Stats   ingest.DirStats     `json:"stats"`
	Report  ingest.Report       `json:"report"`
	Results []ingest.FileResult `json:"results"`
}

func newImportCmd() *cobra.Command {
	var (
		dir        string
		files      []string
		format     string
		out        string
		skipHidden bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import documents into the inventory database",
		Long: `Import reads each document, extracts its line items and writes suppliers,
customers, manufacturers, purchase orders and parts. Documents already
imported (same content hash) are skipped.

Use --dir to walk a directory or --file (repeatable) for individual files
or s3://bucket/key objects. --out additionally writes an XLSX export once
the import finishes, which is handy together with --inmem.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (dir == "") == (len(files) == 0) {
				return fmt.Errorf("exactly one of --dir or --file is required")
			}
			ctx := context.Background()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var opts []ingest.Option
			if cfg.Storage.Endpoint != "" {
				objects, err := objectstore.New(ctx, cfg.Storage, logger)
				if err != nil {
					return err
				}
				opts = append(opts, ingest.WithObjectStore(objects))
			}
			opts = append(opts, ingest.WithBatchTimeout(cfg.Worker.ProcessTimeout))
			importer := ingest.NewImporter(store, newTextExtractor(), logger, opts...)

			var output any
			var failed bool
			if dir != "" {
				results, stats, err := importer.ImportDirectory(ctx, dir, skipHidden)
				if err != nil {
					return err
				}
				reports := make([]ingest.Report, 0, len(results))
				for _, r := range results {
					reports = append(reports, r.Report)
				}
				if results == nil {
					results = []ingest.FileResult{}
				}
				output = dirImportOutput{Stats: stats, Report: ingest.CombineReports(reports...), Results: results}
				failed = stats.Failed > 0
			} else {
				report := importer.ImportBatch(ctx, files, cfg.Worker.Workers)
				output = report
				failed = report.Failed()
			}

			if out != "" {
				b, err := export.NewService(store.Parts, logger).ExportPartsXLSX(ctx, entity.PartFilter{})
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, b, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				logger.Info("export written", "path", out)
			}

			if err := writeOutput(cmd.OutOrStdout(), format, output); err != nil {
				return err
			}
			if failed {
				return fmt.Errorf("one or more documents failed to import")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to import recursively")
	cmd.Flags().StringSliceVar(&files, "file", nil, "file path or s3:// URI to import (repeatable)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json|yaml")
	cmd.Flags().StringVar(&out, "out", "", "also write an XLSX export to this path")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", true, "skip hidden files and directories")
	return cmd
}
