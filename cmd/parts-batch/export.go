package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/parts-inventory/constants"
	"github.com/joseph-ayodele/parts-inventory/internal/entity"
	"github.com/joseph-ayodele/parts-inventory/internal/export"
)

func newExportCmd() *cobra.Command {
	var (
		out      string
		po       string
		category string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the parts inventory to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			filter := entity.PartFilter{PO: po}
			if category != "" {
				c, ok := constants.CanonicalizeCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				filter.Category = c
			}

			ctx := context.Background()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			b, err := export.NewService(store.Parts, logger).ExportPartsXLSX(ctx, filter)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output XLSX path (required)")
	cmd.Flags().StringVar(&po, "po", "", "only parts on this purchase order")
	cmd.Flags().StringVar(&category, "category", "", "only parts in this category (code or name)")
	return cmd
}
