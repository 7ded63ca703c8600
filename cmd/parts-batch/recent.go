package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/parts-inventory/internal/entity"
)

func newRecentCmd() *cobra.Command {
	var (
		limit  int
		format string
	)
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent imports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.Ingests.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []entity.IngestRecord{}
			}
			return writeOutput(cmd.OutOrStdout(), format, recs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of imports to list")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json|yaml")
	return cmd
}
