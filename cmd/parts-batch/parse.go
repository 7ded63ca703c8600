package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/parts-inventory/internal/extract"
)

func newParseCmd() *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract and print the structured content of one document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			res, err := newTextExtractor().ExtractFile(context.Background(), file)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				logger.Warn("text extraction warning", "file", file, "warning", w)
			}
			parsed, err := extract.Parse(res.Text)
			if err != nil {
				return err
			}
			if err := extract.ValidateDocument(&parsed.Document); err != nil {
				logger.Warn("parsed document failed validation", "file", file, "error", err)
			}
			return writeOutput(cmd.OutOrStdout(), format, parsed)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "PDF or text file to parse (required)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json|yaml")
	return cmd
}
