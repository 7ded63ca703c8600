// Command parts-batch parses, imports and exports parts-inventory documents
// from the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
	"github.com/joseph-ayodele/parts-inventory/internal/repository"
	"github.com/joseph-ayodele/parts-inventory/internal/textextract"
)

var (
	inmem    bool
	logLevel string

	cfg    *common.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "parts-batch",
	Short: "Parse and import purchase orders and quotes into the parts inventory",
	Long: `parts-batch runs the document extraction pipeline from the command line.

Use this tool to:
- parse a single PDF or text document and print what was extracted
- import files or whole directories into the inventory database
- export the inventory as an XLSX workbook
- list recent imports

Database settings come from the environment (.env is honoured); --inmem uses
a throwaway SQLite database instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = common.LoadConfig()
		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = common.ParseLogLevel(logLevel)
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&inmem, "inmem", false, "use an in-memory SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newRecentCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore opens and migrates the configured database, or an in-memory one
// when --inmem is set.
func openStore(ctx context.Context) (*repository.Store, error) {
	dbCfg := cfg.Database
	if inmem {
		dbCfg.Driver, dbCfg.DSN = common.DriverSQLite, ":memory:"
	}
	if dbCfg.Driver == common.DriverSQLite && dbCfg.DSN == "" {
		dbCfg.DSN = "file:parts.db"
	}
	if dbCfg.Driver == common.DriverPostgres && dbCfg.DSN == "" {
		return nil, fmt.Errorf("DB_URL is required (or use --inmem)")
	}
	store, err := repository.OpenConfigured(ctx, dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func newTextExtractor() *textextract.Extractor {
	return textextract.NewExtractor(textextract.Config{
		PDFToText: cfg.Text.PDFToTextBin,
		MaxPages:  cfg.Text.MaxPages,
	}, logger)
}
