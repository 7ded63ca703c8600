// Package export renders stored parts as an inventory workbook.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/parts-inventory/internal/entity"
)

const SheetName = "Parts"

// Headers are the workbook columns, in order.
var Headers = []string{
	"Category",
	"Part",
	"Description",
	"Qty",
	"PO",
	"Project",
	"Each",
	"Currency",
	"Part Number",
	"Drawing",
	"Order Date",
	"Status",
	"Supplier",
	"Manufacturer",
	"Notes",
}

// PartLister is the part query the export needs.
type PartLister interface {
	List(ctx context.Context, f entity.PartFilter) ([]entity.Part, error)
}

type Service struct {
	parts  PartLister
	logger *slog.Logger
}

func NewService(parts PartLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{parts: parts, logger: logger}
}

// ExportPartsXLSX returns an XLSX workbook (as bytes) with one row per part
// matching the filter. An empty filter exports everything.
func (s *Service) ExportPartsXLSX(ctx context.Context, filter entity.PartFilter) ([]byte, error) {
	start := time.Now()

	parts, err := s.parts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query parts: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
		_ = f.SetCellStyle(SheetName, "A1", last, bold)
	}

	for i, p := range parts {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, p.C.Label())
		write(2, p.Part)
		write(3, truncate(p.Desc, 255))
		write(4, p.Qty)
		write(5, p.PO)
		write(6, p.Proj)
		write(7, p.Each.InexactFloat64())
		write(8, p.D.ISO())
		write(9, p.PN)
		write(10, p.Dwg)
		write(11, p.Ord)
		write(12, p.S.Label())
		write(13, p.Sup)
		write(14, p.Mfg)
		write(15, p.N)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 16) // category
	_ = f.SetColWidth(SheetName, "B", "B", 22) // part
	_ = f.SetColWidth(SheetName, "C", "C", 48) // description
	_ = f.SetColWidth(SheetName, "D", "D", 8)
	_ = f.SetColWidth(SheetName, "E", "F", 14)
	_ = f.SetColWidth(SheetName, "G", "H", 10)
	_ = f.SetColWidth(SheetName, "I", "L", 14)
	_ = f.SetColWidth(SheetName, "M", "N", 28)
	_ = f.SetColWidth(SheetName, "O", "O", 60) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"po", filter.PO,
		"category", string(filter.Category),
		"rows", len(parts),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
