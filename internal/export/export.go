// Package export writes inventory snapshots to files.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stocktrack/stocktrack/internal/models"
	"github.com/stocktrack/stocktrack/internal/render"
)

// SheetName is the worksheet holding the inventory rows.
const SheetName = "Inventory"

// Columns is the spreadsheet header row.
var Columns = []string{
	"Code", "Order code", "Name", "Category", "Unit",
	"Stock", "Safety stock", "Unit price", "Stock value",
	"Supplier", "Shortage status", "Order status", "Note",
}

// XLSX writes the result as a spreadsheet.
func XLSX(w io.Writer, result models.InventoryResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, item := range result.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			item.Code,
			item.OrderCode,
			item.Name,
			item.Category,
			item.Unit,
			item.StockQuantity,
			item.SafetyStock,
			item.UnitPrice.InexactFloat64(),
			item.StockValue().InexactFloat64(),
			item.SupplierName,
			item.ShortageStatus,
			item.OrderStatus,
			item.Note,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	summary, err := excelize.CoordinatesToCellName(1, len(result.Items)+3)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, summary, render.CountLabel(result.Filtered, result.Total)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile writes the result to path. The format follows the extension:
// .xlsx for a spreadsheet, .html or .htm for the rendered markup.
func WriteFile(path string, result models.InventoryResult) error {
	var buf bytes.Buffer

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		if err := XLSX(&buf, result); err != nil {
			return err
		}
	case ".html", ".htm":
		if err := render.HTML(&buf, result); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
