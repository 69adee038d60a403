// Package export renders catalog data as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/edvin/shopadmin/internal/core"
	"github.com/edvin/shopadmin/internal/format"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productHeaders = []string{
	"ID", "Name", "SKU", "Category", "Price", "Price (cents)", "Stock", "Status", "Variants", "Created At",
}

// Products builds a workbook with one "Products" sheet: a header row
// followed by one row per product.
func Products(rows []core.ProductExportRow, currency string) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("add products sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range productHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range rows {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.SKU)
		row.AddCell().SetString(p.CategoryName)
		row.AddCell().SetString(format.Money(currency, p.PriceCents))
		row.AddCell().SetInt64(p.PriceCents)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(p.Status)
		row.AddCell().SetInt(p.VariantCount)
		row.AddCell().SetString(p.CreatedAt)
	}
	return file, nil
}

// WriteProducts writes the product workbook to w.
func WriteProducts(w io.Writer, rows []core.ProductExportRow, currency string) error {
	file, err := Products(rows, currency)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write products workbook: %w", err)
	}
	return nil
}
