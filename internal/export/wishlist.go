// Package export moves the wishlist in and out of Excel workbooks.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/five82/vitrine/internal/favorites"
)

// SheetName is the worksheet holding the wishlist.
const SheetName = "Wishlist"

var header = []any{"Product ID", "Title", "Price", "Image URL", "Added"}

// WriteWishlist writes items to a new workbook at path, one row per favorite
// under a header row.
func WriteWishlist(path string, items []favorites.Favorite) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell for row %d: %w", i+2, err)
		}
		added := ""
		if !item.CreatedAt.IsZero() {
			added = item.CreatedAt.UTC().Format(time.RFC3339)
		}
		row := []any{item.ID, item.Title, item.Price, item.ImageURL, added}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 36); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ReadWishlist reads favorites from the first sheet of the workbook at path.
// The header row and rows without a product id are skipped.
func ReadWishlist(path string) ([]favorites.Favorite, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var items []favorites.Favorite
	for i, row := range rows {
		if i == 0 {
			continue
		}
		id := column(row, 0)
		if id == "" {
			continue
		}
		item := favorites.Favorite{
			ID:       id,
			Title:    column(row, 1),
			Price:    column(row, 2),
			ImageURL: column(row, 3),
		}
		if added := column(row, 4); added != "" {
			if ts, err := time.Parse(time.RFC3339, added); err == nil {
				item.CreatedAt = ts
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
