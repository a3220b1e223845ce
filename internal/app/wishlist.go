package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/vitrine/internal/export"
	"github.com/five82/vitrine/internal/favorites"
)

// ExportWishlist writes every favorite to an .xlsx workbook at path and
// returns how many were written.
func ExportWishlist(ctx context.Context, store *favorites.Store, path string) (int, error) {
	items, err := store.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("read wishlist: %w", err)
	}
	if err := export.WriteWishlist(path, items); err != nil {
		return 0, fmt.Errorf("export wishlist: %w", err)
	}
	return len(items), nil
}

// ImportWishlist merges the favorites listed in the workbook at path into
// store. Existing rows keep their added time.
func ImportWishlist(ctx context.Context, store *favorites.Store, path string) (int, error) {
	items, err := export.ReadWishlist(path)
	if err != nil {
		return 0, fmt.Errorf("import wishlist: %w", err)
	}
	now := time.Now().UTC()
	for i, item := range items {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if err := store.Save(ctx, item); err != nil {
			return i, fmt.Errorf("import wishlist row %d: %w", i+1, err)
		}
	}
	return len(items), nil
}
