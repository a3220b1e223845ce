package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/five82/vitrine/internal/favorites"
)

func TestWriteWishlistLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.xlsx")
	added := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	items := []favorites.Favorite{
		{ID: "gid://shopify/Product/1", Title: "Board", Price: "699.95 USD", ImageURL: "https://img/1.jpg", CreatedAt: added},
		{ID: "gid://shopify/Product/2", Title: "Wax", Price: "24.95 USD"},
	}
	require.NoError(t, WriteWishlist(path, items))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, SheetName, f.GetSheetName(0))
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product ID", "Title", "Price", "Image URL", "Added"}, rows[0])
	assert.Equal(t, "Board", rows[1][1])
	assert.Equal(t, "2024-03-01T12:30:00Z", rows[1][4])
	assert.Equal(t, "Wax", rows[2][1])
}

func TestReadWishlistSkipsHeaderAndBlankIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Product ID", "Title"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{" gid://shopify/Product/9 ", "Gnome", "15.00 USD", "", "not-a-date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"", "orphan"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"gid://shopify/Product/10"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	items, err := ReadWishlist(path)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "gid://shopify/Product/9", items[0].ID)
	assert.Equal(t, "Gnome", items[0].Title)
	assert.True(t, items[0].CreatedAt.IsZero())
	assert.Equal(t, "gid://shopify/Product/10", items[1].ID)
	assert.Empty(t, items[1].Title)
}

func TestWishlistRoundTripKeepsTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.xlsx")
	added := time.Date(2023, 7, 4, 8, 0, 0, 0, time.UTC)
	require.NoError(t, WriteWishlist(path, []favorites.Favorite{{ID: "p1", Title: "One", CreatedAt: added}}))

	items, err := ReadWishlist(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].CreatedAt.Equal(added))
}

func TestReadWishlistMissingFile(t *testing.T) {
	_, err := ReadWishlist(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
