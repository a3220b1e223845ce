package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vitrine/internal/config"
	"github.com/five82/vitrine/internal/export"
	"github.com/five82/vitrine/internal/favorites"
	"github.com/five82/vitrine/internal/storefront/storefronttest"
)

func writeConfig(t *testing.T, endpoint, dataDir string) string {
	t.Helper()
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvShopDomain, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	body := fmt.Sprintf("endpoint = %q\nstorefront_token = \"sf-token\"\ndata_dir = %q\nlog_level = \"debug\"\n", endpoint, dataDir)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunImportThenExportWishlist(t *testing.T) {
	server := storefronttest.NewServer(storefronttest.Options{StorefrontToken: "sf-token"})
	defer server.Close()

	dataDir := t.TempDir()
	cfgPath := writeConfig(t, server.Endpoint(), dataDir)
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")

	src := filepath.Join(t.TempDir(), "in.xlsx")
	added := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, export.WriteWishlist(src, []favorites.Favorite{
		{ID: "gid://shopify/Product/1001", Title: "The Complete Snowboard", Price: "699.95 USD", CreatedAt: added},
		{ID: "gid://shopify/Product/1004", Title: "Garden Gnome", Price: "15.00 USD"},
	}))

	var out bytes.Buffer
	err := Run(context.Background(), Options{ConfigPath: cfgPath, PrefsPath: prefsPath, ImportWishlist: src, Out: &out})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("imported 2 favorites from %s\n", src), out.String())

	dst := filepath.Join(t.TempDir(), "out.xlsx")
	out.Reset()
	err = Run(context.Background(), Options{ConfigPath: cfgPath, PrefsPath: prefsPath, ExportWishlist: dst, Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "exported 2 favorites")

	items, err := export.ReadWishlist(dst)
	require.NoError(t, err)
	require.Len(t, items, 2)
	byID := map[string]favorites.Favorite{}
	for _, item := range items {
		byID[item.ID] = item
	}
	assert.True(t, byID["gid://shopify/Product/1001"].CreatedAt.Equal(added))
	assert.False(t, byID["gid://shopify/Product/1004"].CreatedAt.IsZero())

	_, err = os.Stat(filepath.Join(dataDir, "favorites.db"))
	assert.NoError(t, err)
	info, err := os.Stat(filepath.Join(dataDir, "vitrine.log"))
	require.NoError(t, err)
	assert.Positive(t, info.Size(), "startup is logged")
}

func TestRunRequiresEndpoint(t *testing.T) {
	cfgPath := writeConfig(t, "", t.TempDir())
	err := Run(context.Background(), Options{ConfigPath: cfgPath, ExportWishlist: "ignored.xlsx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve endpoint")
}

func TestRunBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint = ["), 0o644))
	err := Run(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestImportWishlistMissingFile(t *testing.T) {
	store, err := favorites.Open(favorites.MemoryPath, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	n, err := ImportWishlist(context.Background(), store, filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestImportWishlistKeepsExistingAddedTime(t *testing.T) {
	ctx := context.Background()
	store, err := favorites.Open(favorites.MemoryPath, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	first := time.Date(2022, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, store.Save(ctx, favorites.Favorite{ID: "p1", Title: "Old title", CreatedAt: first}))

	src := filepath.Join(t.TempDir(), "in.xlsx")
	require.NoError(t, export.WriteWishlist(src, []favorites.Favorite{{ID: "p1", Title: "New title"}}))

	n, err := ImportWishlist(ctx, store, src)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New title", items[0].Title)
	assert.True(t, items[0].CreatedAt.Equal(first))
}
