package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/five82/vitrine/internal/favorites"
	"github.com/five82/vitrine/internal/prefs"
	"github.com/five82/vitrine/internal/shop"
	"github.com/five82/vitrine/internal/storefront"
	"github.com/five82/vitrine/internal/storefront/storefronttest"
)

const (
	iceVariant = "gid://shopify/ProductVariant/2001"
	waxVariant = "gid://shopify/ProductVariant/2004"
)

type env struct {
	server  *storefronttest.Server
	prefs   *prefs.Store
	gateway *shop.Gateway
}

func newEnv(t *testing.T) *env {
	t.Helper()
	server := storefronttest.NewServer(storefronttest.Options{})
	t.Cleanup(server.Close)

	p := prefs.Open(filepath.Join(t.TempDir(), "prefs.toml"))
	fav, err := favorites.Open(favorites.MemoryPath, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = fav.Close() })

	client, err := storefront.NewClient(storefront.Options{Endpoint: server.Endpoint(), Tokens: p})
	require.NoError(t, err)
	gw, err := shop.NewGateway(shop.Options{API: client, Prefs: p, Wishlist: fav, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return &env{server: server, prefs: p, gateway: gw}
}

// eventually polls cond until it holds or a second passes.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond, msg)
}
