package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vitrine/internal/favorites"
	"github.com/five82/vitrine/internal/prefs"
	"github.com/five82/vitrine/internal/shop"
	"github.com/five82/vitrine/internal/state"
	"github.com/five82/vitrine/internal/storefront"
	"github.com/five82/vitrine/internal/storefront/storefronttest"
)

type harness struct {
	m       Model
	prefs   *prefs.Store
	gateway *shop.Gateway
	catalog *state.Catalog
	auth    *state.Auth
	theme   *state.Theme
}

func newHarness(t *testing.T) *harness {
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

	ctx, cancel := context.WithCancel(context.Background())
	catalog := state.NewCatalog(gw, zerolog.Nop())
	done := catalog.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-done
	})

	h := &harness{
		prefs:   p,
		gateway: gw,
		catalog: catalog,
		auth:    state.NewAuth(gw, zerolog.Nop()),
		theme:   state.NewTheme(p, zerolog.Nop()),
	}
	h.m = New(Options{
		Context: ctx,
		Catalog: h.catalog,
		Auth:    h.auth,
		Theme:   h.theme,
		Logger:  zerolog.Nop(),
	})
	t.Cleanup(h.m.close)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 30})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	model, cmd := h.m.Update(msg)
	h.m = model.(Model)
	return cmd
}

func (h *harness) press(keys string) tea.Cmd {
	return h.send(keyMsg(keys))
}

// settle waits for in-flight actions and delivers the change signals.
func (h *harness) settle() {
	h.catalog.Wait()
	h.auth.Wait()
	h.theme.Wait()
	for _, src := range []source{sourceCatalog, sourceAuth, sourceTheme} {
		h.send(changeMsg{source: src})
	}
}

// run executes an action command and settles.
func (h *harness) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	h.settle()
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewBeforeWindowSize(t *testing.T) {
	h := newHarness(t)
	fresh := New(Options{Catalog: h.catalog, Auth: h.auth, Theme: h.theme})
	defer fresh.close()
	assert.Equal(t, "Loading...", fresh.View())
}

func TestInitLoadsProductsCartAndTheme(t *testing.T) {
	h := newHarness(t)
	require.NotNil(t, h.m.Init())

	// The last batched command starts the initial loads.
	h.run(t, h.m.do(func() {
		h.catalog.FetchProducts(h.m.ctx)
		h.catalog.InitCart(h.m.ctx)
		h.theme.Load()
	}))

	out := h.view()
	assert.Contains(t, out, "Products (5)")
	assert.Contains(t, out, "The Complete Snowboard")
	assert.Contains(t, out, "699.95 USD")
	assert.Contains(t, out, "Cart: 0")
	assert.Contains(t, out, "Guest")
	assert.NotEmpty(t, h.prefs.CartID())
}

func TestOpenDetailAndAddToCart(t *testing.T) {
	h := newHarness(t)
	h.run(t, h.m.do(func() { h.catalog.FetchProducts(h.m.ctx) }))

	assert.Nil(t, h.press("j"))
	h.run(t, h.press("enter"))
	assert.Equal(t, ViewDetail, h.m.currentView)
	assert.Equal(t, "gid://shopify/Product/1002", h.m.detailID)
	out := h.view()
	assert.Contains(t, out, "The Hidden Snowboard")
	assert.Contains(t, out, "749.95 USD")

	h.run(t, h.press("+"))
	assert.Contains(t, h.view(), "Cart: 1")

	h.press("esc")
	assert.Equal(t, ViewProducts, h.m.currentView)
}

func TestDetailVariantSelectionSkipsToAvailable(t *testing.T) {
	h := newHarness(t)
	model, cmd := h.m.openDetail(shop.Product{ID: "gid://shopify/Product/1005", Title: "Mountain Hoodie"})
	h.m = model.(Model)
	h.run(t, cmd)

	d, ok := h.m.currentDetail()
	require.True(t, ok)
	v, idx, ok := h.m.selectedVariant(d)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.True(t, v.Available)

	h.press("right")
	v, idx, _ = h.m.selectedVariant(d)
	assert.Equal(t, 1, idx)
	assert.False(t, v.Available)
	assert.Contains(t, h.view(), "sold out")

	h.press("right")
	_, idx, _ = h.m.selectedVariant(d)
	assert.Equal(t, 1, idx, "stays on the last variant")
}

func TestCartQuantityKeys(t *testing.T) {
	h := newHarness(t)
	h.catalog.AddToCart(context.Background(), "gid://shopify/ProductVariant/2004", 1)
	h.settle()

	h.press("c")
	assert.Equal(t, ViewCart, h.m.currentView)
	assert.Contains(t, h.view(), "Selling Plans Ski Wax")

	h.run(t, h.press("+"))
	require.NotNil(t, h.m.catalogState.Cart)
	assert.Equal(t, 2, h.m.catalogState.Cart.Quantity())
	assert.Contains(t, h.view(), "Total 49.90")

	h.run(t, h.press("-"))
	assert.Equal(t, 1, h.m.catalogState.Cart.Quantity())

	h.run(t, h.press("-"))
	assert.Empty(t, h.m.catalogState.Cart.Lines)
	assert.Contains(t, h.view(), "Your cart is empty")
}

func TestSearchInputCapturesKeys(t *testing.T) {
	h := newHarness(t)
	h.press("/")
	require.True(t, h.m.searchInput.Focused())

	// Letters that are shortcuts elsewhere go to the input.
	h.press("wax")
	h.press("q")
	assert.Equal(t, ViewSearch, h.m.currentView)
	assert.Equal(t, "waxq", h.m.searchInput.Value())

	h.m.searchInput.SetValue("wax")
	h.run(t, h.press("enter"))
	assert.False(t, h.m.searchInput.Focused())
	out := h.view()
	assert.Contains(t, out, `Search "wax" (1)`)
	assert.Contains(t, out, "Selling Plans Ski Wax")
}

func TestCategoriesOpenCollection(t *testing.T) {
	h := newHarness(t)
	h.press("b")
	assert.Contains(t, h.view(), "Home & Garden")

	h.press("G")
	h.run(t, h.press("enter"))
	assert.Equal(t, ViewCollection, h.m.currentView)
	out := h.view()
	assert.Contains(t, out, "Snowboards (2)")
	assert.Contains(t, out, "The Hidden Snowboard")

	h.press("esc")
	assert.Equal(t, ViewCategories, h.m.currentView)
}

func TestLikeShowsInWishlist(t *testing.T) {
	h := newHarness(t)
	h.run(t, h.m.do(func() { h.catalog.FetchProducts(h.m.ctx) }))

	h.run(t, h.press("l"))
	require.Eventually(t, func() bool {
		h.send(changeMsg{source: sourceCatalog})
		return len(h.m.catalogState.Wishlist) == 1
	}, time.Second, 5*time.Millisecond)

	h.press("w")
	assert.Contains(t, h.view(), "Wishlist (1)")
	assert.Contains(t, h.view(), "♥ The Complete Snowboard")

	h.run(t, h.press("l"))
	require.Eventually(t, func() bool {
		h.send(changeMsg{source: sourceCatalog})
		return len(h.m.catalogState.Wishlist) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestAccountLoginFlow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.True(t, h.gateway.SignUp(ctx, shop.SignUpInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "analytical"}).Ok())

	h.press("a")
	assert.Equal(t, ViewAccount, h.m.currentView)
	assert.Contains(t, h.view(), "Log in")

	h.press("ada@example.com")
	h.press("tab")
	h.press("analytical")
	h.run(t, h.press("enter"))

	out := h.view()
	assert.Contains(t, out, "Signed in as Ada Lovelace")
	assert.Contains(t, out, state.MessageLoggedIn)
	assert.NotEmpty(t, h.prefs.CustomerToken())

	h.run(t, h.press("L"))
	assert.False(t, h.m.authState.SignedIn())
	assert.Empty(t, h.prefs.CustomerToken())
}

func TestAccountSignUpSwitchesToLogin(t *testing.T) {
	h := newHarness(t)
	h.press("a")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, modeSignUp, h.m.account.mode)

	for _, v := range []string{"Grace", "Hopper", "grace@example.com", "cobol1959"} {
		h.press(v)
		h.press("tab")
	}
	h.run(t, h.press("enter"))

	assert.Equal(t, modeLogin, h.m.account.mode)
	assert.Equal(t, "grace@example.com", h.m.account.value(fieldEmail))
	assert.Empty(t, h.m.account.value(fieldPassword))
	assert.Contains(t, h.view(), state.MessageAccountCreated)
}

func TestToggleDarkMode(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.m.theme.IsDark())

	h.run(t, h.press("d"))
	assert.True(t, h.m.theme.IsDark())
	assert.True(t, h.prefs.DarkMode())
	assert.Contains(t, h.view(), "dark")
}

func TestHelpOverlayAndQuit(t *testing.T) {
	h := newHarness(t)
	h.press("?")
	assert.Contains(t, h.view(), "Keyboard Shortcuts")

	assert.Nil(t, h.press("x"), "any key closes help")
	assert.NotContains(t, h.view(), "Keyboard Shortcuts")

	cmd := h.press("q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestErrorShownInFooter(t *testing.T) {
	h := newHarness(t)
	h.catalog.UpdateLine(context.Background(), "missing", 1)
	h.settle()
	assert.Contains(t, h.view(), "Cart not found")
}
