package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/vitrine/internal/shop"
	"github.com/five82/vitrine/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewProducts View = iota
	ViewCategories
	ViewCollection
	ViewSearch
	ViewDetail
	ViewCart
	ViewWishlist
	ViewAccount
)

func (v View) String() string {
	switch v {
	case ViewProducts:
		return "Products"
	case ViewCategories:
		return "Categories"
	case ViewCollection:
		return "Collection"
	case ViewSearch:
		return "Search"
	case ViewDetail:
		return "Product"
	case ViewCart:
		return "Cart"
	case ViewWishlist:
		return "Wishlist"
	case ViewAccount:
		return "Account"
	default:
		return "Unknown"
	}
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Catalog    *state.Catalog
	Auth       *state.Auth
	Theme      *state.Theme
	Categories []shop.Category
	Logger     zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	catalog    *state.Catalog
	auth       *state.Auth
	themes     *state.Theme
	categories []shop.Category
	log        zerolog.Logger
	keys       keyMap

	// Change signals from the coordinators
	catalogSub <-chan struct{}
	authSub    <-chan struct{}
	themeSub   <-chan struct{}

	// UI state
	theme        Theme
	currentView  View
	previousView View
	width        int
	height       int
	ready        bool
	showHelp     bool

	// Data state
	catalogState state.CatalogState
	authState    state.AuthState
	themeState   state.ThemeState

	// Selection per list view
	cursor map[View]int

	// Detail state
	detailID       string
	variantIdx     int // -1 selects the default variant
	detailViewport viewport.Model

	// Collection state
	collectionLabel string

	// Inputs
	searchInput textinput.Model
	account     accountForm
	spinner     spinner.Model
}

// New creates a new Bubble Tea model and subscribes it to the coordinators.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	categories := opts.Categories
	if len(categories) == 0 {
		categories = shop.DefaultCategories()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search products"
	search.CharLimit = 120

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:          ctx,
		catalog:      opts.Catalog,
		auth:         opts.Auth,
		themes:       opts.Theme,
		categories:   categories,
		log:          opts.Logger,
		keys:         DefaultKeyMap(),
		catalogSub:   opts.Catalog.Subscribe(),
		authSub:      opts.Auth.Subscribe(),
		themeSub:     opts.Theme.Subscribe(),
		currentView:  ViewProducts,
		previousView: ViewProducts,
		cursor:       make(map[View]int),
		variantIdx:   -1,
		searchInput:  search,
		account:      newAccountForm(),
		spinner:      spin,
	}
	m.catalogState = m.catalog.Snapshot()
	m.authState = m.auth.Snapshot()
	m.themeState = m.themes.Snapshot()
	m.theme = ThemeFor(m.themeState.DarkMode)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.catalogSub, sourceCatalog),
		waitForChange(m.authSub, sourceAuth),
		waitForChange(m.themeSub, sourceTheme),
		m.spinner.Tick,
		m.do(func() {
			m.catalog.FetchProducts(m.ctx)
			m.catalog.InitCart(m.ctx)
			m.auth.LoadCustomer(m.ctx)
			m.themes.Load()
		}),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resize()
		m.updateDetailViewport()
		return m, nil

	case changeMsg:
		m.refresh(msg.source)
		return m, waitForChange(m.subscription(msg.source), msg.source)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other input messages
	return m.updateInputs(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// typing reports whether printable keys belong to a text input.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewSearch:
		return m.searchInput.Focused()
	case ViewAccount:
		return !m.authState.SignedIn()
	}
	return false
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.typing() {
		if m.currentView == ViewSearch {
			return m.handleSearchInputKey(msg)
		}
		return m.handleAccountKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleDark):
		return m, m.do(m.themes.Toggle)

	case key.Matches(msg, m.keys.Escape):
		return m.back()

	case key.Matches(msg, m.keys.ViewProducts):
		m.show(ViewProducts)
		if m.catalogState.Products == nil {
			return m, m.do(func() { m.catalog.FetchProducts(m.ctx) })
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewCategories):
		m.show(ViewCategories)
		return m, nil

	case key.Matches(msg, m.keys.ViewSearch):
		m.show(ViewSearch)
		m.searchInput.SetValue(m.catalogState.SearchQuery)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.ViewCart):
		m.show(ViewCart)
		return m, nil

	case key.Matches(msg, m.keys.ViewWishlist):
		m.show(ViewWishlist)
		return m, nil

	case key.Matches(msg, m.keys.ViewAccount):
		m.show(ViewAccount)
		if !m.authState.SignedIn() {
			return m, m.account.focusCmd()
		}
		return m, nil
	}

	switch m.currentView {
	case ViewProducts, ViewCollection, ViewSearch, ViewWishlist:
		return m.handleListKey(msg)
	case ViewCategories:
		return m.handleCategoriesKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewAccount:
		return m.handleAccountKey(msg)
	}
	return m, nil
}

// show switches to v.
func (m *Model) show(v View) {
	if m.currentView == v {
		return
	}
	m.log.Debug().Str("from", m.currentView.String()).Str("to", v.String()).Msg("view changed")
	m.currentView = v
}

// back handles esc outside of text inputs.
func (m Model) back() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDetail:
		m.show(m.previousView)
	case ViewCollection:
		m.show(ViewCategories)
	case ViewAccount:
		m.show(ViewProducts)
		return m, m.do(m.auth.Reset)
	default:
		m.show(ViewProducts)
	}
	return m, nil
}

// refresh pulls a fresh snapshot from the coordinator that changed.
func (m *Model) refresh(src source) {
	switch src {
	case sourceCatalog:
		m.catalogState = m.catalog.Snapshot()
		for _, v := range []View{ViewProducts, ViewCollection, ViewSearch, ViewWishlist} {
			m.clampCursor(v, len(m.listItems(v)))
		}
		if m.catalogState.Cart != nil {
			m.clampCursor(ViewCart, len(m.catalogState.Cart.Lines))
		}
		m.updateDetailViewport()
	case sourceAuth:
		m.authState = m.auth.Snapshot()
		m.account.observe(m.authState)
	case sourceTheme:
		m.themeState = m.themes.Snapshot()
		m.theme = ThemeFor(m.themeState.DarkMode)
		m.updateDetailViewport()
	}
}

func (m *Model) moveCursor(v View, delta, n int) {
	m.cursor[v] += delta
	m.clampCursor(v, n)
}

func (m *Model) clampCursor(v View, n int) {
	c := m.cursor[v]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursor[v] = c
}

// navigate applies the shared list movement keys. It reports whether the
// key was consumed.
func (m *Model) navigate(msg tea.KeyMsg, v View, n int) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(v, -1, n)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(v, 1, n)
	case key.Matches(msg, m.keys.Top):
		m.cursor[v] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor[v] = n - 1
		m.clampCursor(v, n)
	default:
		return false
	}
	return true
}

// resize lays out the size-dependent components.
func (m *Model) resize() {
	w, h := m.boxSize()
	m.detailViewport.Width = w - boxBorders
	m.detailViewport.Height = h - boxBorders
	m.searchInput.Width = w - boxBorders - len(m.searchInput.Prompt) - 1
	m.account.setWidth(w - boxBorders - formLabelWidth - 1)
}

// boxSize returns the outer size of the main content box.
func (m Model) boxSize() (int, int) {
	w := m.width
	if w < minBoxWidth {
		w = minBoxWidth
	}
	h := m.height - headerLines - footerLines
	if h < boxBorders+1 {
		h = boxBorders + 1
	}
	return w, h
}

// updateInputs forwards non-key messages to the focused input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.currentView == ViewSearch && m.searchInput.Focused():
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.currentView == ViewAccount:
		cmd = m.account.update(msg)
	}
	return m, cmd
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProducts, ViewCollection, ViewSearch, ViewWishlist:
		return m.renderProductList(m.currentView)
	case ViewCategories:
		return m.renderCategories()
	case ViewDetail:
		return m.renderDetail()
	case ViewCart:
		return m.renderCart()
	case ViewAccount:
		return m.renderAccount()
	default:
		return ""
	}
}

// Messages

type source int

const (
	sourceCatalog source = iota
	sourceAuth
	sourceTheme
)

// changeMsg signals that a coordinator published a new state.
type changeMsg struct {
	source source
}

func (m Model) subscription(src source) <-chan struct{} {
	switch src {
	case sourceAuth:
		return m.authSub
	case sourceTheme:
		return m.themeSub
	default:
		return m.catalogSub
	}
}

// Commands

// waitForChange blocks until the next signal on ch. A closed channel ends
// the loop.
func waitForChange(ch <-chan struct{}, src source) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changeMsg{source: src}
	}
}

// do runs a coordinator action off the update loop. Results arrive as
// changeMsg through the subscriptions.
func (m Model) do(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// close releases the coordinator subscriptions.
func (m Model) close() {
	m.catalog.Unsubscribe(m.catalogSub)
	m.auth.Unsubscribe(m.authSub)
	m.themes.Unsubscribe(m.themeSub)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
