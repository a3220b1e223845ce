package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vitrine/internal/shop"
)

// listItems returns the products shown by a list view.
func (m Model) listItems(v View) []shop.Product {
	switch v {
	case ViewProducts:
		return m.catalogState.Products
	case ViewCollection:
		return m.catalogState.ByCollection
	case ViewSearch:
		return m.catalogState.Searched
	case ViewWishlist:
		return m.catalogState.Wishlist
	default:
		return nil
	}
}

// selectedProduct returns the product under the cursor of view v.
func (m Model) selectedProduct(v View) (shop.Product, bool) {
	items := m.listItems(v)
	i := m.cursor[v]
	if i < 0 || i >= len(items) {
		return shop.Product{}, false
	}
	return items[i], true
}

// handleListKey processes keyboard input for the product list views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.currentView
	items := m.listItems(v)
	if m.navigate(msg, v, len(items)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshList(v)

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.selectedProduct(v); ok {
			return m.openDetail(p)
		}

	case key.Matches(msg, m.keys.Like):
		p, ok := m.selectedProduct(v)
		if !ok {
			return m, nil
		}
		if v == ViewWishlist {
			return m, m.do(func() { m.catalog.Unlike(m.ctx, p.ID) })
		}
		return m, m.do(func() { m.catalog.ToggleLike(m.ctx, p) })
	}
	return m, nil
}

func (m Model) refreshList(v View) tea.Cmd {
	switch v {
	case ViewProducts:
		return m.do(func() { m.catalog.FetchProducts(m.ctx) })
	case ViewCollection:
		handle := m.catalogState.Collection
		if handle == "" {
			return nil
		}
		return m.do(func() { m.catalog.FetchCollection(m.ctx, handle) })
	case ViewSearch:
		query := m.catalogState.SearchQuery
		return m.do(func() { m.catalog.Search(m.ctx, query) })
	}
	return nil
}

// openDetail shows the product page for p and starts loading it.
func (m Model) openDetail(p shop.Product) (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.show(ViewDetail)
	m.detailID = p.ID
	m.variantIdx = -1
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	id := p.ID
	return m, m.do(func() { m.catalog.FetchProduct(m.ctx, id) })
}

// handleCategoriesKey processes keyboard input for the category list.
func (m Model) handleCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.navigate(msg, ViewCategories, len(m.categories)) {
		return m, nil
	}
	if !key.Matches(msg, m.keys.Open) || len(m.categories) == 0 {
		return m, nil
	}
	category := m.categories[m.cursor[ViewCategories]]
	m.collectionLabel = category.Label
	m.cursor[ViewCollection] = 0
	m.show(ViewCollection)
	return m, m.do(func() { m.catalog.FetchCollection(m.ctx, category.Handle) })
}

// handleSearchInputKey processes keys while the search box has focus.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchInput.Blur()
		if m.catalogState.Searched == nil {
			m.show(ViewProducts)
		}
		return m, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.cursor[ViewSearch] = 0
		return m, m.do(func() { m.catalog.Search(m.ctx, query) })
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		cmd = tea.Batch(cmd, m.do(func() { m.catalog.SetSearchQuery(after) }))
	}
	return m, cmd
}

// renderProductList renders one of the product list views.
func (m Model) renderProductList(v View) string {
	width, height := m.boxSize()
	styles, bg := m.panelStyles()
	items := m.listItems(v)

	var title string
	switch v {
	case ViewProducts:
		title = fmt.Sprintf("Products (%d)", len(items))
	case ViewCollection:
		label := m.collectionLabel
		if label == "" {
			label = m.catalogState.Collection
		}
		title = fmt.Sprintf("%s (%d)", label, len(items))
	case ViewSearch:
		title = "Search"
		if q := m.catalogState.SearchQuery; q != "" {
			title = fmt.Sprintf("Search %q (%d)", q, len(items))
		}
	case ViewWishlist:
		title = fmt.Sprintf("Wishlist (%d)", len(items))
	}

	var lines []string
	rows := height - boxBorders
	if v == ViewSearch {
		lines = append(lines, m.searchInput.View(), "")
		rows -= 2
	}

	if len(items) == 0 {
		lines = append(lines, bg.Render(m.emptyListText(v), styles.MutedText))
		return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
	}

	start := 0
	if c := m.cursor[v]; c >= rows && rows > 0 {
		start = c - rows + 1
	}
	inner := width - boxBorders
	for i := start; i < len(items) && i < start+rows; i++ {
		lines = append(lines, m.renderProductRow(items[i], i == m.cursor[v], inner, styles, bg))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

func (m Model) emptyListText(v View) string {
	if m.catalogState.Loading {
		return m.spinner.View() + " Loading..."
	}
	switch v {
	case ViewSearch:
		if m.catalogState.Searched == nil {
			return "Type a query and press enter"
		}
		return "No matching products"
	case ViewWishlist:
		return "Nothing liked yet. Press l on a product to add it."
	case ViewCollection:
		return "This collection is empty"
	default:
		return "No products"
	}
}

// renderProductRow renders one list entry: liked marker, title and price.
func (m Model) renderProductRow(p shop.Product, selected bool, width int, styles Styles, bg BgStyle) string {
	heart := "  "
	if p.Liked {
		heart = "♥ "
	}
	price := ""
	if width >= LayoutPriceWidth {
		price = p.Price
	}
	titleWidth := width - 2 - lipgloss.Width(price) - 2
	title := padRight(truncate(p.Title, titleWidth), titleWidth)
	row := heart + title + "  " + price

	if selected {
		return styles.Selected.Width(width).Render(row)
	}
	return bg.Render(heart, styles.LikedText) + bg.Render(title, styles.Text) + bg.Spaces(2) + bg.Render(price, styles.AccentText)
}

// renderCategories renders the category list.
func (m Model) renderCategories() string {
	width, height := m.boxSize()
	styles, bg := m.panelStyles()
	inner := width - boxBorders

	lines := make([]string, 0, len(m.categories))
	for i, c := range m.categories {
		label := padRight(truncate(c.Label, inner), inner)
		if i == m.cursor[ViewCategories] {
			lines = append(lines, styles.Selected.Width(inner).Render(label))
			continue
		}
		lines = append(lines, bg.Render(label, styles.Text))
	}
	return m.renderTitledBox("Categories", strings.Join(lines, "\n"), width, height, true)
}
