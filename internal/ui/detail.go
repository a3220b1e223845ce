package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vitrine/internal/shop"
)

// currentDetail returns the loaded product when it is the one being viewed.
func (m Model) currentDetail() (*shop.ProductDetail, bool) {
	d := m.catalogState.Current
	if d == nil || d.ID != m.detailID {
		return nil, false
	}
	return d, true
}

// selectedVariant resolves variantIdx, falling back to the default variant.
func (m Model) selectedVariant(d *shop.ProductDetail) (shop.Variant, int, bool) {
	if m.variantIdx >= 0 && m.variantIdx < len(d.Variants) {
		return d.Variants[m.variantIdx], m.variantIdx, true
	}
	def, ok := d.DefaultVariant()
	if !ok {
		return shop.Variant{}, -1, false
	}
	for i, v := range d.Variants {
		if v.ID == def.ID {
			return v, i, true
		}
	}
	return def, 0, true
}

// handleDetailKey processes keyboard input for the product page.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	d, ok := m.currentDetail()
	if !ok {
		return m, nil
	}
	variant, idx, hasVariant := m.selectedVariant(d)

	switch {
	case key.Matches(msg, m.keys.PrevVariant):
		if hasVariant && idx > 0 {
			m.variantIdx = idx - 1
			m.updateDetailViewport()
		}

	case key.Matches(msg, m.keys.NextVariant):
		if hasVariant && idx < len(d.Variants)-1 {
			m.variantIdx = idx + 1
			m.updateDetailViewport()
		}

	case key.Matches(msg, m.keys.AddToCart):
		if hasVariant {
			id := variant.ID
			return m, m.do(func() { m.catalog.AddToCart(m.ctx, id, 1) })
		}

	case key.Matches(msg, m.keys.BuyNow):
		if hasVariant {
			id := variant.ID
			return m, m.do(func() { m.catalog.BuyNow(m.ctx, id) })
		}

	case key.Matches(msg, m.keys.Like):
		p := d.Summary()
		p.Liked = m.catalogState.IsLiked(p.ID)
		return m, m.do(func() { m.catalog.ToggleLike(m.ctx, p) })

	case key.Matches(msg, m.keys.Refresh):
		id := d.ID
		return m, m.do(func() { m.catalog.FetchProduct(m.ctx, id) })
	}
	return m, nil
}

// updateDetailViewport re-renders the product page into the viewport.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	styles, bg := m.panelStyles()
	width := m.detailViewport.Width
	if width <= 0 {
		width = minBoxWidth
	}

	d, ok := m.currentDetail()
	if !ok {
		if m.catalogState.Loading {
			return bg.Render(m.spinner.View()+" Loading product...", styles.MutedText)
		}
		return bg.Render("Product unavailable", styles.MutedText)
	}

	var lines []string
	heading := d.Title
	if m.catalogState.IsLiked(d.ID) {
		heading = "♥ " + heading
	}
	lines = append(lines, bg.Render(heading, styles.Text.Bold(true)))

	variant, idx, hasVariant := m.selectedVariant(d)
	price := d.Price.String()
	if hasVariant {
		price = variant.Price.String()
	}
	lines = append(lines, bg.Render(price, styles.AccentText), "")

	if len(d.Variants) > 0 {
		lines = append(lines, bg.Render("Variants", styles.MutedText))
		for i, v := range d.Variants {
			marker := "  "
			if i == idx {
				marker = "› "
			}
			label := fmt.Sprintf("%s%s  %s", marker, v.Title, v.Price)
			style := styles.Text
			if !v.Available {
				label += "  sold out"
				style = styles.FaintText
			}
			if i == idx {
				style = style.Bold(true)
			}
			lines = append(lines, bg.Render(label, style))
		}
		if hasVariant && !variant.Available {
			lines = append(lines, bg.Render("This variant is currently unavailable", styles.WarningText))
		}
		lines = append(lines, "")
	}

	if desc := strings.TrimSpace(d.Description); desc != "" {
		wrapped := lipgloss.NewStyle().Width(width).Render(desc)
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, bg.Render(line, styles.Text))
		}
		lines = append(lines, "")
	}

	if len(d.Images) > 0 {
		lines = append(lines, bg.Render("Images", styles.MutedText))
		for _, img := range d.Images {
			lines = append(lines, bg.Render(truncate(img, width), styles.FaintText))
		}
		lines = append(lines, "")
	}

	if url := m.catalogState.CheckoutURL; url != "" {
		lines = append(lines, bg.Render("Checkout", styles.SuccessText))
		lines = append(lines, bg.Render(url, styles.InfoText))
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders the product page.
func (m Model) renderDetail() string {
	width, height := m.boxSize()
	title := "Product"
	if d, ok := m.currentDetail(); ok {
		title = d.Title
	}
	return m.renderTitledBox(title, m.detailViewport.View(), width, height, true)
}
