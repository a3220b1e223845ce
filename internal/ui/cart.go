package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vitrine/internal/shop"
)

func (m Model) cartLines() []shop.CartLine {
	if m.catalogState.Cart == nil {
		return nil
	}
	return m.catalogState.Cart.Lines
}

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.cartLines()
	if m.navigate(msg, ViewCart, len(lines)) {
		return m, nil
	}
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.do(func() { m.catalog.InitCart(m.ctx) })
	}

	i := m.cursor[ViewCart]
	if i < 0 || i >= len(lines) {
		return m, nil
	}
	line := lines[i]

	switch {
	case key.Matches(msg, m.keys.Increase):
		return m, m.do(func() { m.catalog.UpdateLine(m.ctx, line.ID, line.Quantity+1) })
	case key.Matches(msg, m.keys.Decrease):
		if line.Quantity <= 1 {
			return m, m.do(func() { m.catalog.RemoveLine(m.ctx, line.ID) })
		}
		return m, m.do(func() { m.catalog.UpdateLine(m.ctx, line.ID, line.Quantity-1) })
	case key.Matches(msg, m.keys.Remove):
		return m, m.do(func() { m.catalog.RemoveLine(m.ctx, line.ID) })
	}
	return m, nil
}

// renderCart renders the cart lines, total and checkout link.
func (m Model) renderCart() string {
	width, height := m.boxSize()
	styles, bg := m.panelStyles()
	inner := width - boxBorders

	cart := m.catalogState.Cart
	if cart == nil {
		text := "No cart yet. Press + on a product to start one."
		if m.catalogState.Loading {
			text = m.spinner.View() + " Loading cart..."
		}
		return m.renderTitledBox("Cart", bg.Render(text, styles.MutedText), width, height, true)
	}

	title := fmt.Sprintf("Cart (%d)", cart.Quantity())
	var out []string
	if len(cart.Lines) == 0 {
		out = append(out, bg.Render("Your cart is empty", styles.MutedText))
	}

	// Room for the summary below the lines
	rows := height - boxBorders - 4
	start := 0
	if c := m.cursor[ViewCart]; rows > 0 && c >= rows {
		start = c - rows + 1
	}
	for i := start; i < len(cart.Lines) && i < start+rows; i++ {
		out = append(out, m.renderCartLine(cart.Lines[i], i == m.cursor[ViewCart], inner, styles, bg))
	}

	out = append(out, "")
	out = append(out, bg.Render("Total", styles.MutedText)+bg.Space()+bg.Render(cart.TotalPrice, styles.AccentText.Bold(true)))
	if cart.CheckoutURL != "" && len(cart.Lines) > 0 {
		out = append(out, bg.Render("Checkout", styles.MutedText)+bg.Space()+bg.Render(truncate(cart.CheckoutURL, inner-9), styles.InfoText))
	}
	return m.renderTitledBox(title, strings.Join(out, "\n"), width, height, true)
}

func (m Model) renderCartLine(line shop.CartLine, selected bool, width int, styles Styles, bg BgStyle) string {
	qty := fmt.Sprintf("%3d ×", line.Quantity)
	price := line.Price
	titleWidth := width - lipgloss.Width(qty) - lipgloss.Width(price) - 4
	title := padRight(truncate(line.Title, titleWidth), titleWidth)
	row := qty + " " + title + "  " + price

	if selected {
		return styles.Selected.Width(width).Render(row)
	}
	return bg.Render(qty, styles.WarningText) + bg.Space() + bg.Render(title, styles.Text) + bg.Spaces(2) + bg.Render(price, styles.AccentText)
}
