package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/vitrine/internal/state"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{
		bg.Render("vitrine", styles.Logo),
		bg.Render(m.currentView.String(), styles.AccentText.Bold(true)),
	}

	cartCount := 0
	if m.catalogState.Cart != nil {
		cartCount = m.catalogState.Cart.Quantity()
	}
	parts = append(parts,
		bg.Render("Cart:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", cartCount), styles.Text),
		bg.Render("♥", styles.LikedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", len(m.catalogState.Wishlist)), styles.Text),
	)

	if c := m.authState.Customer; c != nil {
		parts = append(parts, bg.Render(truncate(c.DisplayName(), 24), styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("Guest", styles.MutedText))
	}

	if m.catalogState.Loading || m.authState.Status == state.AuthLoading {
		parts = append(parts, bg.Render(m.spinner.View(), styles.WarningText))
	}

	if !compact {
		mode := "light"
		if m.theme.IsDark() {
			mode = "dark"
		}
		parts = append(parts, bg.Render(mode, styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar lists the keys that apply to the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := make([]string, 0, 8)
	for _, b := range m.viewBindings() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) viewBindings() []key.Binding {
	k := m.keys
	switch m.currentView {
	case ViewProducts, ViewCollection:
		return []key.Binding{k.Open, k.Like, k.Refresh, k.ViewCategories, k.ViewSearch, k.ViewCart, k.ViewWishlist, k.ViewAccount, k.Help}
	case ViewSearch:
		if m.searchInput.Focused() {
			return []key.Binding{k.Submit, k.Escape}
		}
		return []key.Binding{k.Open, k.Like, k.ViewSearch, k.Escape, k.Help}
	case ViewCategories:
		return []key.Binding{k.Open, k.Escape, k.Help}
	case ViewDetail:
		return []key.Binding{k.PrevVariant, k.NextVariant, k.AddToCart, k.BuyNow, k.Like, k.Escape}
	case ViewCart:
		return []key.Binding{k.Increase, k.Decrease, k.Remove, k.Refresh, k.Escape}
	case ViewWishlist:
		return []key.Binding{k.Open, k.Like, k.Escape, k.Help}
	case ViewAccount:
		if m.authState.SignedIn() {
			return []key.Binding{k.Logout, k.Escape}
		}
		return []key.Binding{k.Submit, k.NextField, k.SwitchForm, k.Escape}
	}
	return k.ShortHelp()
}

// renderFooter shows the latest error or the refresh time.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.catalogState.Error != "":
		content = bg.Render(m.catalogState.Error, styles.DangerText)
	case m.themeState.Error != "":
		content = bg.Render("Theme: "+m.themeState.Error, styles.WarningText)
	case !m.catalogState.LastUpdated.IsZero():
		content = bg.Render("Updated "+m.catalogState.LastUpdated.Format("15:04:05"), styles.FaintText)
	}
	return styles.Footer.Width(m.width).Render(content)
}
