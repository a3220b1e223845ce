package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	ToggleDark key.Binding
	Escape     key.Binding

	// View switching
	ViewProducts   key.Binding
	ViewCategories key.Binding
	ViewSearch     key.Binding
	ViewCart       key.Binding
	ViewWishlist   key.Binding
	ViewAccount    key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Catalog actions
	Like    key.Binding
	Refresh key.Binding

	// Detail actions
	PrevVariant key.Binding
	NextVariant key.Binding
	AddToCart   key.Binding
	BuyNow      key.Binding

	// Cart actions
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding

	// Account form
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	SwitchForm key.Binding
	Logout     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle dark mode"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		// View switching
		ViewProducts: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Products"),
		),
		ViewCategories: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Browse categories"),
		),
		ViewSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ViewCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cart"),
		),
		ViewWishlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Wishlist"),
		),
		ViewAccount: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Account"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		// Catalog actions
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Like/unlike"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		// Detail actions
		PrevVariant: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous variant"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next variant"),
		),
		AddToCart: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "Add to cart"),
		),
		BuyNow: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Buy now"),
		),

		// Cart actions
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Increase quantity"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Decrease quantity"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove"),
		),

		// Account form
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		SwitchForm: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Login/sign up"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log out"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewProducts, k.ViewCategories, k.ViewSearch, k.ViewCart, k.ViewWishlist, k.ViewAccount, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open},
		{k.Like, k.Refresh},
		{k.PrevVariant, k.NextVariant, k.AddToCart, k.BuyNow},
		{k.Increase, k.Decrease, k.Remove},
		{k.NextField, k.Submit, k.SwitchForm, k.Logout},
		{k.ToggleDark, k.Help, k.Quit},
	}
}
