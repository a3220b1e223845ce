// Package ui provides the terminal storefront for Vitrine.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model never talks to the storefront
// directly: every key that changes data calls an action on one of the
// coordinators in package state (Catalog, Auth, Theme), and the model
// re-renders from their snapshots when they signal a change.
//
//	key press ──▶ Update ──▶ tea.Cmd ──▶ coordinator action (goroutine)
//	                                              │
//	View ◀── snapshot ◀── changeMsg ◀── Subscribe channel
//
// # Package Structure
//
//   - app.go: Model, Options, Update loop, view switching and Run
//   - keys.go: key bindings
//   - help.go: help overlay
//   - header.go: status bar, command bar and footer
//   - products.go: product lists, categories and search
//   - detail.go: product page with variant selection
//   - cart.go: cart lines, quantities and checkout link
//   - account.go: login, sign-up and profile
//   - theme.go, style_helpers.go, box.go: colors and drawing helpers
//
// # Views
//
//   - Products: the first page of the catalog
//   - Categories and Collection: browse a collection by category
//   - Search: free text product search
//   - Product: detail page, add to cart, buy now
//   - Cart: the persisted cart
//   - Wishlist: liked products, kept locally
//   - Account: customer login, sign-up and logout
//
// Press ? inside the program for the full key list.
package ui
