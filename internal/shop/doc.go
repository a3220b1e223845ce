// Package shop is the data gateway between the view-state coordinators and
// everything they read or write: the storefront API, the preference store
// (cached cart id, customer token) and the local wishlist.
//
// Every Gateway operation returns a result.Result, so callers never handle a
// raw error or a panic. Domain types here are flat, display-ready mappings of
// the storefront response shapes.
package shop
