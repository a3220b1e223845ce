package storefronttest

import (
	"strings"

	"github.com/five82/vitrine/internal/storefront"
)

// Product is a seeded catalog entry.
type Product struct {
	ID          string
	Title       string
	Handle      string
	Description string
	Images      []string
	Variants    []Variant
	// Collections lists the collection handles the product belongs to.
	Collections []string
}

// Variant is a purchasable option of a Product.
type Variant struct {
	ID        string
	Title     string
	Amount    string
	Currency  string
	Available bool
}

// collectionTitles names the collections the default catalog uses.
var collectionTitles = map[string]string{
	"snowboards":    "Snowboards",
	"accessories":   "Accessories",
	"homeandgarden": "Home & Garden",
	"clothing":      "Clothing",
}

// DefaultCatalog returns a small deterministic catalog.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "gid://shopify/Product/1001",
			Title:       "The Complete Snowboard",
			Handle:      "the-complete-snowboard",
			Description: "This PREMIUM snowboard is so SUPERDUPER awesome!",
			Images:      []string{"https://cdn.example.com/snowboard-complete.jpg"},
			Variants: []Variant{
				{ID: "gid://shopify/ProductVariant/2001", Title: "Ice", Amount: "699.95", Currency: "USD", Available: true},
				{ID: "gid://shopify/ProductVariant/2002", Title: "Dawn", Amount: "699.95", Currency: "USD", Available: true},
			},
			Collections: []string{"snowboards"},
		},
		{
			ID:          "gid://shopify/Product/1002",
			Title:       "The Hidden Snowboard",
			Handle:      "the-hidden-snowboard",
			Description: "Snowboard with a hidden variant.",
			Images:      []string{"https://cdn.example.com/snowboard-hidden.jpg"},
			Variants: []Variant{
				{ID: "gid://shopify/ProductVariant/2003", Title: "Default Title", Amount: "749.95", Currency: "USD", Available: true},
			},
			Collections: []string{"snowboards"},
		},
		{
			ID:          "gid://shopify/Product/1003",
			Title:       "Selling Plans Ski Wax",
			Handle:      "selling-plans-ski-wax",
			Description: "Wax for skis and boards.",
			Images:      []string{"https://cdn.example.com/ski-wax.jpg"},
			Variants: []Variant{
				{ID: "gid://shopify/ProductVariant/2004", Title: "Selling Plans Ski Wax", Amount: "24.95", Currency: "USD", Available: true},
				{ID: "gid://shopify/ProductVariant/2005", Title: "Special Selling Plans Ski Wax", Amount: "49.95", Currency: "USD", Available: true},
			},
			Collections: []string{"accessories"},
		},
		{
			ID:          "gid://shopify/Product/1004",
			Title:       "Garden Gnome",
			Handle:      "garden-gnome",
			Description: "A cheerful gnome for any garden.",
			Images:      []string{"https://cdn.example.com/gnome.jpg"},
			Variants: []Variant{
				{ID: "gid://shopify/ProductVariant/2006", Title: "Default Title", Amount: "15.00", Currency: "USD", Available: true},
			},
			Collections: []string{"homeandgarden"},
		},
		{
			ID:          "gid://shopify/Product/1005",
			Title:       "Mountain Hoodie",
			Handle:      "mountain-hoodie",
			Description: "Warm hoodie with a mountain print.",
			Variants: []Variant{
				{ID: "gid://shopify/ProductVariant/2007", Title: "S", Amount: "59.00", Currency: "USD", Available: true},
				{ID: "gid://shopify/ProductVariant/2008", Title: "M", Amount: "59.00", Currency: "USD", Available: false},
			},
			Collections: []string{"clothing"},
		},
	}
}

func (p Product) listNode() storefront.ProductNode {
	node := storefront.ProductNode{ID: p.ID, Title: p.Title, Handle: p.Handle}
	if len(p.Images) > 0 {
		node.Images = imageConnection(p.Images[:1])
	}
	if len(p.Variants) > 0 {
		node.Variants = variantConnection(p.Variants[:1])
	}
	return node
}

func (p Product) detailNode() storefront.ProductDetailNode {
	return storefront.ProductDetailNode{
		Typename:    "Product",
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Images:      imageConnection(p.Images),
		Variants:    variantConnection(p.Variants),
	}
}

func (p Product) inCollection(handle string) bool {
	for _, h := range p.Collections {
		if h == handle {
			return true
		}
	}
	return false
}

func (p Product) matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Handle), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func (v Variant) node() storefront.ProductVariant {
	return storefront.ProductVariant{
		ID:               v.ID,
		Title:            v.Title,
		AvailableForSale: v.Available,
		Price:            storefront.MoneyV2{Amount: v.Amount, CurrencyCode: v.Currency},
	}
}

func imageConnection(urls []string) storefront.Connection[storefront.Image] {
	conn := storefront.Connection[storefront.Image]{Edges: []storefront.Edge[storefront.Image]{}}
	for _, u := range urls {
		conn.Edges = append(conn.Edges, storefront.Edge[storefront.Image]{Node: storefront.Image{URL: u}})
	}
	return conn
}

func variantConnection(variants []Variant) storefront.Connection[storefront.ProductVariant] {
	conn := storefront.Connection[storefront.ProductVariant]{Edges: []storefront.Edge[storefront.ProductVariant]{}}
	for _, v := range variants {
		conn.Edges = append(conn.Edges, storefront.Edge[storefront.ProductVariant]{Node: v.node()})
	}
	return conn
}

// findVariant locates a variant and its product. Callers hold b.mu.
func (b *Backend) findVariant(id string) (Product, Variant, bool) {
	for _, p := range b.products {
		for _, v := range p.Variants {
			if v.ID == id {
				return p, v, true
			}
		}
	}
	return Product{}, Variant{}, false
}
