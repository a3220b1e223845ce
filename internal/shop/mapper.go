package shop

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/vitrine/internal/favorites"
	"github.com/five82/vitrine/internal/storefront"
)

const (
	defaultCurrency = "USD"
	zeroTotal       = "0.00"
)

func productFromNode(n storefront.ProductNode) Product {
	p := Product{ID: n.ID, Title: n.Title}
	if images := n.Images.Nodes(); len(images) > 0 {
		p.ImageURL = images[0].URL
	}
	var amount, currency string
	if variants := n.Variants.Nodes(); len(variants) > 0 {
		amount = variants[0].Price.Amount
		currency = variants[0].Price.CurrencyCode
	}
	p.Price = strings.TrimSpace(amount + " " + currency)
	return p
}

func productsFromNodes(nodes []storefront.ProductNode) []Product {
	out := make([]Product, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, productFromNode(n))
	}
	return out
}

func moneyFrom(m storefront.MoneyV2) Money {
	amount, err := decimal.NewFromString(strings.TrimSpace(m.Amount))
	if err != nil {
		amount = decimal.Zero
	}
	currency := strings.TrimSpace(m.CurrencyCode)
	if currency == "" {
		currency = defaultCurrency
	}
	return Money{Amount: amount, CurrencyCode: currency}
}

func detailFromNode(n *storefront.ProductDetailNode) ProductDetail {
	d := ProductDetail{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Images:      []string{},
		Variants:    []Variant{},
		Price:       Money{Amount: decimal.Zero, CurrencyCode: defaultCurrency},
	}
	for _, img := range n.Images.Nodes() {
		d.Images = append(d.Images, img.URL)
	}
	for _, v := range n.Variants.Nodes() {
		d.Variants = append(d.Variants, Variant{
			ID:        v.ID,
			Title:     v.Title,
			Available: v.AvailableForSale,
			Price:     moneyFrom(v.Price),
		})
	}
	if len(d.Variants) > 0 {
		d.Price = d.Variants[0].Price
	}
	return d
}

func cartFromNode(n *storefront.CartNode) Cart {
	c := Cart{
		ID:          n.ID,
		CheckoutURL: n.CheckoutURL,
		Lines:       []CartLine{},
		TotalPrice:  strings.TrimSpace(n.Cost.SubtotalAmount.Amount),
	}
	if c.TotalPrice == "" {
		c.TotalPrice = zeroTotal
	}
	for _, line := range n.Lines.Nodes() {
		if mapped, ok := lineFromNode(line); ok {
			c.Lines = append(c.Lines, mapped)
		}
	}
	return c
}

// lineFromNode skips merchandise that is not a product variant.
func lineFromNode(n storefront.CartLineNode) (CartLine, bool) {
	m := n.Merchandise
	if !m.IsProductVariant() {
		return CartLine{}, false
	}
	line := CartLine{ID: n.ID, Title: m.Title, Quantity: n.Quantity, Price: strings.TrimSpace(m.Price.Amount)}
	if m.Product != nil && m.Product.Title != "" {
		line.Title = m.Product.Title
	}
	if m.Image != nil {
		line.ImageURL = m.Image.URL
	}
	if line.Price == "" {
		line.Price = zeroTotal
	}
	return line, true
}

func customerFromNode(n *storefront.CustomerNode) Customer {
	return Customer{ID: n.ID, FirstName: n.FirstName, LastName: n.LastName, Email: n.Email}
}

func productFromFavorite(f favorites.Favorite) Product {
	return Product{ID: f.ID, Title: f.Title, ImageURL: f.ImageURL, Price: f.Price, Liked: true}
}

func favoriteFromProduct(p Product) favorites.Favorite {
	return favorites.Favorite{ID: p.ID, Title: p.Title, ImageURL: p.ImageURL, Price: p.Price}
}

// ApplyLiked rewrites the Liked flag of every product from the wishlist ids.
func ApplyLiked(products []Product, liked map[string]bool) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, len(products))
	for i, p := range products {
		p.Liked = liked[p.ID]
		out[i] = p
	}
	return out
}

// LikedSet indexes a wishlist by product id.
func LikedSet(wishlist []Product) map[string]bool {
	set := make(map[string]bool, len(wishlist))
	for _, p := range wishlist {
		set[p.ID] = true
	}
	return set
}
