package shop

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vitrine/internal/storefront"
)

func TestProductFromNodeWithoutImagesOrVariants(t *testing.T) {
	p := productFromNode(storefront.ProductNode{ID: "p1", Title: "Bare"})
	assert.Equal(t, "p1", p.ID)
	assert.Empty(t, p.ImageURL)
	assert.Empty(t, p.Price)
	assert.False(t, p.Liked)
}

func TestDetailFromNodeDefaultsPrice(t *testing.T) {
	d := detailFromNode(&storefront.ProductDetailNode{Typename: "Product", ID: "p1", Title: "Bare"})
	assert.True(t, d.Price.Amount.Equal(decimal.Zero))
	assert.Equal(t, "USD", d.Price.CurrencyCode)
	assert.Equal(t, "0.00 USD", d.Price.String())
	assert.NotNil(t, d.Images)
	_, ok := d.DefaultVariant()
	assert.False(t, ok)
}

func TestDefaultVariantPrefersAvailable(t *testing.T) {
	d := ProductDetail{Variants: []Variant{{ID: "sold-out"}, {ID: "in-stock", Available: true}}}
	v, ok := d.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, "in-stock", v.ID)

	d = ProductDetail{Variants: []Variant{{ID: "sold-out"}}}
	v, ok = d.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, "sold-out", v.ID)
}

func TestCartFromNodeSkipsNonVariantLines(t *testing.T) {
	node := &storefront.CartNode{
		ID:          "c1",
		CheckoutURL: "https://checkout/c1",
		Lines: storefront.Connection[storefront.CartLineNode]{Edges: []storefront.Edge[storefront.CartLineNode]{
			{Node: storefront.CartLineNode{ID: "l1", Quantity: 2, Merchandise: storefront.Merchandise{
				Typename: "ProductVariant",
				Title:    "Ice",
				Price:    storefront.MoneyV2{Amount: "10.0", CurrencyCode: "USD"},
				Image:    &storefront.Image{URL: "https://img/ice.jpg"},
				Product:  &storefront.ProductRef{Title: "Board"},
			}}},
			{Node: storefront.CartLineNode{ID: "l2", Quantity: 1, Merchandise: storefront.Merchandise{Typename: "GiftCard"}}},
			{Node: storefront.CartLineNode{ID: "l3", Quantity: 1, Merchandise: storefront.Merchandise{Typename: "ProductVariant", Title: "Loose"}}},
		}},
	}

	cart := cartFromNode(node)
	assert.Equal(t, "0.00", cart.TotalPrice)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, CartLine{ID: "l1", Title: "Board", ImageURL: "https://img/ice.jpg", Price: "10.0", Quantity: 2}, cart.Lines[0])
	assert.Equal(t, "Loose", cart.Lines[1].Title)
	assert.Equal(t, "0.00", cart.Lines[1].Price)
	assert.Equal(t, 3, cart.Quantity())

	line, ok := cart.Line("l3")
	assert.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	_, ok = cart.Line("l2")
	assert.False(t, ok)
}

func TestApplyLiked(t *testing.T) {
	products := []Product{{ID: "a", Liked: true}, {ID: "b"}}
	out := ApplyLiked(products, LikedSet([]Product{{ID: "b"}}))
	assert.False(t, out[0].Liked)
	assert.True(t, out[1].Liked)
	assert.True(t, products[0].Liked, "input is not mutated")
	assert.Nil(t, ApplyLiked(nil, nil))
}

func TestCollectionHandle(t *testing.T) {
	cases := map[string]string{
		"Snowboards":    "snowboards",
		"Home & Garden": "home-and-garden",
		"  Gift Cards ": "gift-cards",
		"":              "",
	}
	for label, want := range cases {
		assert.Equal(t, want, CollectionHandle(label), label)
	}

	cats := DefaultCategories()
	require.Len(t, cats, 4)
	assert.Equal(t, "homeandgarden", cats[1].Handle)
	assert.Equal(t, "jewelry", cats[0].Handle)
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := invalid("Email is invalid")
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Email is invalid", err.Error())
}
