package storefront

// Connection mirrors a Relay connection with edges only.
type Connection[T any] struct {
	Edges []Edge[T] `json:"edges"`
}

// Edge wraps one node of a Connection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Nodes flattens the connection.
func (c Connection[T]) Nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

// MoneyV2 is an amount (decimal string) plus ISO currency code.
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image is a product or variant image.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

// ProductRef names the parent product of a variant.
type ProductRef struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
}

// ProductVariant is a purchasable variant.
type ProductVariant struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	AvailableForSale bool        `json:"availableForSale"`
	Price            MoneyV2     `json:"price"`
	Image            *Image      `json:"image,omitempty"`
	Product          *ProductRef `json:"product,omitempty"`
}

// ProductNode is the listing shape of a product.
type ProductNode struct {
	ID       string                     `json:"id"`
	Title    string                     `json:"title"`
	Handle   string                     `json:"handle,omitempty"`
	Images   Connection[Image]          `json:"images"`
	Variants Connection[ProductVariant] `json:"variants"`
}

// ProductDetailNode is the node(id:) shape; Typename is "Product" for hits.
type ProductDetailNode struct {
	Typename    string                     `json:"__typename"`
	ID          string                     `json:"id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Images      Connection[Image]          `json:"images"`
	Variants    Connection[ProductVariant] `json:"variants"`
}

// CollectionNode is a collection with its first products.
type CollectionNode struct {
	ID       string                  `json:"id"`
	Handle   string                  `json:"handle"`
	Title    string                  `json:"title"`
	Products Connection[ProductNode] `json:"products"`
}

// CartCost holds the cart totals.
type CartCost struct {
	SubtotalAmount MoneyV2 `json:"subtotalAmount"`
	TotalAmount    MoneyV2 `json:"totalAmount"`
}

// Merchandise is the union behind a cart line. Only ProductVariant is used.
type Merchandise struct {
	Typename string      `json:"__typename"`
	ID       string      `json:"id,omitempty"`
	Title    string      `json:"title,omitempty"`
	Price    MoneyV2     `json:"price"`
	Image    *Image      `json:"image,omitempty"`
	Product  *ProductRef `json:"product,omitempty"`
}

// IsProductVariant reports whether the merchandise resolved to a variant.
func (m Merchandise) IsProductVariant() bool {
	return m.Typename == "ProductVariant"
}

// CartLineNode is one line of a cart.
type CartLineNode struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
}

// CartNode is the cart shape returned by every cart query and mutation.
type CartNode struct {
	ID          string                   `json:"id"`
	CheckoutURL string                   `json:"checkoutUrl"`
	Cost        CartCost                 `json:"cost"`
	Lines       Connection[CartLineNode] `json:"lines"`
}

// CartLineInput adds merchandise to a cart.
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// CartLineUpdateInput changes a line's quantity.
type CartLineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CartInput creates a cart.
type CartInput struct {
	Lines []CartLineInput `json:"lines,omitempty"`
}

// CustomerCreateInput registers a customer.
type CustomerCreateInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// CustomerNode is the signed-in customer.
type CustomerNode struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CustomerAccessToken is the login result.
type CustomerAccessToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}
