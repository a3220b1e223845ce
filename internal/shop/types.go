package shop

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog summary as shown in lists.
type Product struct {
	ID       string
	Title    string
	ImageURL string
	// Price is the display string "amount currency".
	Price string
	// Liked mirrors favorites membership at the last sync. Never authoritative.
	Liked bool
}

// Money is an exact amount in a currency.
type Money struct {
	Amount       decimal.Decimal
	CurrencyCode string
}

func (m Money) String() string {
	return strings.TrimSpace(m.Amount.StringFixed(2) + " " + m.CurrencyCode)
}

// Variant is one purchasable option of a product.
type Variant struct {
	ID        string
	Title     string
	Available bool
	Price     Money
}

// ProductDetail is the full view of one product.
type ProductDetail struct {
	ID          string
	Title       string
	Description string
	Images      []string
	Variants    []Variant
	// Price is the first variant's price, or 0 USD without variants.
	Price Money
}

// DefaultVariant picks the first available variant, falling back to the
// first variant of any kind.
func (d ProductDetail) DefaultVariant() (Variant, bool) {
	for _, v := range d.Variants {
		if v.Available {
			return v, true
		}
	}
	if len(d.Variants) > 0 {
		return d.Variants[0], true
	}
	return Variant{}, false
}

// Summary converts the detail into a list entry.
func (d ProductDetail) Summary() Product {
	p := Product{ID: d.ID, Title: d.Title, Price: d.Price.String()}
	if len(d.Images) > 0 {
		p.ImageURL = d.Images[0]
	}
	return p
}

// Cart is a remote cart. Lines are replaced wholesale on every mutation.
type Cart struct {
	ID          string
	CheckoutURL string
	Lines       []CartLine
	TotalPrice  string
}

// Quantity sums the line quantities.
func (c Cart) Quantity() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Line finds a line by id.
func (c Cart) Line(id string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}

// CartLine is one line of a cart.
type CartLine struct {
	ID       string
	Title    string
	ImageURL string
	Price    string
	Quantity int
}

// LineInput adds a variant to a cart.
type LineInput struct {
	VariantID string
	Quantity  int
}

// Customer is the signed-in account.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// DisplayName joins first and last name, falling back to the email.
func (c Customer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// SignUpInput registers a new customer.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}
