package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/vitrine/internal/favorites"
	"github.com/five82/vitrine/internal/result"
	"github.com/five82/vitrine/internal/storefront"
)

const defaultPageSize = 20

// PrefStore is the slice of the preference store the gateway writes through.
type PrefStore interface {
	CartID() string
	SaveCartID(id string) error
	ClearCartID() error
	CustomerToken() string
	SaveCustomerToken(token string) error
	ClearCustomerToken() error
}

// WishlistStore is the local favorites table.
type WishlistStore interface {
	Save(ctx context.Context, f favorites.Favorite) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]favorites.Favorite, error)
	Contains(ctx context.Context, id string) (bool, error)
	Subscribe(ctx context.Context) <-chan []favorites.Favorite
}

// Options wire a Gateway.
type Options struct {
	API      storefront.API
	Prefs    PrefStore
	Wishlist WishlistStore
	PageSize int
	Logger   zerolog.Logger
}

// Gateway is the single access point for remote and local shop data. Every
// operation returns a result.Result; none of them panics or returns a raw
// error.
type Gateway struct {
	api      storefront.API
	prefs    PrefStore
	wishlist WishlistStore
	pageSize int
	log      zerolog.Logger
}

// NewGateway validates opts and builds a Gateway.
func NewGateway(opts Options) (*Gateway, error) {
	if opts.API == nil {
		return nil, errors.New("storefront api is required")
	}
	if opts.Prefs == nil {
		return nil, errors.New("preference store is required")
	}
	if opts.Wishlist == nil {
		return nil, errors.New("wishlist store is required")
	}
	size := opts.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	return &Gateway{
		api:      opts.API,
		prefs:    opts.Prefs,
		wishlist: opts.Wishlist,
		pageSize: size,
		log:      opts.Logger.With().Str("component", "gateway").Logger(),
	}, nil
}

// PageSize is the default number of products per request.
func (g *Gateway) PageSize() int {
	return g.pageSize
}

func (g *Gateway) first(n int) int {
	if n <= 0 {
		return g.pageSize
	}
	return n
}

// Products lists the first products of the catalog.
func (g *Gateway) Products(ctx context.Context, first int) result.Result[[]Product] {
	return result.Call(ctx, func(ctx context.Context) ([]Product, error) {
		nodes, err := g.api.Products(ctx, g.first(first))
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}
		return productsFromNodes(nodes), nil
	})
}

// Product fetches one product's detail.
func (g *Gateway) Product(ctx context.Context, id string) result.Result[ProductDetail] {
	return result.Call(ctx, func(ctx context.Context) (ProductDetail, error) {
		node, err := g.api.Product(ctx, id)
		if err != nil {
			return ProductDetail{}, fmt.Errorf("fetch product: %w", err)
		}
		if node == nil {
			return ProductDetail{}, fmt.Errorf("product %w", ErrNotFound)
		}
		return detailFromNode(node), nil
	})
}

// Search runs a product query. A blank query returns an empty list without
// calling the backend.
func (g *Gateway) Search(ctx context.Context, query string) result.Result[[]Product] {
	query = strings.TrimSpace(query)
	if query == "" {
		return result.Success([]Product{})
	}
	return result.Call(ctx, func(ctx context.Context) ([]Product, error) {
		nodes, err := g.api.SearchProducts(ctx, query, g.pageSize)
		if err != nil {
			return nil, fmt.Errorf("search products: %w", err)
		}
		return productsFromNodes(nodes), nil
	})
}

// CollectionProducts lists a collection's products. An unknown handle yields
// an empty list.
func (g *Gateway) CollectionProducts(ctx context.Context, handle string, first int) result.Result[[]Product] {
	return result.Call(ctx, func(ctx context.Context) ([]Product, error) {
		coll, err := g.api.Collection(ctx, handle, g.first(first))
		if err != nil {
			return nil, fmt.Errorf("fetch collection %s: %w", handle, err)
		}
		if coll == nil {
			return []Product{}, nil
		}
		return productsFromNodes(coll.Products.Nodes()), nil
	})
}

// CreateCart creates a cart with optional lines and caches its id.
func (g *Gateway) CreateCart(ctx context.Context, lines ...LineInput) result.Result[Cart] {
	return result.Call(ctx, func(ctx context.Context) (Cart, error) {
		return g.createCart(ctx, lines)
	})
}

func (g *Gateway) createCart(ctx context.Context, lines []LineInput) (Cart, error) {
	input := storefront.CartInput{}
	for _, l := range lines {
		if l.Quantity < 1 {
			return Cart{}, invalid("quantity must be at least 1")
		}
		input.Lines = append(input.Lines, storefront.CartLineInput{MerchandiseID: l.VariantID, Quantity: l.Quantity})
	}
	node, userErrs, err := g.api.CartCreate(ctx, input)
	if err != nil {
		return Cart{}, fmt.Errorf("create cart: %w", err)
	}
	if msg := storefront.FirstMessage(userErrs); msg != "" {
		return Cart{}, invalid(msg)
	}
	if node == nil {
		return Cart{}, errors.New("create cart: no cart returned")
	}
	if err := g.prefs.SaveCartID(node.ID); err != nil {
		return Cart{}, fmt.Errorf("cache cart id: %w", err)
	}
	g.log.Info().Str("cart_id", node.ID).Msg("cart created")
	return cartFromNode(node), nil
}

// Cart fetches a cart by id.
func (g *Gateway) Cart(ctx context.Context, id string) result.Result[Cart] {
	return result.Call(ctx, func(ctx context.Context) (Cart, error) {
		node, err := g.api.Cart(ctx, id)
		if err != nil {
			return Cart{}, fmt.Errorf("fetch cart: %w", err)
		}
		if node == nil {
			return Cart{}, fmt.Errorf("cart %w", ErrNotFound)
		}
		return cartFromNode(node), nil
	})
}

// CartOrCreate returns the cached cart, creating a new one when no id is
// cached or the backend no longer knows it. Transport failures are returned
// as errors and never lead to a new cart.
func (g *Gateway) CartOrCreate(ctx context.Context) result.Result[Cart] {
	return result.Call(ctx, func(ctx context.Context) (Cart, error) {
		if id := g.prefs.CartID(); id != "" {
			node, err := g.api.Cart(ctx, id)
			if err != nil {
				return Cart{}, fmt.Errorf("fetch cart: %w", err)
			}
			if node != nil {
				return cartFromNode(node), nil
			}
			g.log.Info().Str("cart_id", id).Msg("cached cart expired, creating a new one")
			if err := g.prefs.ClearCartID(); err != nil {
				return Cart{}, fmt.Errorf("clear cart id: %w", err)
			}
		}
		return g.createCart(ctx, nil)
	})
}

func cartMutation(op string, node *storefront.CartNode, userErrs []storefront.UserError, err error) (Cart, error) {
	if err != nil {
		return Cart{}, fmt.Errorf("%s: %w", op, err)
	}
	if msg := storefront.FirstMessage(userErrs); msg != "" {
		return Cart{}, invalid(msg)
	}
	if node == nil {
		return Cart{}, fmt.Errorf("cart %w", ErrNotFound)
	}
	return cartFromNode(node), nil
}

// AddLine attaches quantity of a variant to a cart.
func (g *Gateway) AddLine(ctx context.Context, cartID, variantID string, quantity int) result.Result[Cart] {
	return result.Call(ctx, func(ctx context.Context) (Cart, error) {
		if quantity < 1 {
			return Cart{}, invalid("quantity must be at least 1")
		}
		lines := []storefront.CartLineInput{{MerchandiseID: variantID, Quantity: quantity}}
		node, userErrs, err := g.api.CartLinesAdd(ctx, cartID, lines)
		return cartMutation("add cart line", node, userErrs, err)
	})
}

// UpdateLine sets a line's quantity. Zero removes the line.
func (g *Gateway) UpdateLine(ctx context.Context, cartID, lineID string, quantity int) result.Result[Cart] {
	return result.Call(ctx, func(ctx context.Context) (Cart, error) {
		if quantity < 0 {
			return Cart{}, invalid("quantity must not be negative")
		}
		lines := []storefront.CartLineUpdateInput{{ID: lineID, Quantity: quantity}}
		node, userErrs, err := g.api.CartLinesUpdate(ctx, cartID, lines)
		return cartMutation("update cart line", node, userErrs, err)
	})
}

// RemoveLine drops a line. Removing the last line leaves an empty cart.
func (g *Gateway) RemoveLine(ctx context.Context, cartID, lineID string) result.Result[Cart] {
	return result.Call(ctx, func(ctx context.Context) (Cart, error) {
		node, userErrs, err := g.api.CartLinesRemove(ctx, cartID, []string{lineID})
		return cartMutation("remove cart line", node, userErrs, err)
	})
}

// BuyNow creates a one-line cart for variantID and returns its checkout URL.
// The cached cart id is left alone.
func (g *Gateway) BuyNow(ctx context.Context, variantID string) result.Result[string] {
	return result.Call(ctx, func(ctx context.Context) (string, error) {
		input := storefront.CartInput{Lines: []storefront.CartLineInput{{MerchandiseID: variantID, Quantity: 1}}}
		node, userErrs, err := g.api.CartCreate(ctx, input)
		if err != nil {
			return "", fmt.Errorf("create checkout: %w", err)
		}
		if msg := storefront.FirstMessage(userErrs); msg != "" {
			return "", invalid(msg)
		}
		if node == nil || node.CheckoutURL == "" {
			return "", errors.New("create checkout: no checkout url returned")
		}
		return node.CheckoutURL, nil
	})
}

// SignUp registers a customer. The first backend validation message becomes
// the error.
func (g *Gateway) SignUp(ctx context.Context, in SignUpInput) result.Result[Customer] {
	return result.Call(ctx, func(ctx context.Context) (Customer, error) {
		input := storefront.CustomerCreateInput{
			Email:     strings.TrimSpace(in.Email),
			Password:  in.Password,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
		}
		node, userErrs, err := g.api.CustomerCreate(ctx, input)
		if err != nil {
			return Customer{}, fmt.Errorf("sign up: %w", err)
		}
		if msg := storefront.FirstMessage(userErrs); msg != "" {
			return Customer{}, invalid(msg)
		}
		if node == nil {
			return Customer{}, errors.New("sign up: no customer returned")
		}
		g.log.Info().Str("customer_id", node.ID).Msg("customer created")
		return customerFromNode(node), nil
	})
}

// Login exchanges credentials for a customer token and persists it.
func (g *Gateway) Login(ctx context.Context, email, password string) result.Result[struct{}] {
	return result.Call(ctx, func(ctx context.Context) (struct{}, error) {
		token, userErrs, err := g.api.CustomerAccessTokenCreate(ctx, email, password)
		if err != nil {
			return struct{}{}, fmt.Errorf("login: %w", err)
		}
		if msg := storefront.FirstMessage(userErrs); msg != "" {
			return struct{}{}, invalid("login failed: " + msg)
		}
		if token == nil || strings.TrimSpace(token.AccessToken) == "" {
			return struct{}{}, invalid("login failed: no access token returned")
		}
		if err := g.prefs.SaveCustomerToken(token.AccessToken); err != nil {
			return struct{}{}, fmt.Errorf("save customer token: %w", err)
		}
		g.log.Info().Msg("customer logged in")
		return struct{}{}, nil
	})
}

// Logout revokes the stored token and clears it. Without a token it succeeds
// without calling the backend. A token the backend no longer knows is still
// cleared locally.
func (g *Gateway) Logout(ctx context.Context) result.Result[struct{}] {
	return result.Call(ctx, func(ctx context.Context) (struct{}, error) {
		token := g.prefs.CustomerToken()
		if token == "" {
			return struct{}{}, nil
		}
		_, userErrs, err := g.api.CustomerAccessTokenDelete(ctx, token)
		if err != nil {
			return struct{}{}, fmt.Errorf("logout: %w", err)
		}
		if msg := storefront.FirstMessage(userErrs); msg != "" {
			g.log.Warn().Str("reason", msg).Msg("token revocation rejected, clearing locally")
		}
		if err := g.prefs.ClearCustomerToken(); err != nil {
			return struct{}{}, fmt.Errorf("clear customer token: %w", err)
		}
		g.log.Info().Msg("customer logged out")
		return struct{}{}, nil
	})
}

// Customer fetches the signed-in customer. Without a token, or with one the
// backend rejects, the value is nil.
func (g *Gateway) Customer(ctx context.Context) result.Result[*Customer] {
	token := g.prefs.CustomerToken()
	if token == "" {
		return result.Success[*Customer](nil)
	}
	return result.Call(ctx, func(ctx context.Context) (*Customer, error) {
		node, err := g.api.Customer(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("fetch customer: %w", err)
		}
		if node == nil {
			return nil, nil
		}
		c := customerFromNode(node)
		return &c, nil
	})
}

// Wishlist lists the local favorites, oldest first.
func (g *Gateway) Wishlist(ctx context.Context) result.Result[[]Product] {
	return result.Call(ctx, func(ctx context.Context) ([]Product, error) {
		items, err := g.wishlist.All(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Product, 0, len(items))
		for _, f := range items {
			out = append(out, productFromFavorite(f))
		}
		return out, nil
	})
}

// Like stores p in the wishlist.
func (g *Gateway) Like(ctx context.Context, p Product) result.Result[struct{}] {
	return result.Call(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.wishlist.Save(ctx, favoriteFromProduct(p))
	})
}

// Unlike removes id from the wishlist.
func (g *Gateway) Unlike(ctx context.Context, id string) result.Result[struct{}] {
	return result.Call(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.wishlist.Delete(ctx, id)
	})
}

// ToggleLike flips p's wishlist membership and returns the new state.
func (g *Gateway) ToggleLike(ctx context.Context, p Product) result.Result[bool] {
	return result.Call(ctx, func(ctx context.Context) (bool, error) {
		liked, err := g.wishlist.Contains(ctx, p.ID)
		if err != nil {
			return false, err
		}
		if liked {
			return false, g.wishlist.Delete(ctx, p.ID)
		}
		return true, g.wishlist.Save(ctx, favoriteFromProduct(p))
	})
}

// WatchWishlist streams the wishlist now and after every change until ctx is
// done. The channel is closed afterwards.
func (g *Gateway) WatchWishlist(ctx context.Context) <-chan []Product {
	src := g.wishlist.Subscribe(ctx)
	out := make(chan []Product, 1)
	go func() {
		defer close(out)
		for items := range src {
			products := make([]Product, 0, len(items))
			for _, f := range items {
				products = append(products, productFromFavorite(f))
			}
			select {
			case out <- products:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
