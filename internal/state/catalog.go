package state

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/vitrine/internal/result"
	"github.com/five82/vitrine/internal/shop"
)

const cartNotFound = "Cart not found"

// CatalogGateway is what the catalog coordinator needs from shop.Gateway.
type CatalogGateway interface {
	Products(ctx context.Context, first int) result.Result[[]shop.Product]
	Product(ctx context.Context, id string) result.Result[shop.ProductDetail]
	Search(ctx context.Context, query string) result.Result[[]shop.Product]
	CollectionProducts(ctx context.Context, handle string, first int) result.Result[[]shop.Product]
	CartOrCreate(ctx context.Context) result.Result[shop.Cart]
	AddLine(ctx context.Context, cartID, variantID string, quantity int) result.Result[shop.Cart]
	UpdateLine(ctx context.Context, cartID, lineID string, quantity int) result.Result[shop.Cart]
	RemoveLine(ctx context.Context, cartID, lineID string) result.Result[shop.Cart]
	BuyNow(ctx context.Context, variantID string) result.Result[string]
	ToggleLike(ctx context.Context, p shop.Product) result.Result[bool]
	Unlike(ctx context.Context, id string) result.Result[struct{}]
	WatchWishlist(ctx context.Context) <-chan []shop.Product
}

// CatalogState is the product and cart view state.
type CatalogState struct {
	Products     []shop.Product
	Searched     []shop.Product
	ByCollection []shop.Product
	Collection   string
	Wishlist     []shop.Product
	Current      *shop.ProductDetail
	Cart         *shop.Cart
	SearchQuery  string
	CheckoutURL  string
	Loading      bool
	Error        string
	LastUpdated  time.Time
}

// IsLiked reports whether id was in the wishlist at the last sync.
func (s CatalogState) IsLiked(id string) bool {
	for _, p := range s.Wishlist {
		if p.ID == id {
			return true
		}
	}
	return false
}

func cloneCatalog(s CatalogState) CatalogState {
	s.Products = cloneSlice(s.Products)
	s.Searched = cloneSlice(s.Searched)
	s.ByCollection = cloneSlice(s.ByCollection)
	s.Wishlist = cloneSlice(s.Wishlist)
	if s.Current != nil {
		d := *s.Current
		d.Images = cloneSlice(d.Images)
		d.Variants = cloneSlice(d.Variants)
		s.Current = &d
	}
	if s.Cart != nil {
		c := *s.Cart
		c.Lines = cloneSlice(c.Lines)
		s.Cart = &c
	}
	return s
}

// Catalog coordinates product listings, the product detail, the cart and the
// liked flags.
type Catalog struct {
	store[CatalogState]

	gw      CatalogGateway
	log     zerolog.Logger
	pending int // guarded by store.mu
}

// NewCatalog builds a Catalog over gw. Call Start to begin wishlist sync.
func NewCatalog(gw CatalogGateway, log zerolog.Logger) *Catalog {
	c := &Catalog{gw: gw, log: log.With().Str("component", "catalog").Logger()}
	c.init(CatalogState{}, cloneCatalog)
	return c
}

// Snapshot returns a copy of the current state.
func (c *Catalog) Snapshot() CatalogState {
	return c.snapshot()
}

// Start keeps the liked flags in sync with the wishlist until ctx is done.
// It returns a channel closed when the sync loop exits.
func (c *Catalog) Start(ctx context.Context) <-chan struct{} {
	feed := c.gw.WatchWishlist(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for list := range feed {
			c.applyWishlist(list)
		}
	}()
	return done
}

func (c *Catalog) applyWishlist(list []shop.Product) {
	liked := shop.LikedSet(list)
	c.update(func(s *CatalogState) {
		s.Wishlist = cloneSlice(list)
		s.Products = shop.ApplyLiked(s.Products, liked)
		s.Searched = shop.ApplyLiked(s.Searched, liked)
		s.ByCollection = shop.ApplyLiked(s.ByCollection, liked)
	})
	c.log.Debug().Int("count", len(list)).Msg("wishlist synced")
}

// launch applies the loading policy around call: clear error and set loading
// now, then on completion publish exactly one of the value or the message.
func launch[T any](c *Catalog, ctx context.Context, name string, call func(context.Context) result.Result[T], apply func(*CatalogState, T)) {
	c.update(func(s *CatalogState) {
		c.pending++
		s.Loading = true
		s.Error = ""
	})
	c.spawn(func() {
		res := call(ctx)
		c.update(func(s *CatalogState) {
			c.pending--
			s.Loading = c.pending > 0
			if res.Ok() {
				apply(s, res.Value())
				s.LastUpdated = time.Now()
				return
			}
			s.Error = res.Message()
		})
		if !res.Ok() {
			c.log.Warn().Str("action", name).Str("error", res.Message()).Msg("catalog action failed")
		}
	})
}

// FetchProducts loads the first page of the catalog.
func (c *Catalog) FetchProducts(ctx context.Context) {
	launch(c, ctx, "fetch products", func(ctx context.Context) result.Result[[]shop.Product] {
		return c.gw.Products(ctx, 0)
	}, func(s *CatalogState, products []shop.Product) {
		s.Products = shop.ApplyLiked(products, shop.LikedSet(s.Wishlist))
	})
}

// FetchProduct loads one product into Current.
func (c *Catalog) FetchProduct(ctx context.Context, id string) {
	c.update(func(s *CatalogState) { s.Current = nil })
	launch(c, ctx, "fetch product", func(ctx context.Context) result.Result[shop.ProductDetail] {
		return c.gw.Product(ctx, id)
	}, func(s *CatalogState, d shop.ProductDetail) {
		s.Current = &d
	})
}

// SetSearchQuery records the query text without searching.
func (c *Catalog) SetSearchQuery(query string) {
	c.update(func(s *CatalogState) { s.SearchQuery = query })
}

// Search records query and loads the matching products.
func (c *Catalog) Search(ctx context.Context, query string) {
	c.SetSearchQuery(query)
	launch(c, ctx, "search", func(ctx context.Context) result.Result[[]shop.Product] {
		return c.gw.Search(ctx, query)
	}, func(s *CatalogState, products []shop.Product) {
		s.Searched = shop.ApplyLiked(products, shop.LikedSet(s.Wishlist))
	})
}

// FetchCollection loads a collection's products into ByCollection.
func (c *Catalog) FetchCollection(ctx context.Context, handle string) {
	launch(c, ctx, "fetch collection", func(ctx context.Context) result.Result[[]shop.Product] {
		return c.gw.CollectionProducts(ctx, handle, 0)
	}, func(s *CatalogState, products []shop.Product) {
		s.Collection = handle
		s.ByCollection = shop.ApplyLiked(products, shop.LikedSet(s.Wishlist))
	})
}

func setCart(s *CatalogState, cart shop.Cart) {
	s.Cart = &cart
}

// InitCart loads the cached cart or creates one.
func (c *Catalog) InitCart(ctx context.Context) {
	launch(c, ctx, "init cart", c.gw.CartOrCreate, setCart)
}

func (c *Catalog) cartID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.Cart == nil {
		return ""
	}
	return c.state.Cart.ID
}

// AddToCart adds quantity of variantID, obtaining a cart first when none is
// held.
func (c *Catalog) AddToCart(ctx context.Context, variantID string, quantity int) {
	launch(c, ctx, "add to cart", func(ctx context.Context) result.Result[shop.Cart] {
		id := c.cartID()
		if id == "" {
			cart := c.gw.CartOrCreate(ctx)
			if !cart.Ok() {
				return cart
			}
			id = cart.Value().ID
		}
		return c.gw.AddLine(ctx, id, variantID, quantity)
	}, setCart)
}

// UpdateLine sets a line's quantity.
func (c *Catalog) UpdateLine(ctx context.Context, lineID string, quantity int) {
	launch(c, ctx, "update line", func(ctx context.Context) result.Result[shop.Cart] {
		id := c.cartID()
		if id == "" {
			return result.Failure[shop.Cart](cartNotFound)
		}
		return c.gw.UpdateLine(ctx, id, lineID, quantity)
	}, setCart)
}

// RemoveLine drops a line from the held cart.
func (c *Catalog) RemoveLine(ctx context.Context, lineID string) {
	launch(c, ctx, "remove line", func(ctx context.Context) result.Result[shop.Cart] {
		id := c.cartID()
		if id == "" {
			return result.Failure[shop.Cart](cartNotFound)
		}
		return c.gw.RemoveLine(ctx, id, lineID)
	}, setCart)
}

// BuyNow creates a single-item checkout and records its URL.
func (c *Catalog) BuyNow(ctx context.Context, variantID string) {
	c.update(func(s *CatalogState) { s.CheckoutURL = "" })
	launch(c, ctx, "buy now", func(ctx context.Context) result.Result[string] {
		return c.gw.BuyNow(ctx, variantID)
	}, func(s *CatalogState, url string) {
		s.CheckoutURL = url
	})
}

// ToggleLike flips p's wishlist membership. The liked flags follow through
// the wishlist sync.
func (c *Catalog) ToggleLike(ctx context.Context, p shop.Product) {
	launch(c, ctx, "toggle like", func(ctx context.Context) result.Result[bool] {
		return c.gw.ToggleLike(ctx, p)
	}, func(*CatalogState, bool) {})
}

// Unlike removes id from the wishlist.
func (c *Catalog) Unlike(ctx context.Context, id string) {
	launch(c, ctx, "unlike", func(ctx context.Context) result.Result[struct{}] {
		return c.gw.Unlike(ctx, id)
	}, func(*CatalogState, struct{}) {})
}
