// Package storefronttest is an in-process fake of the Storefront GraphQL API.
//
// It understands exactly the operations in package storefront, dispatching on
// operationName rather than parsing documents. State lives in memory: a
// catalog, carts, customers and revoked tokens. Tests use NewServer; the
// vitrine-mockstore command serves Backend.Handler on a real port.
package storefronttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/five82/vitrine/internal/storefront"
)

// DefaultAPIVersion is the version segment of GraphQLPath.
const DefaultAPIVersion = "2023-07"

// Options configure a Backend.
type Options struct {
	// StorefrontToken, when set, must be sent in the storefront token header.
	StorefrontToken string
	// Catalog seeds the products; nil uses DefaultCatalog.
	Catalog []Product
	// Secret signs customer access tokens; nil uses a fixed development key.
	Secret     []byte
	TokenTTL   time.Duration
	APIVersion string
	Logger     zerolog.Logger
}

// Backend is the fake storefront state plus its HTTP handler.
type Backend struct {
	opts   Options
	log    zerolog.Logger
	engine *gin.Engine

	mu        sync.Mutex
	products  []Product
	carts     map[string]*cart
	customers map[string]*customer // by lower-cased email
	revoked   map[string]bool
	fault     int
	calls     map[string]int
	tokensIn  map[string]string // op name -> last customer token header
}

type operationHandler func(b *Backend, vars json.RawMessage) (any, error)

var operations = map[string]operationHandler{
	storefront.OpGetProducts.Name:               (*Backend).getProducts,
	storefront.OpSearchProducts.Name:            (*Backend).searchProducts,
	storefront.OpGetProductsByCollection.Name:   (*Backend).getCollection,
	storefront.OpGetProductByID.Name:            (*Backend).getProduct,
	storefront.OpCartCreate.Name:                (*Backend).cartCreate,
	storefront.OpGetCart.Name:                   (*Backend).getCart,
	storefront.OpCartLinesAdd.Name:              (*Backend).cartLinesAdd,
	storefront.OpCartLinesUpdate.Name:           (*Backend).cartLinesUpdate,
	storefront.OpCartLinesRemove.Name:           (*Backend).cartLinesRemove,
	storefront.OpCustomerCreate.Name:            (*Backend).customerCreate,
	storefront.OpCustomerAccessTokenCreate.Name: (*Backend).tokenCreate,
	storefront.OpCustomerAccessTokenDelete.Name: (*Backend).tokenDelete,
	storefront.OpGetCustomer.Name:               (*Backend).getCustomer,
}

// NewBackend builds a Backend seeded from opts.
func NewBackend(opts Options) *Backend {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if len(opts.Secret) == 0 {
		opts.Secret = []byte("vitrine-mockstore-development-secret")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 14 * 24 * time.Hour
	}
	if strings.TrimSpace(opts.APIVersion) == "" {
		opts.APIVersion = DefaultAPIVersion
	}

	b := &Backend{
		opts:      opts,
		log:       opts.Logger.With().Str("component", "mockstore").Logger(),
		products:  append([]Product(nil), opts.Catalog...),
		carts:     make(map[string]*cart),
		customers: make(map[string]*customer),
		revoked:   make(map[string]bool),
		calls:     make(map[string]int),
		tokensIn:  make(map[string]string),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), b.loggingMiddleware())
	engine.POST(b.GraphQLPath(), b.handleGraphQL)
	b.engine = engine
	return b
}

// Handler returns the HTTP handler serving GraphQLPath.
func (b *Backend) Handler() http.Handler {
	return b.engine
}

// GraphQLPath is the URL path of the GraphQL endpoint.
func (b *Backend) GraphQLPath() string {
	return "/api/" + b.opts.APIVersion + "/graphql.json"
}

// SetFault makes every request fail with status until called with 0.
func (b *Backend) SetFault(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fault = status
}

// Calls returns how many times op was executed.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// CustomerTokenHeader returns the customer token header last sent with op.
func (b *Backend) CustomerTokenHeader(op string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tokensIn[op]
}

// DropCart forgets a cart, as the real backend does when a cart expires.
func (b *Backend) DropCart(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.carts, id)
}

// CartCount returns the number of live carts.
func (b *Backend) CartCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.carts)
}

func (b *Backend) handleGraphQL(c *gin.Context) {
	b.mu.Lock()
	fault := b.fault
	b.mu.Unlock()
	if fault != 0 {
		c.AbortWithStatusJSON(fault, gin.H{"errors": []gin.H{{"message": http.StatusText(fault)}}})
		return
	}

	if want := b.opts.StorefrontToken; want != "" && c.GetHeader(storefront.HeaderStorefrontToken) != want {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": []gin.H{{"message": "[API] Invalid API key or access token (unrecognized login or wrong password)"}}})
		return
	}

	var req struct {
		Query         string          `json:"query"`
		OperationName string          `json:"operationName"`
		Variables     json.RawMessage `json:"variables"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": "invalid request body"}}})
		return
	}

	handler, ok := operations[req.OperationName]
	if !ok {
		c.JSON(http.StatusOK, gin.H{"errors": []gin.H{{"message": "unknown operation " + req.OperationName}}})
		return
	}

	b.mu.Lock()
	b.calls[req.OperationName]++
	b.tokensIn[req.OperationName] = c.GetHeader(storefront.HeaderCustomerToken)
	b.mu.Unlock()

	if len(req.Variables) == 0 {
		req.Variables = json.RawMessage("{}")
	}
	data, err := handler(b, req.Variables)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"data": nil, "errors": []gin.H{{"message": err.Error()}}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (b *Backend) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := b.log.Info()
		if status >= 500 {
			event = b.log.Error()
		} else if status >= 400 {
			event = b.log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetHeader(storefront.HeaderRequestID)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}

// Server is a Backend listening on an httptest server.
type Server struct {
	*Backend
	HTTP *httptest.Server
}

// NewServer starts a Backend on a loopback port. Close it when done.
func NewServer(opts Options) *Server {
	b := NewBackend(opts)
	return &Server{Backend: b, HTTP: httptest.NewServer(b.Handler())}
}

// Endpoint is the full GraphQL URL.
func (s *Server) Endpoint() string {
	return s.HTTP.URL + s.GraphQLPath()
}

// Close shuts the listener down; later requests fail at the transport level.
func (s *Server) Close() {
	s.HTTP.Close()
}
