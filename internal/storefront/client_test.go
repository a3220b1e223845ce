package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type staticTokens string

func (s staticTokens) CustomerToken() string { return string(s) }

func TestParseEndpoint_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseEndpoint("shop.example.com/api/2023-07/graphql.json")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/api/2023-07/graphql.json" {
		t.Fatalf("path = %q", u.Path)
	}

	u, err = parseEndpoint("http://localhost:8080/graphql?x=1#frag")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseEndpoint("   "); err == nil {
		t.Fatal("expected error for blank endpoint")
	}
	if _, err := parseEndpoint("https:///graphql.json"); err == nil {
		t.Fatal("expected error for missing host")
	}
}

func TestClient_SendsEnvelopeAndHeaders(t *testing.T) {
	t.Parallel()

	var got struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}
	var header http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"products":{"edges":[{"node":{"id":"gid://shopify/Product/1","title":"Board",
			"images":{"edges":[{"node":{"url":"https://img/1.jpg"}}]},
			"variants":{"edges":[{"node":{"id":"v1","title":"Default","availableForSale":true,"price":{"amount":"10.0","currencyCode":"USD"}}}]}}}]}}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{Endpoint: server.URL, StorefrontToken: " sf-token ", Tokens: staticTokens("cust-token")})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	products, err := c.Products(ctx, 5)
	if err != nil {
		t.Fatalf("Products returned error: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Board" {
		t.Fatalf("products = %#v", products)
	}
	if nodes := products[0].Variants.Nodes(); len(nodes) != 1 || nodes[0].Price.Amount != "10.0" {
		t.Fatalf("variants = %#v", nodes)
	}

	if got.OperationName != "GetProducts" {
		t.Fatalf("operationName = %q", got.OperationName)
	}
	if !strings.Contains(got.Query, "query GetProducts") {
		t.Fatalf("query = %q", got.Query)
	}
	if got.Variables["first"] != float64(5) {
		t.Fatalf("variables = %#v", got.Variables)
	}
	if v := header.Get(HeaderStorefrontToken); v != "sf-token" {
		t.Fatalf("storefront token header = %q", v)
	}
	if v := header.Get(HeaderCustomerToken); v != "cust-token" {
		t.Fatalf("customer token header = %q", v)
	}
	if header.Get(HeaderRequestID) == "" {
		t.Fatal("request id header missing")
	}
	if v := header.Get("User-Agent"); v != defaultUserAgent {
		t.Fatalf("user agent = %q", v)
	}
}

func TestClient_OmitsBlankCustomerToken(t *testing.T) {
	t.Parallel()

	present := make(chan bool, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header[http.CanonicalHeaderKey(HeaderCustomerToken)]
		present <- ok
		_, _ = w.Write([]byte(`{"data":{"cart":null}}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{Endpoint: server.URL, Tokens: staticTokens("   ")})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	cart, err := c.Cart(context.Background(), "gid://shopify/Cart/missing")
	if err != nil {
		t.Fatalf("Cart returned error: %v", err)
	}
	if cart != nil {
		t.Fatalf("cart = %#v, want nil", cart)
	}
	if <-present {
		t.Fatal("customer token header sent for blank token")
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.OperationName {
		case OpGetProducts.Name:
			http.Error(w, "throttled", http.StatusTooManyRequests)
		case OpSearchProducts.Name:
			_, _ = w.Write([]byte(`{"errors":[{"message":"Field 'bogus' doesn't exist"},{"message":"second"}]}`))
		case OpGetCart.Name:
			_, _ = w.Write([]byte(`{"data":`))
		default:
			_, _ = w.Write([]byte(`{"data":{"node":{"__typename":"Collection","id":"c1"}}}`))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.Products(ctx, 1)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("Products err = %v, want StatusError 429", err)
	}
	if statusErr.Body != "throttled" {
		t.Fatalf("status body = %q", statusErr.Body)
	}

	_, err = c.SearchProducts(ctx, "x", 1)
	var gqlErr *GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatalf("SearchProducts err = %v, want GraphQLError", err)
	}
	if want := "SearchProducts: Field 'bogus' doesn't exist; second"; gqlErr.Error() != want {
		t.Fatalf("GraphQLError = %q, want %q", gqlErr.Error(), want)
	}

	_, err = c.Cart(ctx, "id")
	if err == nil || !strings.HasPrefix(err.Error(), "decode response:") {
		t.Fatalf("Cart err = %v, want decode error", err)
	}

	node, err := c.Product(ctx, "c1")
	if err != nil || node != nil {
		t.Fatalf("Product = %#v, %v; want nil, nil for non-product node", node, err)
	}
}

func TestClient_TransportErrorIsNetError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	c, err := NewClient(Options{Endpoint: endpoint, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Products(context.Background(), 1)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var netErr net.Error
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %T %v, want net.Error in chain", err, err)
	}
	if !strings.HasPrefix(err.Error(), "execute request:") {
		t.Fatalf("err = %q", err.Error())
	}
}

func TestClient_CustomerRequiresToken(t *testing.T) {
	c, err := NewClient(Options{Endpoint: "https://shop.example.com/api/2023-07/graphql.json"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Customer(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank customer token")
	}
}

func TestFirstMessage(t *testing.T) {
	errs := []UserError{{Message: "  "}, {Message: "Unidentified customer"}, {Message: "later"}}
	if got := FirstMessage(errs); got != "Unidentified customer" {
		t.Fatalf("FirstMessage = %q", got)
	}
	if got := FirstMessage(nil); got != "" {
		t.Fatalf("FirstMessage(nil) = %q", got)
	}
}
