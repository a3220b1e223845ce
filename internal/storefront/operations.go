package storefront

import (
	"context"
	"fmt"
	"strings"
)

// API is the set of storefront calls the shop gateway depends on.
// *Client implements it; tests may substitute their own.
type API interface {
	Products(ctx context.Context, first int) ([]ProductNode, error)
	SearchProducts(ctx context.Context, query string, first int) ([]ProductNode, error)
	Collection(ctx context.Context, handle string, first int) (*CollectionNode, error)
	Product(ctx context.Context, id string) (*ProductDetailNode, error)
	CartCreate(ctx context.Context, input CartInput) (*CartNode, []UserError, error)
	Cart(ctx context.Context, id string) (*CartNode, error)
	CartLinesAdd(ctx context.Context, cartID string, lines []CartLineInput) (*CartNode, []UserError, error)
	CartLinesUpdate(ctx context.Context, cartID string, lines []CartLineUpdateInput) (*CartNode, []UserError, error)
	CartLinesRemove(ctx context.Context, cartID string, lineIDs []string) (*CartNode, []UserError, error)
	CustomerCreate(ctx context.Context, input CustomerCreateInput) (*CustomerNode, []UserError, error)
	CustomerAccessTokenCreate(ctx context.Context, email, password string) (*CustomerAccessToken, []UserError, error)
	CustomerAccessTokenDelete(ctx context.Context, token string) (string, []UserError, error)
	Customer(ctx context.Context, token string) (*CustomerNode, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Products lists the first products of the catalog.
func (c *Client) Products(ctx context.Context, first int) ([]ProductNode, error) {
	var data struct {
		Products Connection[ProductNode] `json:"products"`
	}
	if err := c.Do(ctx, OpGetProducts, map[string]any{"first": first}, &data); err != nil {
		return nil, err
	}
	return data.Products.Nodes(), nil
}

// SearchProducts runs a full-text product query.
func (c *Client) SearchProducts(ctx context.Context, query string, first int) ([]ProductNode, error) {
	var data struct {
		Products Connection[ProductNode] `json:"products"`
	}
	vars := map[string]any{"query": query, "first": first}
	if err := c.Do(ctx, OpSearchProducts, vars, &data); err != nil {
		return nil, err
	}
	return data.Products.Nodes(), nil
}

// Collection fetches a collection by handle. A nil collection means the
// handle is unknown.
func (c *Client) Collection(ctx context.Context, handle string, first int) (*CollectionNode, error) {
	var data struct {
		Collection *CollectionNode `json:"collection"`
	}
	vars := map[string]any{"handle": handle, "first": first}
	if err := c.Do(ctx, OpGetProductsByCollection, vars, &data); err != nil {
		return nil, err
	}
	return data.Collection, nil
}

// Product fetches one product by global id. A nil node means not found or
// not a product.
func (c *Client) Product(ctx context.Context, id string) (*ProductDetailNode, error) {
	var data struct {
		Node *ProductDetailNode `json:"node"`
	}
	if err := c.Do(ctx, OpGetProductByID, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	if data.Node == nil || data.Node.Typename != "Product" {
		return nil, nil
	}
	return data.Node, nil
}

type cartPayload struct {
	Cart       *CartNode   `json:"cart"`
	UserErrors []UserError `json:"userErrors"`
}

// CartCreate creates a cart, optionally with lines.
func (c *Client) CartCreate(ctx context.Context, input CartInput) (*CartNode, []UserError, error) {
	var data struct {
		CartCreate cartPayload `json:"cartCreate"`
	}
	if err := c.Do(ctx, OpCartCreate, map[string]any{"input": input}, &data); err != nil {
		return nil, nil, err
	}
	return data.CartCreate.Cart, data.CartCreate.UserErrors, nil
}

// Cart fetches a cart by id. A nil cart means the id is unknown or expired.
func (c *Client) Cart(ctx context.Context, id string) (*CartNode, error) {
	var data struct {
		Cart *CartNode `json:"cart"`
	}
	if err := c.Do(ctx, OpGetCart, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return data.Cart, nil
}

// CartLinesAdd attaches lines to a cart.
func (c *Client) CartLinesAdd(ctx context.Context, cartID string, lines []CartLineInput) (*CartNode, []UserError, error) {
	var data struct {
		CartLinesAdd cartPayload `json:"cartLinesAdd"`
	}
	vars := map[string]any{"cartId": cartID, "lines": lines}
	if err := c.Do(ctx, OpCartLinesAdd, vars, &data); err != nil {
		return nil, nil, err
	}
	return data.CartLinesAdd.Cart, data.CartLinesAdd.UserErrors, nil
}

// CartLinesUpdate changes line quantities.
func (c *Client) CartLinesUpdate(ctx context.Context, cartID string, lines []CartLineUpdateInput) (*CartNode, []UserError, error) {
	var data struct {
		CartLinesUpdate cartPayload `json:"cartLinesUpdate"`
	}
	vars := map[string]any{"cartId": cartID, "lines": lines}
	if err := c.Do(ctx, OpCartLinesUpdate, vars, &data); err != nil {
		return nil, nil, err
	}
	return data.CartLinesUpdate.Cart, data.CartLinesUpdate.UserErrors, nil
}

// CartLinesRemove drops lines from a cart.
func (c *Client) CartLinesRemove(ctx context.Context, cartID string, lineIDs []string) (*CartNode, []UserError, error) {
	var data struct {
		CartLinesRemove cartPayload `json:"cartLinesRemove"`
	}
	vars := map[string]any{"cartId": cartID, "lineIds": lineIDs}
	if err := c.Do(ctx, OpCartLinesRemove, vars, &data); err != nil {
		return nil, nil, err
	}
	return data.CartLinesRemove.Cart, data.CartLinesRemove.UserErrors, nil
}

// CustomerCreate registers a new customer account.
func (c *Client) CustomerCreate(ctx context.Context, input CustomerCreateInput) (*CustomerNode, []UserError, error) {
	var data struct {
		CustomerCreate struct {
			Customer   *CustomerNode `json:"customer"`
			UserErrors []UserError   `json:"customerUserErrors"`
		} `json:"customerCreate"`
	}
	if err := c.Do(ctx, OpCustomerCreate, map[string]any{"input": input}, &data); err != nil {
		return nil, nil, err
	}
	return data.CustomerCreate.Customer, data.CustomerCreate.UserErrors, nil
}

// CustomerAccessTokenCreate exchanges credentials for a customer token.
func (c *Client) CustomerAccessTokenCreate(ctx context.Context, email, password string) (*CustomerAccessToken, []UserError, error) {
	var data struct {
		Create struct {
			Token      *CustomerAccessToken `json:"customerAccessToken"`
			UserErrors []UserError          `json:"customerUserErrors"`
		} `json:"customerAccessTokenCreate"`
	}
	input := map[string]any{"email": strings.TrimSpace(email), "password": password}
	if err := c.Do(ctx, OpCustomerAccessTokenCreate, map[string]any{"input": input}, &data); err != nil {
		return nil, nil, err
	}
	return data.Create.Token, data.Create.UserErrors, nil
}

// CustomerAccessTokenDelete revokes a customer token and returns the deleted
// token value.
func (c *Client) CustomerAccessTokenDelete(ctx context.Context, token string) (string, []UserError, error) {
	var data struct {
		Delete struct {
			DeletedAccessToken string      `json:"deletedAccessToken"`
			UserErrors         []UserError `json:"userErrors"`
		} `json:"customerAccessTokenDelete"`
	}
	vars := map[string]any{"customerAccessToken": token}
	if err := c.Do(ctx, OpCustomerAccessTokenDelete, vars, &data); err != nil {
		return "", nil, err
	}
	return data.Delete.DeletedAccessToken, data.Delete.UserErrors, nil
}

// Customer fetches the customer owning token. A nil customer means the
// token is invalid or expired.
func (c *Client) Customer(ctx context.Context, token string) (*CustomerNode, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("customer access token required")
	}
	var data struct {
		Customer *CustomerNode `json:"customer"`
	}
	vars := map[string]any{"customerAccessToken": token}
	if err := c.Do(ctx, OpGetCustomer, vars, &data); err != nil {
		return nil, err
	}
	return data.Customer, nil
}
