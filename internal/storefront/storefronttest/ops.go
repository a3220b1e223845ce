package storefronttest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/five82/vitrine/internal/storefront"
)

const checkoutBaseURL = "https://checkout.vitrine.test/cart/c/"

type cart struct {
	id          string
	checkoutURL string
	lines       []cartLine
}

type cartLine struct {
	id        string
	variantID string
	quantity  int
}

type customer struct {
	id        string
	email     string
	firstName string
	lastName  string
	hash      []byte
}

func decodeVars(raw json.RawMessage, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("invalid variables: %w", err)
	}
	return nil
}

func limit(first, n int) int {
	if first <= 0 || first > n {
		return n
	}
	return first
}

func productConnection(products []Product) storefront.Connection[storefront.ProductNode] {
	conn := storefront.Connection[storefront.ProductNode]{Edges: []storefront.Edge[storefront.ProductNode]{}}
	for _, p := range products {
		conn.Edges = append(conn.Edges, storefront.Edge[storefront.ProductNode]{Node: p.listNode()})
	}
	return conn
}

func (b *Backend) getProducts(raw json.RawMessage) (any, error) {
	var vars struct {
		First int `json:"first"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	page := b.products[:limit(vars.First, len(b.products))]
	return map[string]any{"products": productConnection(page)}, nil
}

func (b *Backend) searchProducts(raw json.RawMessage) (any, error) {
	var vars struct {
		Query string `json:"query"`
		First int    `json:"first"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var hits []Product
	for _, p := range b.products {
		if p.matches(vars.Query) {
			hits = append(hits, p)
		}
	}
	hits = hits[:limit(vars.First, len(hits))]
	return map[string]any{"products": productConnection(hits)}, nil
}

func (b *Backend) getCollection(raw json.RawMessage) (any, error) {
	var vars struct {
		Handle string `json:"handle"`
		First  int    `json:"first"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	title, ok := collectionTitles[vars.Handle]
	b.mu.Lock()
	defer b.mu.Unlock()
	var members []Product
	for _, p := range b.products {
		if p.inCollection(vars.Handle) {
			members = append(members, p)
		}
	}
	if !ok && len(members) == 0 {
		return map[string]any{"collection": nil}, nil
	}
	if !ok {
		title = vars.Handle
	}
	members = members[:limit(vars.First, len(members))]
	return map[string]any{"collection": storefront.CollectionNode{
		ID:       "gid://shopify/Collection/" + vars.Handle,
		Handle:   vars.Handle,
		Title:    title,
		Products: productConnection(members),
	}}, nil
}

func (b *Backend) getProduct(raw json.RawMessage) (any, error) {
	var vars struct {
		ID string `json:"id"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.products {
		if p.ID == vars.ID {
			return map[string]any{"node": p.detailNode()}, nil
		}
	}
	return map[string]any{"node": nil}, nil
}

// cartNode renders c. Callers hold b.mu.
func (b *Backend) cartNode(c *cart) storefront.CartNode {
	subtotal := decimal.Zero
	currency := "USD"
	lines := storefront.Connection[storefront.CartLineNode]{Edges: []storefront.Edge[storefront.CartLineNode]{}}
	for i, line := range c.lines {
		p, v, ok := b.findVariant(line.variantID)
		if !ok {
			continue
		}
		if i == 0 && v.Currency != "" {
			currency = v.Currency
		}
		price, err := decimal.NewFromString(v.Amount)
		if err != nil {
			price = decimal.Zero
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.quantity))))

		merch := storefront.Merchandise{
			Typename: "ProductVariant",
			ID:       v.ID,
			Title:    v.Title,
			Price:    storefront.MoneyV2{Amount: v.Amount, CurrencyCode: v.Currency},
			Product:  &storefront.ProductRef{ID: p.ID, Title: p.Title},
		}
		if len(p.Images) > 0 {
			merch.Image = &storefront.Image{URL: p.Images[0]}
		}
		lines.Edges = append(lines.Edges, storefront.Edge[storefront.CartLineNode]{Node: storefront.CartLineNode{
			ID:          line.id,
			Quantity:    line.quantity,
			Merchandise: merch,
		}})
	}
	total := storefront.MoneyV2{Amount: subtotal.StringFixed(2), CurrencyCode: currency}
	return storefront.CartNode{
		ID:          c.id,
		CheckoutURL: c.checkoutURL,
		Cost:        storefront.CartCost{SubtotalAmount: total, TotalAmount: total},
		Lines:       lines,
	}
}

func cartPayload(key string, node *storefront.CartNode, errs []storefront.UserError) map[string]any {
	if errs == nil {
		errs = []storefront.UserError{}
	}
	payload := map[string]any{"cart": nil, "userErrors": errs}
	if node != nil {
		payload["cart"] = node
	}
	return map[string]any{key: payload}
}

func missingCart(id string) []storefront.UserError {
	return []storefront.UserError{{
		Field:   []string{"cartId"},
		Message: fmt.Sprintf("The specified cart does not exist: %s", id),
		Code:    "INVALID",
	}}
}

// addLines validates and merges lines into c. Callers hold b.mu.
func (b *Backend) addLines(c *cart, lines []storefront.CartLineInput) []storefront.UserError {
	for i, in := range lines {
		if in.Quantity < 1 {
			return []storefront.UserError{{
				Field:   []string{"lines", strconv.Itoa(i), "quantity"},
				Message: "The quantity must be greater than 0.",
				Code:    "INVALID",
			}}
		}
		if _, _, ok := b.findVariant(in.MerchandiseID); !ok {
			return []storefront.UserError{{
				Field:   []string{"lines", strconv.Itoa(i), "merchandiseId"},
				Message: fmt.Sprintf("The merchandise with id %s does not exist.", in.MerchandiseID),
				Code:    "INVALID",
			}}
		}
	}
	for _, in := range lines {
		merged := false
		for j := range c.lines {
			if c.lines[j].variantID == in.MerchandiseID {
				c.lines[j].quantity += in.Quantity
				merged = true
				break
			}
		}
		if !merged {
			c.lines = append(c.lines, cartLine{
				id:        "gid://shopify/CartLine/" + uuid.NewString(),
				variantID: in.MerchandiseID,
				quantity:  in.Quantity,
			})
		}
	}
	return nil
}

func (b *Backend) cartCreate(raw json.RawMessage) (any, error) {
	var vars struct {
		Input storefront.CartInput `json:"input"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	token := uuid.NewString()
	c := &cart{id: "gid://shopify/Cart/" + token, checkoutURL: checkoutBaseURL + token}
	if errs := b.addLines(c, vars.Input.Lines); errs != nil {
		return cartPayload("cartCreate", nil, errs), nil
	}
	b.carts[c.id] = c
	node := b.cartNode(c)
	return cartPayload("cartCreate", &node, nil), nil
}

func (b *Backend) getCart(raw json.RawMessage) (any, error) {
	var vars struct {
		ID string `json:"id"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.carts[vars.ID]
	if !ok {
		return map[string]any{"cart": nil}, nil
	}
	return map[string]any{"cart": b.cartNode(c)}, nil
}

func (b *Backend) cartLinesAdd(raw json.RawMessage) (any, error) {
	var vars struct {
		CartID string                     `json:"cartId"`
		Lines  []storefront.CartLineInput `json:"lines"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.carts[vars.CartID]
	if !ok {
		return cartPayload("cartLinesAdd", nil, missingCart(vars.CartID)), nil
	}
	if errs := b.addLines(c, vars.Lines); errs != nil {
		node := b.cartNode(c)
		return cartPayload("cartLinesAdd", &node, errs), nil
	}
	node := b.cartNode(c)
	return cartPayload("cartLinesAdd", &node, nil), nil
}

func (b *Backend) cartLinesUpdate(raw json.RawMessage) (any, error) {
	var vars struct {
		CartID string                           `json:"cartId"`
		Lines  []storefront.CartLineUpdateInput `json:"lines"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.carts[vars.CartID]
	if !ok {
		return cartPayload("cartLinesUpdate", nil, missingCart(vars.CartID)), nil
	}

	for i, in := range vars.Lines {
		idx := c.lineIndex(in.ID)
		if idx < 0 {
			node := b.cartNode(c)
			return cartPayload("cartLinesUpdate", &node, []storefront.UserError{{
				Field:   []string{"lines", strconv.Itoa(i), "id"},
				Message: fmt.Sprintf("The merchandise line with id %s does not exist.", in.ID),
				Code:    "INVALID",
			}}), nil
		}
		if in.Quantity < 0 {
			node := b.cartNode(c)
			return cartPayload("cartLinesUpdate", &node, []storefront.UserError{{
				Field:   []string{"lines", strconv.Itoa(i), "quantity"},
				Message: "The quantity must not be negative.",
				Code:    "INVALID",
			}}), nil
		}
	}
	for _, in := range vars.Lines {
		idx := c.lineIndex(in.ID)
		if in.Quantity == 0 {
			c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
			continue
		}
		c.lines[idx].quantity = in.Quantity
	}
	node := b.cartNode(c)
	return cartPayload("cartLinesUpdate", &node, nil), nil
}

func (b *Backend) cartLinesRemove(raw json.RawMessage) (any, error) {
	var vars struct {
		CartID  string   `json:"cartId"`
		LineIDs []string `json:"lineIds"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.carts[vars.CartID]
	if !ok {
		return cartPayload("cartLinesRemove", nil, missingCart(vars.CartID)), nil
	}
	for i, id := range vars.LineIDs {
		if c.lineIndex(id) < 0 {
			node := b.cartNode(c)
			return cartPayload("cartLinesRemove", &node, []storefront.UserError{{
				Field:   []string{"lineIds", strconv.Itoa(i)},
				Message: fmt.Sprintf("The merchandise line with id %s does not exist.", id),
				Code:    "INVALID",
			}}), nil
		}
	}
	for _, id := range vars.LineIDs {
		idx := c.lineIndex(id)
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	}
	node := b.cartNode(c)
	return cartPayload("cartLinesRemove", &node, nil), nil
}

func (c *cart) lineIndex(id string) int {
	for i, line := range c.lines {
		if line.id == id {
			return i
		}
	}
	return -1
}

func (b *Backend) customerCreate(raw json.RawMessage) (any, error) {
	var vars struct {
		Input storefront.CustomerCreateInput `json:"input"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	in := vars.Input
	reject := func(field, message, code string) (any, error) {
		return map[string]any{"customerCreate": map[string]any{
			"customer": nil,
			"customerUserErrors": []storefront.UserError{{
				Field: []string{"input", field}, Message: message, Code: code,
			}},
		}}, nil
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return reject("email", "Email is invalid", "INVALID")
	}
	if len(in.Password) < minPasswordLength {
		return reject("password", fmt.Sprintf("Password is too short (minimum is %d characters)", minPasswordLength), "TOO_SHORT")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, taken := b.customers[email]; taken {
		return reject("email", "Email has already been taken", "TAKEN")
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	cust := &customer{
		id:        "gid://shopify/Customer/" + uuid.NewString(),
		email:     email,
		firstName: strings.TrimSpace(in.FirstName),
		lastName:  strings.TrimSpace(in.LastName),
		hash:      hash,
	}
	b.customers[email] = cust
	return map[string]any{"customerCreate": map[string]any{
		"customer":           cust.node(),
		"customerUserErrors": []storefront.UserError{},
	}}, nil
}

func (b *Backend) tokenCreate(raw json.RawMessage) (any, error) {
	var vars struct {
		Input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"input"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}

	b.mu.Lock()
	cust, ok := b.customers[strings.ToLower(strings.TrimSpace(vars.Input.Email))]
	b.mu.Unlock()
	if !ok || !checkPassword(cust.hash, vars.Input.Password) {
		return map[string]any{"customerAccessTokenCreate": map[string]any{
			"customerAccessToken": nil,
			"customerUserErrors": []storefront.UserError{{
				Message: "Unidentified customer",
				Code:    "UNIDENTIFIED_CUSTOMER",
			}},
		}}, nil
	}

	token, err := b.issueToken(cust.email)
	if err != nil {
		return nil, err
	}
	return map[string]any{"customerAccessTokenCreate": map[string]any{
		"customerAccessToken": token,
		"customerUserErrors":  []storefront.UserError{},
	}}, nil
}

func (b *Backend) tokenDelete(raw json.RawMessage) (any, error) {
	var vars struct {
		Token string `json:"customerAccessToken"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	if _, err := b.verifyToken(vars.Token); err != nil {
		return map[string]any{"customerAccessTokenDelete": map[string]any{
			"deletedAccessToken": nil,
			"userErrors": []storefront.UserError{{
				Field:   []string{"customerAccessToken"},
				Message: "Access token does not exist",
			}},
		}}, nil
	}
	b.mu.Lock()
	b.revoked[vars.Token] = true
	b.mu.Unlock()
	return map[string]any{"customerAccessTokenDelete": map[string]any{
		"deletedAccessToken": vars.Token,
		"userErrors":         []storefront.UserError{},
	}}, nil
}

func (b *Backend) getCustomer(raw json.RawMessage) (any, error) {
	var vars struct {
		Token string `json:"customerAccessToken"`
	}
	if err := decodeVars(raw, &vars); err != nil {
		return nil, err
	}
	email, err := b.verifyToken(vars.Token)
	if err != nil {
		return map[string]any{"customer": nil}, nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cust, ok := b.customers[email]
	if !ok {
		return map[string]any{"customer": nil}, nil
	}
	return map[string]any{"customer": cust.node()}, nil
}

func (c *customer) node() storefront.CustomerNode {
	return storefront.CustomerNode{
		ID:        c.id,
		FirstName: c.firstName,
		LastName:  c.lastName,
		Email:     c.email,
	}
}
