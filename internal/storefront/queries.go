package storefront

// Operation is a named GraphQL document.
type Operation struct {
	Name  string
	Query string
}

const productListFields = `
  id
  title
  handle
  images(first: 1) { edges { node { url altText } } }
  variants(first: 1) { edges { node { id title availableForSale price { amount currencyCode } } } }
`

const cartFields = `
  id
  checkoutUrl
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          __typename
          ... on ProductVariant {
            id
            title
            price { amount currencyCode }
            image { url altText }
            product { id title }
          }
        }
      }
    }
  }
`

const userErrorFields = `userErrors { field message code }`

// Storefront operations used by vitrine.
var (
	OpGetProducts = Operation{Name: "GetProducts", Query: `query GetProducts($first: Int!) {
  products(first: $first) { edges { node {` + productListFields + `} } }
}`}

	OpSearchProducts = Operation{Name: "SearchProducts", Query: `query SearchProducts($query: String!, $first: Int!) {
  products(first: $first, query: $query) { edges { node {` + productListFields + `} } }
}`}

	OpGetProductsByCollection = Operation{Name: "GetProductsByCollection", Query: `query GetProductsByCollection($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    id
    handle
    title
    products(first: $first) { edges { node {` + productListFields + `} } }
  }
}`}

	OpGetProductByID = Operation{Name: "GetProductById", Query: `query GetProductById($id: ID!) {
  node(id: $id) {
    __typename
    ... on Product {
      id
      title
      description
      images(first: 10) { edges { node { url altText } } }
      variants(first: 25) { edges { node { id title availableForSale price { amount currencyCode } } } }
    }
  }
}`}

	OpCartCreate = Operation{Name: "CartCreate", Query: `mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) { cart {` + cartFields + `} ` + userErrorFields + ` }
}`}

	OpGetCart = Operation{Name: "GetCart", Query: `query GetCart($id: ID!) {
  cart(id: $id) {` + cartFields + `}
}`}

	OpCartLinesAdd = Operation{Name: "CartLinesAdd", Query: `mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) { cart {` + cartFields + `} ` + userErrorFields + ` }
}`}

	OpCartLinesUpdate = Operation{Name: "CartLinesUpdate", Query: `mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) { cart {` + cartFields + `} ` + userErrorFields + ` }
}`}

	OpCartLinesRemove = Operation{Name: "CartLinesRemove", Query: `mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) { cart {` + cartFields + `} ` + userErrorFields + ` }
}`}

	OpCustomerCreate = Operation{Name: "CustomerCreate", Query: `mutation CustomerCreate($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    customer { id firstName lastName email }
    customerUserErrors { field message code }
  }
}`}

	OpCustomerAccessTokenCreate = Operation{Name: "CustomerAccessTokenCreate", Query: `mutation CustomerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken { accessToken expiresAt }
    customerUserErrors { field message code }
  }
}`}

	OpCustomerAccessTokenDelete = Operation{Name: "CustomerAccessTokenDelete", Query: `mutation CustomerAccessTokenDelete($customerAccessToken: String!) {
  customerAccessTokenDelete(customerAccessToken: $customerAccessToken) {
    deletedAccessToken
    userErrors { field message }
  }
}`}

	OpGetCustomer = Operation{Name: "GetCustomer", Query: `query GetCustomer($customerAccessToken: String!) {
  customer(customerAccessToken: $customerAccessToken) { id firstName lastName email }
}`}
)
