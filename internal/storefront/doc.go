// Package storefront provides a GraphQL client for the Shopify Storefront API.
//
// # Overview
//
// The package owns the wire: request envelopes, authentication headers, the
// operation documents vitrine sends, and Go types mirroring the response
// shapes. It knows nothing about carts being cached or tokens being stored;
// that is the shop gateway's job.
//
// The package is split into four files:
//
//   - client.go: HTTP transport, header injection and response decoding
//   - queries.go: the named GraphQL documents
//   - operations.go: typed wrappers, one per document, plus the API interface
//   - types.go / errors.go: response shapes and error values
//
// # Client Usage
//
//	client, err := storefront.NewClient(storefront.Options{
//		Endpoint:        "https://shop.example.com/api/2023-07/graphql.json",
//		StorefrontToken: token,
//		Tokens:          prefsStore,
//	})
//	if err != nil {
//		return err
//	}
//	products, err := client.Products(ctx, 20)
//
// # Request Handling
//
// Every request:
//   - is a POST of {query, operationName, variables}
//   - carries X-Shopify-Storefront-Access-Token when configured
//   - carries X-Shopify-Customer-Access-Token when the TokenSource returns a
//     non-blank token at send time
//   - carries a fresh X-Request-Id for log correlation
//
// The customer token is read per request, so logging in or out takes effect
// on the next call without rebuilding the client.
//
// # Error Handling
//
//   - Transport failures are wrapped as "execute request: ..." and still
//     satisfy net.Error through errors.As
//   - Statuses of 400 and above return *StatusError
//   - A non-empty errors array returns *GraphQLError
//   - Mutation validation failures are not errors at this layer; they come
//     back as []UserError for the caller to interpret
//
// Absent objects (unknown cart id, unknown collection handle, a node that is
// not a Product) decode to nil pointers with a nil error.
//
// # Testing
//
// Package storefronttest serves a fake of every operation here over
// httptest, so callers can test against real HTTP without a shop.
package storefront
