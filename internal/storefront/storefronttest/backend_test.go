package storefronttest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vitrine/internal/storefront"
)

func post(t *testing.T, b *Backend, op storefront.Operation, vars map[string]any, header http.Header) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": op.Query, "operationName": op.Name, "variables": vars})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, b.GraphQLPath(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestBackendRejectsWrongStorefrontToken(t *testing.T) {
	b := NewBackend(Options{StorefrontToken: "secret"})

	rec, envelope := post(t, b, storefront.OpGetProducts, map[string]any{"first": 1}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, string(envelope["errors"]), "Invalid API key")

	header := http.Header{}
	header.Set(storefront.HeaderStorefrontToken, "secret")
	rec, _ = post(t, b, storefront.OpGetProducts, map[string]any{"first": 1}, header)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBackendUnknownOperation(t *testing.T) {
	b := NewBackend(Options{})
	rec, envelope := post(t, b, storefront.Operation{Name: "Nope", Query: "query Nope { shop { name } }"}, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(envelope["errors"]), "unknown operation Nope")
}

func TestBackendFault(t *testing.T) {
	b := NewBackend(Options{})
	b.SetFault(http.StatusServiceUnavailable)

	rec, _ := post(t, b, storefront.OpGetProducts, map[string]any{"first": 1}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Zero(t, b.Calls(storefront.OpGetProducts.Name))

	b.SetFault(0)
	rec, _ = post(t, b, storefront.OpGetProducts, map[string]any{"first": 1}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, b.Calls(storefront.OpGetProducts.Name))
}

func TestBackendRecordsCustomerTokenHeader(t *testing.T) {
	b := NewBackend(Options{})
	header := http.Header{}
	header.Set(storefront.HeaderCustomerToken, "tok")
	post(t, b, storefront.OpGetProducts, map[string]any{"first": 1}, header)
	assert.Equal(t, "tok", b.CustomerTokenHeader(storefront.OpGetProducts.Name))
}

func TestTokenLifecycle(t *testing.T) {
	b := NewBackend(Options{})
	hash, err := hashPassword("hunter22")
	require.NoError(t, err)
	b.customers["ada@example.com"] = &customer{id: "gid://shopify/Customer/1", email: "ada@example.com", hash: hash}

	token, err := b.issueToken("ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token.ExpiresAt)

	email, err := b.verifyToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	b.revoked[token.AccessToken] = true
	_, err = b.verifyToken(token.AccessToken)
	assert.ErrorIs(t, err, errTokenRevoked)

	_, err = b.verifyToken("not-a-jwt")
	assert.Error(t, err)

	other := NewBackend(Options{Secret: []byte("another-secret")})
	_, err = other.verifyToken(token.AccessToken)
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := hashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, checkPassword(hash, "hunter22"))
	assert.False(t, checkPassword(hash, "hunter23"))
}
