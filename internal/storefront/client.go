package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Header names understood by the Storefront API.
const (
	HeaderStorefrontToken = "X-Shopify-Storefront-Access-Token"
	HeaderCustomerToken   = "X-Shopify-Customer-Access-Token"
	HeaderRequestID       = "X-Request-Id"
)

const (
	defaultUserAgent      = "vitrine/0.1"
	defaultRequestTimeout = 10 * time.Second
	maxErrorBody          = 512
)

// TokenSource supplies the customer access token injected on every request.
// A blank token means the request goes out anonymously.
type TokenSource interface {
	CustomerToken() string
}

// Options configure a Client.
type Options struct {
	Endpoint        string
	StorefrontToken string
	Tokens          TokenSource
	Timeout         time.Duration
	HTTPClient      *http.Client
	Logger          zerolog.Logger
}

// Client talks to a Storefront GraphQL endpoint.
type Client struct {
	endpoint        *url.URL
	http            *http.Client
	storefrontToken string
	tokens          TokenSource
	userAgent       string
	log             zerolog.Logger
}

// NewClient builds a Client for the endpoint in opts.
func NewClient(opts Options) (*Client, error) {
	endpoint, err := parseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:        endpoint,
		http:            httpClient,
		storefrontToken: strings.TrimSpace(opts.StorefrontToken),
		tokens:          opts.Tokens,
		userAgent:       defaultUserAgent,
		log:             opts.Logger.With().Str("component", "storefront").Logger(),
	}, nil
}

// Endpoint returns the GraphQL URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

type gqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorItem     `json:"errors"`
}

// Do executes one GraphQL operation and decodes its data field into dest.
func (c *Client) Do(ctx context.Context, op Operation, vars map[string]any, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(gqlRequest{Query: op.Query, OperationName: op.Name, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	if c.storefrontToken != "" {
		req.Header.Set(HeaderStorefrontToken, c.storefrontToken)
	}
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.CustomerToken()); token != "" {
			req.Header.Set(HeaderCustomerToken, token)
		}
	}

	log := c.log.With().Str("op", op.Name).Str("request_id", requestID).Logger()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("storefront request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Warn().Int("status", resp.StatusCode).Msg("storefront returned error status")
		return &StatusError{Operation: op.Name, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var payload gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	log.Debug().Dur("latency", time.Since(start)).Int("errors", len(payload.Errors)).Msg("storefront request completed")

	if len(payload.Errors) > 0 {
		return &GraphQLError{Operation: op.Name, Errors: payload.Errors}
	}
	if dest == nil || len(payload.Data) == 0 || string(payload.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload.Data, dest); err != nil {
		return fmt.Errorf("decode %s data: %w", op.Name, err)
	}
	return nil
}

func parseEndpoint(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("storefront endpoint is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse endpoint %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
