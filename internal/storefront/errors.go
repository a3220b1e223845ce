package storefront

import (
	"fmt"
	"strings"
)

// ErrorItem is one entry of a GraphQL response's errors array.
type ErrorItem struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLError reports a response whose errors array was not empty.
type GraphQLError struct {
	Operation string
	Errors    []ErrorItem
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		if m := strings.TrimSpace(item.Message); m != "" {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("%s failed", e.Operation)
	}
	return fmt.Sprintf("%s: %s", e.Operation, strings.Join(msgs, "; "))
}

// StatusError reports an HTTP status of 400 or above.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storefront %s returned status %d", e.Operation, e.StatusCode)
}

// UserError is a mutation payload's validation error (customerUserErrors,
// userErrors).
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
}

// FirstMessage returns the first non-blank message, or "".
func FirstMessage(errs []UserError) string {
	for _, e := range errs {
		if m := strings.TrimSpace(e.Message); m != "" {
			return m
		}
	}
	return ""
}
