package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when no catalog item is an acceptable match for a query
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound is returned when neither the order id nor the visible order number resolve
	ErrOrderNotFound = errors.New("order not found")

	// ErrMissingQuery is returned when a lookup that needs a search term receives none
	ErrMissingQuery = errors.New("missing search query")

	// ErrDetailUnavailable is returned when the detail record of a selected product cannot be fetched
	ErrDetailUnavailable = errors.New("product detail unavailable")
)

// UpstreamError is a non-success response from the catalog platform.
// The status and body are relayed to the inbound caller unchanged.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// AsUpstreamError reports whether err wraps an *UpstreamError and returns it.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}
