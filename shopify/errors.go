package shopify

import (
	"errors"
	"fmt"
)

// Standard error types for theme lookups. These are defined as variables
// to enable error comparison using errors.Is().
var (
	// ErrMalformedResponse indicates the themes endpoint returned a body
	// whose themes field is missing or not a list.
	ErrMalformedResponse = errors.New("themes field missing or not a list")

	// ErrNoMainTheme indicates no theme in the response carries the
	// "main" role, so there is no published theme to resolve.
	ErrNoMainTheme = errors.New("no theme with role \"main\"")
)

// APIError is returned when the themes endpoint reports errors in its
// response body. The raw error payload is preserved for diagnostics.
type APIError struct {
	Payload []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("themes API returned errors: %s", e.Payload)
}

// IsAPIError checks if an error is an APIError or contains one in its
// chain.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
