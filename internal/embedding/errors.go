package embedding

import (
	"errors"
	"fmt"
)

// Common errors returned by the embedding package.
var (
	// ErrUnsupportedProvider indicates an unrecognized provider name.
	ErrUnsupportedProvider = errors.New("unsupported embedding provider")

	// ErrMissingCredential indicates the bound provider's credentials are absent.
	ErrMissingCredential = errors.New("missing embedding credential")

	// ErrMalformedResponse indicates a provider response that could not be used.
	ErrMalformedResponse = errors.New("malformed embedding response")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error calling embedding provider")
)

// APIError represents an HTTP error response from a provider API.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API error (status %d)", e.Provider, e.StatusCode)
}

// IsRetryable reports whether err is worth retrying: rate limiting (429) or a
// server-side failure (5xx). Everything else, including auth failures and
// malformed responses, is permanent.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 429 || (apiErr.StatusCode >= 500 && apiErr.StatusCode < 600)
}

// IsAuthError reports whether err indicates rejected credentials.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited reports whether err indicates provider rate limiting.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
