package advisor

import "errors"

var (
	// ErrAdvisorUnavailable indicates the advisor service is unreachable
	// or answered with a non-success status.
	ErrAdvisorUnavailable = errors.New("advisor service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("advisor request timed out")

	// ErrInvalidResponse indicates the response body could not be decoded
	// or carried out-of-range values.
	ErrInvalidResponse = errors.New("invalid advisor response")
)
