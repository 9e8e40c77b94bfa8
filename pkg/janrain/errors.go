package janrain

import "errors"

var (
	// ErrMissingAPIKey is returned when the client is constructed without an API key.
	ErrMissingAPIKey = errors.New("janrain: missing API key")

	// ErrInvalidEndpoint is returned when the configured API base URL cannot be parsed
	// or is not absolute.
	ErrInvalidEndpoint = errors.New("janrain: invalid API endpoint")

	// ErrInvalidMethod is returned when a request uses an HTTP verb other than GET or POST.
	// It is raised before any network activity.
	ErrInvalidMethod = errors.New("janrain: invalid HTTP method")

	// ErrInvalidPath is returned when the request path is not a valid relative URL.
	ErrInvalidPath = errors.New("janrain: invalid request path")

	// ErrTransport is returned when the request could not be sent or the response
	// body is not valid JSON.
	ErrTransport = errors.New("janrain: transport failure")

	// ErrUnexpectedResponse is returned when a decoded response does not have the
	// shape the operation expects (e.g. an array where an object is required).
	ErrUnexpectedResponse = errors.New("janrain: unexpected response")

	// ErrProvider is matched by every *APIError, so callers can treat any
	// provider-reported failure uniformly with errors.Is.
	ErrProvider = errors.New("janrain: provider returned an error")

	// ErrAmbiguousInvocation is returned when an operation is called without the
	// credentials or parameters needed to pick an API path.
	ErrAmbiguousInvocation = errors.New("janrain: ambiguous invocation")
)
