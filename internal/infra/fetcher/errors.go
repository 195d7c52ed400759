package fetcher

import "errors"

// Sentinel errors for content fetching. Callers treat every one of them as
// "enrichment unavailable, keep the source description".
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported scheme.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address (SSRF prevention).
	ErrPrivateIP = errors.New("URL resolves to private IP address")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("content fetch timed out")

	// ErrBodyTooLarge indicates the response exceeded the configured size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured limit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrExtractFailed indicates readability could not extract content from the page.
	ErrExtractFailed = errors.New("content extraction failed")
)
