package icecold

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch makes a single request for the URL and returns the response body.
	// Non-success responses are errors. There are no retries.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DocumentSource fetches a URL and parses it into a queryable Document.
// Malformed markup is parsed best-effort; only transport failures are errors.
type DocumentSource interface {
	Fetch(ctx context.Context, url string) (Document, error)
}
