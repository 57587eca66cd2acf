// Package http provides the net/http implementation of icecold.Fetcher and
// sitemap-based seed discovery.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/shensd/icecold"
	"golang.org/x/net/html/charset"
)

// Ensure Fetcher implements icecold.Fetcher at compile time.
var _ icecold.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript and makes exactly one attempt per URL.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to icecold.DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the number of body bytes read per response.
// Longer bodies are truncated, not rejected.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     icecold.DefaultTimeout,
		userAgent:   icecold.DefaultUserAgent,
		maxBodySize: icecold.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// NewFetcherFromConfig creates a Fetcher using the transport settings of cfg.
func NewFetcherFromConfig(cfg *icecold.Config) *Fetcher {
	return NewFetcher(
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithMaxBodySize(cfg.MaxBodySize),
	)
}

// Fetch retrieves the HTML content from the given URL. Bodies declared in a
// non-UTF-8 charset are decoded to UTF-8. An empty body is an empty page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", icecold.Errorf(icecold.EFETCH, "invalid request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", icecold.Errorf(icecold.EFETCH, "request to %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", icecold.Errorf(icecold.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(body, f.maxBodySize)
	}

	decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", icecold.Errorf(icecold.EFETCH, "decoding body of %s: %v", url, err)
	}

	b, err := io.ReadAll(decoded)
	if err != nil {
		return "", icecold.Errorf(icecold.EFETCH, "reading body of %s: %v", url, err)
	}

	return string(b), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
