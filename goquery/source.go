package goquery

import (
	"context"

	"github.com/shensd/icecold"
)

var _ icecold.DocumentSource = (*Source)(nil)

// Source fetches pages with a Fetcher and parses them into Documents.
type Source struct {
	fetcher icecold.Fetcher
}

// NewSource creates a Source that fetches through f.
func NewSource(f icecold.Fetcher) *Source {
	return &Source{fetcher: f}
}

// Fetch retrieves the URL and parses the response.
func (s *Source) Fetch(ctx context.Context, url string) (icecold.Document, error) {
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseString(url, html)
}
