package mock

import (
	"context"

	"github.com/shensd/icecold"
)

var _ icecold.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of icecold.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ icecold.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is a mock implementation of icecold.DocumentSource.
type DocumentSource struct {
	FetchFn func(ctx context.Context, url string) (icecold.Document, error)
}

func (s *DocumentSource) Fetch(ctx context.Context, url string) (icecold.Document, error) {
	return s.FetchFn(ctx, url)
}
