package mock

import (
	"context"

	"github.com/shensd/icecold"
)

var _ icecold.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of icecold.SeedSource.
type SeedSource struct {
	SeedsFn func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (s *SeedSource) Seeds(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.SeedsFn(ctx, sitemapURL)
}
