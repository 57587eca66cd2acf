package icecold

import "context"

// SeedSource discovers seed URLs from a sitemap.
type SeedSource interface {
	// Seeds returns every page URL listed by the sitemap at sitemapURL.
	// Sitemap indexes are resolved recursively.
	Seeds(ctx context.Context, sitemapURL string) ([]string, error)
}
