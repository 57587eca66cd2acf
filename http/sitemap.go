package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/shensd/icecold"
)

// Ensure SeedService implements icecold.SeedSource.
var _ icecold.SeedSource = (*SeedService)(nil)

// SeedService reads crawl seeds from XML sitemaps.
type SeedService struct {
	client    *http.Client
	userAgent string
}

// NewSeedService creates a new SeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSeedService(client *http.Client, userAgent string) *SeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SeedService{client: client, userAgent: userAgent}
}

// Seeds returns every page URL listed by the sitemap at sitemapURL, in the
// order they appear. Sitemap indexes are followed recursively; each nested
// sitemap is read at most once and duplicate page URLs are dropped.
func (s *SeedService) Seeds(ctx context.Context, sitemapURL string) ([]string, error) {
	seenSitemaps := make(map[string]bool)
	urls, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(urls))
	seeds := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			seeds = append(seeds, u)
		}
	}
	return seeds, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SeedService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, icecold.Errorf(icecold.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, icecold.Errorf(icecold.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, seen)
	}

	return locs(root, "url"), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SeedService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var all []string
	for _, sitemapURL := range locs(root, "sitemap") {
		urls, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, urls...)
	}
	return all, nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// fetchURL fetches a URL and returns the response body.
func (s *SeedService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, icecold.Errorf(icecold.EINVALID, "invalid sitemap URL %s: %v", targetURL, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, icecold.Errorf(icecold.EFETCH, "unable to fetch sitemap %s: %v", targetURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, icecold.Errorf(icecold.EFETCH, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
