package icecold

import "context"

// CrawlTask is a single page to visit.
type CrawlTask struct {
	URL string

	// Depth is the remaining number of link levels that may be followed
	// from this page. A task with Depth 0 is read but spawns no children.
	Depth int
}

// Child returns the task for a link discovered on t. Every sibling link on a
// page receives the same depth, one less than the parent.
func (t CrawlTask) Child(url string) CrawlTask {
	return CrawlTask{URL: url, Depth: t.Depth - 1}
}

// URLSet tracks URLs visited during one run.
type URLSet interface {
	// Visit marks the URL as visited.
	// Returns false if the URL had already been visited.
	Visit(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
