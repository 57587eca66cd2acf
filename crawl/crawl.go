// Package crawl walks websites depth-first under a depth and domain budget,
// feeding every page's visible text to a word pipeline in bounded windows.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/shensd/icecold"
	"github.com/shensd/icecold/bloom"
	"golang.org/x/sync/errgroup"
)

// Crawler fetches pages recursively and streams their text into Pipeline.
type Crawler struct {
	Source   icecold.DocumentSource
	Reader   icecold.TextReader
	Pipeline icecold.WordProcessor
	Config   *icecold.Config

	// Limiter, if set, is waited on before every fetch, keyed by host.
	Limiter icecold.DomainLimiter

	Logger *slog.Logger
}

// Result holds the outcome of a crawl run.
type Result struct {
	Pages   int // pages fetched and read
	Skipped int // pages that failed to fetch and were skipped
	Links   int // links followed after the domain policy
	Bytes   int // bytes of text handed to the pipeline
	Visited int // distinct URLs seen, approximate for a bloom set
}

// sizer is implemented by visited sets that can report their size.
type sizer interface {
	Len() int
}

// counters accumulates Result fields across goroutines.
type counters struct {
	pages, skipped, links, bytes atomic.Int64
}

func (n *counters) result() *Result {
	return &Result{
		Pages:   int(n.pages.Load()),
		Skipped: int(n.skipped.Load()),
		Links:   int(n.links.Load()),
		Bytes:   int(n.bytes.Load()),
	}
}

// Run crawls every seed with the configured depth. One visited set is shared
// by all seeds, so a page reachable from several seeds is read once.
// The partial result is returned along with any error.
func (c *Crawler) Run(ctx context.Context, seeds []string) (*Result, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}

	visited := c.newURLSet()
	var n counters
	result := func() *Result {
		r := n.result()
		if s, ok := visited.(sizer); ok {
			r.Visited = s.Len()
		}
		return r
	}
	for _, seed := range seeds {
		task := icecold.CrawlTask{URL: seed, Depth: c.Config.Depth}
		c.logger().Info("crawling", "url", seed, "depth", task.Depth)
		if err := c.crawl(ctx, task, visited, &n); err != nil {
			return result(), err
		}
	}
	return result(), nil
}

// Crawl reads task's page and, while depth remains, every page it links to.
// The visited set must be shared across all calls belonging to one run.
func (c *Crawler) Crawl(ctx context.Context, task icecold.CrawlTask, visited icecold.URLSet) error {
	return c.crawl(ctx, task, visited, &counters{})
}

func (c *Crawler) crawl(ctx context.Context, task icecold.CrawlTask, visited icecold.URLSet, n *counters) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !visited.Visit(task.URL) {
		return nil
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, hostOf(task.URL)); err != nil {
			return err
		}
	}

	doc, err := c.Source.Fetch(ctx, task.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if c.Config.SkipUnresponsive {
			n.skipped.Add(1)
			c.logger().Warn("skipping unresponsive page", "url", task.URL, "err", err)
			return nil
		}
		return icecold.Errorf(icecold.EFETCH, "unable to connect to url %s: %s", task.URL, describe(err))
	}
	n.pages.Add(1)

	if err := c.readText(ctx, doc, n); err != nil {
		return err
	}

	if task.Depth <= 0 {
		return nil
	}

	children := c.children(task, doc)
	n.links.Add(int64(len(children)))
	c.logger().Debug("following links", "url", task.URL, "count", len(children), "depth", task.Depth-1)

	if c.Config.Concurrency <= 1 {
		for _, child := range children {
			if err := c.crawl(ctx, child, visited, n); err != nil {
				return err
			}
		}
		return nil
	}

	// At most Concurrency siblings of this page are in flight at once.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Config.Concurrency)
	for _, child := range children {
		g.Go(func() error {
			return c.crawl(gctx, child, visited, n)
		})
	}
	return g.Wait()
}

// readText hands the document's text to the pipeline one window at a time.
func (c *Crawler) readText(ctx context.Context, doc icecold.Document, n *counters) error {
	offset := 0
	for {
		window, err := c.Reader.Read(doc, offset, c.Config.WindowSize)
		if err != nil {
			return err
		}
		if len(window) == 0 {
			return nil
		}
		for _, fragment := range window {
			n.bytes.Add(int64(len(fragment)))
		}
		if err := c.Pipeline.Process(ctx, window); err != nil {
			return err
		}
		offset += len(window)
	}
}

// children resolves the document's links into tasks one level deeper,
// dropping links the domain policy rejects.
func (c *Crawler) children(task icecold.CrawlTask, doc icecold.Document) []icecold.CrawlTask {
	var tasks []icecold.CrawlTask
	for _, href := range doc.Links() {
		link, ok := icecold.ResolveLink(task.URL, href)
		if !ok {
			continue
		}
		if !c.Config.LeaveDomain && !icecold.SameDomain(task.URL, link) {
			continue
		}
		tasks = append(tasks, task.Child(link))
	}
	return tasks
}

func (c *Crawler) newURLSet() icecold.URLSet {
	if c.Config.BloomVisited {
		return bloom.NewFilterFromConfig(c.Config)
	}
	return NewVisitedSet()
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// hostOf returns the host of rawURL, or rawURL itself if it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// describe returns the message of application errors and the full text of
// anything else.
func describe(err error) string {
	if icecold.ErrorCode(err) == icecold.EINTERNAL {
		return err.Error()
	}
	return icecold.ErrorMessage(err)
}
