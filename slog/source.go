package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shensd/icecold"
)

// Ensure LoggingSource implements icecold.DocumentSource.
var _ icecold.DocumentSource = (*LoggingSource)(nil)

// LoggingSource wraps a DocumentSource with debug logging.
type LoggingSource struct {
	next   icecold.DocumentSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next icecold.DocumentSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source and logs how many links the page has.
func (s *LoggingSource) Fetch(ctx context.Context, url string) (doc icecold.Document, err error) {
	defer func(begin time.Time) {
		if !s.logger.Enabled(ctx, slog.LevelDebug) {
			return
		}
		links := 0
		if doc != nil {
			links = len(doc.Links())
		}
		s.logger.Debug("document",
			"url", url,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, url)
}

// Ensure LoggingSeedSource implements icecold.SeedSource.
var _ icecold.SeedSource = (*LoggingSeedSource)(nil)

// LoggingSeedSource wraps a SeedSource with logging.
type LoggingSeedSource struct {
	next   icecold.SeedSource
	logger *slog.Logger
}

// NewLoggingSeedSource creates a new LoggingSeedSource.
func NewLoggingSeedSource(next icecold.SeedSource, logger *slog.Logger) *LoggingSeedSource {
	return &LoggingSeedSource{next: next, logger: logger}
}

// Seeds delegates to the wrapped source and logs the operation.
func (s *LoggingSeedSource) Seeds(ctx context.Context, sitemapURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", sitemapURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Seeds(ctx, sitemapURL)
}
