// Command icecold crawls websites and turns their visible text into a
// password-candidate wordlist.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/shensd/icecold"
	"github.com/shensd/icecold/crawl"
	"github.com/shensd/icecold/fs"
	"github.com/shensd/icecold/goquery"
	icehttp "github.com/shensd/icecold/http"
	iceslog "github.com/shensd/icecold/slog"
	"github.com/shensd/icecold/wordlist"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Candidates go to stdout
// unless --output is given; logs go to stderr. An interrupted crawl is not
// an error: the output written so far is flushed and Run returns nil.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("icecold"),
		kong.Description("Crawl websites and build a password-candidate wordlist from their text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAML),
		vars(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return icecold.Errorf(icecold.EINVALID, "no url specified")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	mode, err := cli.mode()
	if err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	// Local seeds are read before the output file is truncated.
	seeds, err := cli.seeds(mode)
	if err != nil {
		return err
	}

	var sink icecold.Sink
	if cli.Output != "" {
		fileSink, err := fs.NewFileSink(cli.Output)
		if err != nil {
			return err
		}
		sink = fileSink
	} else {
		sink = fs.NewWriterSink(stdout)
	}
	sink = iceslog.NewLoggingSink(sink, logger)
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()

	fetcher := iceslog.NewLoggingFetcher(icehttp.NewFetcherFromConfig(cfg), logger)
	defer fetcher.Close()

	if mode == seedSitemap {
		seeds, err = m.sitemapSeeds(ctx, cli.Sitemap, cfg, logger)
		if err != nil {
			return interrupted(ctx, err, stderr)
		}
	}

	pipeline, err := wordlist.NewPipeline(cfg, sink)
	if err != nil {
		return err
	}

	crawler := &crawl.Crawler{
		Source:   iceslog.NewLoggingSource(goquery.NewSource(fetcher), logger),
		Reader:   goquery.NewReader(),
		Pipeline: pipeline,
		Config:   cfg,
		Logger:   logger,
	}
	if cfg.RateLimit > 0 {
		crawler.Limiter = crawl.NewDomainLimiter(cfg.RateLimit)
	}

	result, err := crawler.Run(ctx, seeds)
	if result != nil {
		logger.Info("crawl finished", "summary", result.Summary(), "visited", result.Visited)
	}
	if err != nil {
		return interrupted(ctx, err, stderr)
	}
	return nil
}

// sitemapSeeds returns the page URLs listed by the sitemap at sitemapURL.
func (m *Main) sitemapSeeds(ctx context.Context, sitemapURL string, cfg *icecold.Config, logger *slog.Logger) ([]string, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	source := iceslog.NewLoggingSeedSource(icehttp.NewSeedService(client, cfg.UserAgent), logger)
	seeds, err := source.Seeds(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, icecold.Errorf(icecold.EINVALID, "sitemap %s lists no urls", sitemapURL)
	}
	return seeds, nil
}

// interrupted reports a canceled run and swallows the cancellation.
func interrupted(ctx context.Context, err error, stderr io.Writer) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		fmt.Fprintln(stderr, "Interrupt caught, exiting...")
		return nil
	}
	return err
}

// newLogger returns a slog.Logger backed by charmbracelet/log.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "icecold",
	})
	return slog.New(handler)
}

// errorText returns the message of application errors and the full text of
// anything else.
func errorText(err error) string {
	if icecold.ErrorCode(err) == icecold.EINTERNAL {
		return err.Error()
	}
	return icecold.ErrorMessage(err)
}
