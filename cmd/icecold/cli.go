package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shensd/icecold"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Target string `arg:"" optional:"" help:"URL to start crawling from."`

	URL     string `short:"u" help:"URL to start crawling from."`
	URLFile string `short:"U" name:"url-file" help:"File of URLs to crawl, one per line. Blank lines and # comments are skipped."`
	Sitemap string `help:"Sitemap URL whose pages seed the crawl."`
	Output  string `short:"o" help:"Write candidates to this file instead of stdout."`

	MinWordLen int    `short:"m" name:"min-word-len" default:"${min_word_len}" help:"Minimum word length."`
	MaxWordLen int    `short:"M" name:"max-word-len" default:"${max_word_len}" help:"Maximum word length."`
	ChainLen   int    `short:"c" name:"chain-len" default:"${chain_len}" help:"Maximum combo length; chains of 1 to N-1 words are produced. Output grows as words x N x charset size (max ${chain_max})."`
	Charset    string `default:"${charset}" help:"Characters used to glue chained words, one chain per character."`
	NoSmush    bool   `name:"no-smush" help:"Do not emit chains joined without glue."`

	Depth              int           `short:"d" default:"${depth}" help:"Link levels to follow from each seed."`
	NoLeaveDomain      bool          `name:"no-leave-domain" help:"Only follow links within the parent's domain."`
	IgnoreUnresponsive bool          `name:"ignore-unresponsive" help:"Skip pages that fail to load instead of stopping."`
	UserAgent          string        `name:"ua" default:"${ua}" help:"User-Agent header sent with requests."`
	Timeout            time.Duration `default:"${timeout}" help:"Fetch timeout per page."`
	Window             int           `default:"${window}" help:"Text fragments read from a page at a time."`
	Concurrency        int           `default:"1" help:"Sibling pages fetched in parallel (1 crawls depth-first)."`
	Rate               float64       `default:"0" help:"Requests per second per host (0 disables limiting)."`
	Bloom              bool          `help:"Track visited URLs with a Bloom filter to bound memory."`

	Verbose    bool            `short:"v" help:"Enable debug logging."`
	ConfigFile kong.ConfigFlag `name:"config" help:"YAML file of flag values, keyed by flag name."`
}

// vars exposes the package defaults to the CLI struct tags.
func vars() kong.Vars {
	return kong.Vars{
		"min_word_len": strconv.Itoa(icecold.DefaultMinWordLength),
		"max_word_len": strconv.Itoa(icecold.DefaultMaxWordLength),
		"chain_len":    strconv.Itoa(icecold.DefaultMaxComboLength),
		"chain_max":    strconv.Itoa(icecold.MaxComboCeiling),
		"charset":      icecold.DefaultCharset,
		"depth":        strconv.Itoa(icecold.DefaultDepth),
		"ua":           icecold.DefaultUserAgent,
		"timeout":      icecold.DefaultTimeout.String(),
		"window":       strconv.Itoa(icecold.DefaultWindowSize),
	}
}

// Config builds the run configuration from the parsed flags.
func (c *CLI) Config() *icecold.Config {
	cfg := icecold.DefaultConfig()
	cfg.MinWordLength = c.MinWordLen
	cfg.MaxWordLength = c.MaxWordLen
	cfg.MaxComboLength = c.ChainLen
	cfg.Charset = c.Charset
	cfg.SmushWords = !c.NoSmush
	cfg.Depth = c.Depth
	cfg.LeaveDomain = !c.NoLeaveDomain
	cfg.SkipUnresponsive = c.IgnoreUnresponsive
	cfg.UserAgent = c.UserAgent
	cfg.Timeout = c.Timeout
	cfg.WindowSize = c.Window
	cfg.Concurrency = c.Concurrency
	cfg.RateLimit = c.Rate
	cfg.BloomVisited = c.Bloom
	return cfg
}

// seedMode identifies where the crawl seeds come from.
type seedMode int

const (
	seedNone seedMode = iota
	seedURL
	seedFile
	seedSitemap
)

// mode returns the single seed source selected on the command line.
func (c *CLI) mode() (seedMode, error) {
	if c.Target != "" && c.URL != "" {
		return seedNone, icecold.Errorf(icecold.EINVALID, "give the url either as an argument or with --url, not both")
	}

	var modes []seedMode
	if c.Target != "" || c.URL != "" {
		modes = append(modes, seedURL)
	}
	if c.URLFile != "" {
		modes = append(modes, seedFile)
	}
	if c.Sitemap != "" {
		modes = append(modes, seedSitemap)
	}

	switch len(modes) {
	case 0:
		return seedNone, icecold.Errorf(icecold.EINVALID, "no url specified, use a url argument, --url, --url-file or --sitemap")
	case 1:
		return modes[0], nil
	default:
		return seedNone, icecold.Errorf(icecold.EINVALID, "only one of url, --url-file and --sitemap may be given")
	}
}

// url returns the single seed URL from the argument or --url.
func (c *CLI) url() string {
	if c.Target != "" {
		return c.Target
	}
	return c.URL
}

// seeds returns the seeds that need no network access. Sitemap mode yields
// none; its seeds are discovered later.
func (c *CLI) seeds(mode seedMode) ([]string, error) {
	switch mode {
	case seedURL:
		return []string{c.url()}, nil
	case seedFile:
		return ReadURLFile(c.URLFile)
	default:
		return nil, nil
	}
}

// ReadURLFile returns the URLs listed in the file at path, one per line.
// Surrounding whitespace is trimmed; blank lines and lines starting with #
// are skipped.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, icecold.Errorf(icecold.EINVALID, "unable to read url file %s: %v", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, icecold.Errorf(icecold.EINVALID, "reading url file %s: %v", path, err)
	}
	if len(urls) == 0 {
		return nil, icecold.Errorf(icecold.EINVALID, "url file %s lists no urls", path)
	}
	return urls, nil
}
