package icecold

import "time"

// Default configuration values.
const (
	DefaultMinWordLength  = 3
	DefaultMaxWordLength  = 15
	DefaultMaxComboLength = 3
	DefaultDepth          = 1
	DefaultUserAgent      = "icecold"
	DefaultCharset        = "_-"
	DefaultWindowSize     = 100
	DefaultTimeout        = 10 * time.Second
	DefaultMaxBodySize    = 10 << 20

	DefaultBloomCapacity          = 10000
	DefaultBloomFalsePositiveRate = 0.01
)

// MaxComboCeiling is the largest accepted MaxComboLength. Chain output grows
// with every extra combo step, so larger values are rejected outright.
const MaxComboCeiling = 10

// Config holds every tunable of a run. It is built once at startup and shared
// by pointer with the crawler, the word pipeline and the fetcher.
type Config struct {
	// Word filtering. Tokens shorter than MinWordLength or longer than
	// MaxWordLength are discarded before chaining.
	MinWordLength int
	MaxWordLength int

	// MaxComboLength bounds chain length. Chains of 1..MaxComboLength-1 words
	// are produced; output size grows as tokens x MaxComboLength x len(Charset),
	// so keep it small. A value of 1 disables chaining.
	MaxComboLength int

	// Charset holds the glue characters used to join chained words, one
	// chain per character.
	Charset string

	// SmushWords additionally emits each chain with no glue at all.
	SmushWords bool

	// Depth is the number of link levels followed from each seed URL.
	Depth int

	// LeaveDomain allows following links outside the parent's top domain.
	LeaveDomain bool

	// SkipUnresponsive skips pages that fail to fetch instead of aborting.
	SkipUnresponsive bool

	// UserAgent is sent with every request.
	UserAgent string

	// WindowSize is the number of text fragments read from a page at once.
	WindowSize int

	// Concurrency is the number of sibling pages fetched in parallel.
	// Values <= 1 crawl strictly depth-first in document order.
	Concurrency int

	// RateLimit is the per-host request rate in requests per second.
	// Zero disables rate limiting.
	RateLimit float64

	Timeout     time.Duration
	MaxBodySize int64

	// BloomVisited tracks visited URLs with a Bloom filter sized by
	// BloomCapacity and BloomFalsePositiveRate instead of an exact set.
	BloomVisited           bool
	BloomCapacity          uint
	BloomFalsePositiveRate float64
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		MinWordLength:          DefaultMinWordLength,
		MaxWordLength:          DefaultMaxWordLength,
		MaxComboLength:         DefaultMaxComboLength,
		Charset:                DefaultCharset,
		SmushWords:             true,
		Depth:                  DefaultDepth,
		LeaveDomain:            true,
		UserAgent:              DefaultUserAgent,
		WindowSize:             DefaultWindowSize,
		Concurrency:            1,
		Timeout:                DefaultTimeout,
		MaxBodySize:            DefaultMaxBodySize,
		BloomCapacity:          DefaultBloomCapacity,
		BloomFalsePositiveRate: DefaultBloomFalsePositiveRate,
	}
}

// Validate returns an EINVALID error if the configuration cannot be used.
func (c *Config) Validate() error {
	if err := c.ValidateWords(); err != nil {
		return err
	}
	if c.Depth < 0 {
		return Errorf(EINVALID, "depth must not be negative, %d provided", c.Depth)
	}
	if c.WindowSize <= 0 {
		return Errorf(EINVALID, "window size must be greater than 0, %d provided", c.WindowSize)
	}
	if c.RateLimit < 0 {
		return Errorf(EINVALID, "rate limit must not be negative, %g provided", c.RateLimit)
	}
	if c.Timeout < 0 {
		return Errorf(EINVALID, "timeout must not be negative, %s provided", c.Timeout)
	}
	if c.BloomVisited {
		if c.BloomCapacity == 0 {
			return Errorf(EINVALID, "bloom capacity must be greater than 0")
		}
		if c.BloomFalsePositiveRate <= 0 || c.BloomFalsePositiveRate >= 1 {
			return Errorf(EINVALID, "bloom false positive rate must be between 0 and 1, %g provided", c.BloomFalsePositiveRate)
		}
	}
	return nil
}

// ValidateWords checks only the settings used by the word pipeline.
func (c *Config) ValidateWords() error {
	if c.MaxComboLength <= 0 {
		return Errorf(EINVALID, "max combo size must be greater than 0, %d provided", c.MaxComboLength)
	}
	if c.MaxComboLength > MaxComboCeiling {
		return Errorf(EINVALID, "max combo size must not exceed %d, %d provided", MaxComboCeiling, c.MaxComboLength)
	}
	if c.MinWordLength <= 0 {
		return Errorf(EINVALID, "min word length must be greater than 0, %d provided", c.MinWordLength)
	}
	if c.MaxWordLength < c.MinWordLength {
		return Errorf(EINVALID, "max word length (%d) must not be less than min word length (%d)", c.MaxWordLength, c.MinWordLength)
	}
	if c.MaxComboLength > 1 && c.Charset == "" && !c.SmushWords {
		return Errorf(EINVALID, "charset must not be empty when chaining words")
	}
	return nil
}
