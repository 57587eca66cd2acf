// Package bloom provides a probabilistic visited set backed by a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/shensd/icecold"
)

// Compile-time interface verification.
var _ icecold.URLSet = (*Filter)(nil)

// Filter tracks visited URLs in constant memory. A false positive makes an
// unvisited URL look visited, so a small share of pages may be skipped; a
// visited URL is never reported as new. It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewFilterFromConfig creates a Filter sized by the bloom settings of cfg.
func NewFilterFromConfig(cfg *icecold.Config) *Filter {
	return NewFilter(cfg.BloomCapacity, cfg.BloomFalsePositiveRate)
}

// Visit marks the URL as visited.
// Returns false if the URL was (probably) already visited.
func (f *Filter) Visit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestAndAddString(url)
}

// Len returns the approximate number of visited URLs.
func (f *Filter) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.f.ApproximatedSize())
}
