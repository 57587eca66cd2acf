package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/shensd/icecold"
)

var _ icecold.URLSet = (*VisitedSet)(nil)

// VisitedSet is a concurrency-safe set of visited URLs that keeps only the
// 64-bit xxhash digest of each URL, so memory per URL is fixed regardless of
// URL length. Two distinct URLs collide with probability about n²/2⁶⁵ for n
// URLs; a colliding URL is treated as already visited.
type VisitedSet struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewVisitedSet returns an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[uint64]struct{})}
}

// Visit marks the URL as visited.
// Returns false if the URL had already been visited.
func (s *VisitedSet) Visit(url string) bool {
	h := xxhash.Sum64String(url)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[h]; ok {
		return false
	}
	s.seen[h] = struct{}{}
	return true
}

// Len returns the number of distinct URLs visited.
func (s *VisitedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
