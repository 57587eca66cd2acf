package mock

import (
	"context"

	"github.com/shensd/icecold"
)

var _ icecold.URLSet = (*URLSet)(nil)

// URLSet is a mock implementation of icecold.URLSet.
type URLSet struct {
	VisitFn func(url string) bool
}

func (s *URLSet) Visit(url string) bool {
	return s.VisitFn(url)
}

var _ icecold.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of icecold.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
