package mock

import (
	"context"

	"github.com/shensd/icecold"
)

var _ icecold.Sink = (*Sink)(nil)

// Sink is a mock implementation of icecold.Sink.
type Sink struct {
	WriteFn func(line string) error
	CloseFn func() error
}

func (s *Sink) Write(line string) error {
	return s.WriteFn(line)
}

func (s *Sink) Close() error {
	return s.CloseFn()
}

var _ icecold.WordProcessor = (*WordProcessor)(nil)

// WordProcessor is a mock implementation of icecold.WordProcessor.
type WordProcessor struct {
	ProcessFn func(ctx context.Context, fragments []string) error
}

func (p *WordProcessor) Process(ctx context.Context, fragments []string) error {
	return p.ProcessFn(ctx, fragments)
}
