package slog

import (
	"log/slog"
	"sync/atomic"

	"github.com/shensd/icecold"
)

// Ensure LoggingSink implements icecold.Sink.
var _ icecold.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink, counting lines and logging the total on close.
type LoggingSink struct {
	next   icecold.Sink
	logger *slog.Logger
	lines  atomic.Int64
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next icecold.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Write delegates to the wrapped sink.
func (s *LoggingSink) Write(line string) error {
	if err := s.next.Write(line); err != nil {
		return err
	}
	s.lines.Add(1)
	return nil
}

// Close delegates to the wrapped sink and logs the number of lines written.
func (s *LoggingSink) Close() (err error) {
	defer func() {
		s.logger.Info("output closed",
			"lines", s.lines.Load(),
			"err", err,
		)
	}()
	return s.next.Close()
}
