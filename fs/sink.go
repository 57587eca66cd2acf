// Package fs provides file-backed output for candidate words.
package fs

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/shensd/icecold"
)

// Ensure Sink implements icecold.Sink at compile time.
var _ icecold.Sink = (*Sink)(nil)

// Sink writes one candidate per line through a buffer. It is safe for
// concurrent use; Close must be called to flush buffered lines.
type Sink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
	count  int
	closed bool
}

// NewFileSink creates or truncates the file at path. The file is opened
// immediately so permission problems surface before any crawling starts.
func NewFileSink(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrPermission):
			return nil, icecold.Errorf(icecold.EPERMISSION, "unable to write to %s, check that you have permissions to write to the directory %s", path, filepath.Dir(path))
		case errors.Is(err, os.ErrNotExist):
			return nil, icecold.Errorf(icecold.EINVALID, "output directory %s does not exist", filepath.Dir(path))
		default:
			return nil, icecold.Errorf(icecold.EINVALID, "unable to open %s: %v", path, err)
		}
	}
	return &Sink{w: bufio.NewWriter(f), closer: f}, nil
}

// NewWriterSink returns a Sink writing to w. Closing the Sink flushes it but
// leaves w open, which suits os.Stdout.
func NewWriterSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Write appends line followed by a newline.
func (s *Sink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return icecold.Errorf(icecold.EINTERNAL, "write to closed sink")
	}
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	s.count++
	return nil
}

// Count returns the number of lines written so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close flushes buffered lines and closes the underlying file, if any.
// Calling Close more than once is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
