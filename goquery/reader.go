package goquery

import "github.com/shensd/icecold"

var _ icecold.TextReader = (*Reader)(nil)

// Counter is implemented by documents that can report how many elements of a
// tag carry text without the caller reading them.
type Counter interface {
	TextCount(tag string) int
}

// Reader reads text fragments from documents in fixed-size windows.
// Elements are visited in icecold.TextTags order; elements without text are
// skipped and do not count toward offsets.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns up to size fragments starting at the offset-th text element.
//
// Tag classes that end before offset are skipped by count when doc implements
// Counter, so only the elements inside the window have their text built.
func (r *Reader) Read(doc icecold.Document, offset, size int) ([]string, error) {
	if size <= 0 {
		return nil, icecold.Errorf(icecold.EINVALID, "window size must be greater than 0, %d provided", size)
	}
	if offset < 0 {
		return nil, icecold.Errorf(icecold.EINVALID, "offset must not be negative, %d provided", offset)
	}

	counter, _ := doc.(Counter)

	var window []string
	position := 0
	for _, tag := range icecold.TextTags {
		if counter != nil {
			if n := counter.TextCount(tag); position+n <= offset {
				position += n
				continue
			}
		}

		for _, node := range doc.TextNodes(tag) {
			text := node.InnerText()
			if text == "" {
				continue
			}
			if position >= offset {
				window = append(window, text)
				if len(window) == size {
					return window, nil
				}
			}
			position++
		}
	}
	return window, nil
}
