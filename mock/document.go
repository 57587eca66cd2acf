package mock

import "github.com/shensd/icecold"

var _ icecold.Document = (*Document)(nil)

// Document is a mock implementation of icecold.Document.
type Document struct {
	URLFn       func() string
	TextNodesFn func(tag string) []icecold.Node
	LinksFn     func() []string
}

func (d *Document) URL() string {
	return d.URLFn()
}

func (d *Document) TextNodes(tag string) []icecold.Node {
	return d.TextNodesFn(tag)
}

func (d *Document) Links() []string {
	return d.LinksFn()
}

var _ icecold.Node = (*Node)(nil)

// Node is a mock implementation of icecold.Node.
type Node struct {
	InnerTextFn func() string
}

func (n *Node) InnerText() string {
	return n.InnerTextFn()
}

var _ icecold.TextReader = (*TextReader)(nil)

// TextReader is a mock implementation of icecold.TextReader.
type TextReader struct {
	ReadFn func(doc icecold.Document, offset, size int) ([]string, error)
}

func (r *TextReader) Read(doc icecold.Document, offset, size int) ([]string, error) {
	return r.ReadFn(doc, offset, size)
}
