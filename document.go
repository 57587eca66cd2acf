package icecold

// TextTags lists the elements whose text is harvested, in reading priority
// order: every paragraph is read before any heading, every h1 before any h2,
// and so on.
var TextTags = []string{
	"p", "h1", "h2", "h3",
	"h4", "h5", "h6", "a",
	"li", "th", "td",
}

// Node is a single element of a parsed document.
type Node interface {
	// InnerText returns the element's text strings, each trimmed and joined
	// by a single space. Returns an empty string for elements without text.
	InnerText() string
}

// Document is a parsed HTML page.
type Document interface {
	// URL returns the address the document was fetched from.
	URL() string

	// TextNodes returns all elements with the given tag name in document order.
	TextNodes(tag string) []Node

	// Links returns the raw href attribute of every anchor in document order.
	// Anchors without an href are omitted.
	Links() []string
}

// TextReader reads a document's text-bearing elements in windows.
type TextReader interface {
	// Read returns up to size text fragments starting at offset.
	// Calling Read with offsets advanced by the length of each previous
	// window enumerates every qualifying element exactly once, in TextTags
	// order. An empty result means the document is exhausted.
	Read(doc Document, offset, size int) ([]string, error)
}
