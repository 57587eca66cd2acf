// Package goquery provides HTML parsing and windowed text reading
// backed by github.com/PuerkitoBio/goquery.
package goquery

import (
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/shensd/icecold"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ icecold.Document = (*Document)(nil)
	_ icecold.Node     = (*Node)(nil)
	_ Counter          = (*Document)(nil)
)

// Document is a parsed HTML page.
type Document struct {
	url string
	doc *goquery.Document

	mu     sync.Mutex
	counts map[string]int
}

// Parse parses HTML from r. Malformed markup is repaired the way browsers do;
// only read errors are returned.
func Parse(url string, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, icecold.Errorf(icecold.EINVALID, "failed to parse HTML from %s: %v", url, err)
	}
	return &Document{
		url:    url,
		doc:    doc,
		counts: make(map[string]int),
	}, nil
}

// ParseString parses an HTML string.
func ParseString(url, content string) (*Document, error) {
	return Parse(url, strings.NewReader(content))
}

// URL returns the address the document was fetched from.
func (d *Document) URL() string {
	return d.url
}

// TextNodes returns all elements with the given tag in document order.
func (d *Document) TextNodes(tag string) []icecold.Node {
	sel := d.doc.Find(tag)
	nodes := make([]icecold.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// TextCount returns the number of elements with the given tag that have
// non-empty inner text. Counts are computed once per tag and cached for the
// life of the document.
func (d *Document) TextCount(tag string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.counts[tag]; ok {
		return n
	}
	n := 0
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if hasText(s.Nodes[0]) {
			n++
		}
	})
	d.counts[tag] = n
	return n
}

// Links returns the raw href of every anchor in document order.
func (d *Document) Links() []string {
	var links []string
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links
}

// Node is a single element of a Document.
type Node struct {
	sel *goquery.Selection
}

// InnerText returns the element's text strings, each trimmed of surrounding
// whitespace, joined by a single space. Script and style contents are skipped.
func (n *Node) InnerText() string {
	var parts []string
	for _, node := range n.sel.Nodes {
		walkText(node, func(s string) {
			parts = append(parts, s)
		})
	}
	return strings.Join(parts, " ")
}

// walkText calls fn with every non-blank, trimmed text node below node.
func walkText(node *html.Node, fn func(string)) {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if s := strings.TrimSpace(c.Data); s != "" {
				fn(s)
			}
		case html.ElementNode:
			if skipElement(c.Data) {
				continue
			}
			walkText(c, fn)
		}
	}
}

// hasText reports whether node contains any non-blank text.
func hasText(node *html.Node) bool {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		case html.ElementNode:
			if !skipElement(c.Data) && hasText(c) {
				return true
			}
		}
	}
	return false
}

func skipElement(tag string) bool {
	return tag == "script" || tag == "style" || tag == "noscript" || tag == "template"
}
