package icecold

import (
	"net/url"
	"strings"
)

// ResolveLink turns an href found on parentURL into an absolute URL.
// The bool result is false when the link should be dropped: empty hrefs,
// same-page anchors (#...) and non-HTTP schemes such as mailto:.
//
// Root-relative hrefs (/path) are joined onto the parent's scheme and host.
// Every other href is returned unchanged and treated as absolute; dot-relative
// paths like ../page are not normalized.
func ResolveLink(parentURL, rawHref string) (string, bool) {
	href := strings.TrimSpace(rawHref)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	if isNonHTTPLink(href) {
		return "", false
	}
	if !strings.HasPrefix(href, "/") {
		return href, true
	}

	parent, err := url.Parse(parentURL)
	if err != nil || parent.Host == "" {
		return strings.TrimSuffix(parentURL, "/") + href, true
	}

	// Protocol-relative link: //host/path
	if strings.HasPrefix(href, "//") {
		return parent.Scheme + ":" + href, true
	}
	return parent.Scheme + "://" + parent.Host + href, true
}

// SameDomain reports whether childURL shares parentURL's top domain token,
// the first dot-separated label of the host. It is a heuristic rather than a
// public-suffix comparison: mail.example.com and shop.example.com compare as
// different, while example.com and example.org compare as equal.
func SameDomain(parentURL, childURL string) bool {
	return topDomain(parentURL) == topDomain(childURL)
}

// topDomain returns the lowercased label before the first dot of the URL's host.
func topDomain(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	label, _, _ := strings.Cut(s, ".")
	return strings.ToLower(label)
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
