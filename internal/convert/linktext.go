package convert

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// LinkText picks display text for an anchor-like element. Candidates are
// tried in priority order, first non-empty after trimming wins:
// aria-label, first image descendant with a non-empty alt, the title
// attribute, the element's text content, and finally the resolved href.
func LinkText(n *html.Node, base *url.URL) string {
	if v := strings.TrimSpace(Attr(n, "aria-label")); v != "" {
		return v
	}
	if alt := firstImageAlt(n); alt != "" {
		return alt
	}
	if v := strings.TrimSpace(Attr(n, "title")); v != "" {
		return v
	}
	if v := strings.Join(strings.Fields(TextContent(n)), " "); v != "" {
		return v
	}
	return ResolveURL(strings.TrimSpace(Attr(n, "href")), base)
}

// firstImageAlt returns the trimmed alt of the first img descendant whose
// alt is non-empty, scanning in document order.
func firstImageAlt(n *html.Node) string {
	var stack []*html.Node
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.ElementNode && cur.Data == "img" {
			if alt := strings.TrimSpace(Attr(cur, "alt")); alt != "" {
				return alt
			}
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return ""
}
