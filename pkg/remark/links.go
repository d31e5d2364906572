package remark

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mfenderov/remark/internal/convert"
)

// Link is one anchor found in the raw document.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

var acceptedSchemes = map[string]struct{}{
	"http": {}, "https": {}, "ftp": {}, "sftp": {}, "ssh": {},
	"git": {}, "news": {}, "irc": {}, "ws": {}, "wss": {},
}

// Links re-scans the raw HTML for anchors with an accepted URL scheme,
// independent of the stored Markdown. Anchors with a missing, unparseable,
// or disallowed href are skipped; duplicates are kept in document order.
func (r *Remark) Links() []Link {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.HTML))
	if err != nil {
		return nil
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		if _, ok := acceptedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
			return
		}

		node := s.Nodes[0]
		text := convert.LinkText(node, r.URL)
		if text == "" {
			return
		}
		links = append(links, Link{
			URL:  convert.ResolveURL(href, r.URL),
			Text: text,
		})
	})
	return links
}
