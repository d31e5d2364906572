package remark

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractMeta pulls the title, meta description, and og:* properties from
// the parsed document. Missing values come back empty; duplicate og
// properties overwrite earlier ones.
func extractMeta(doc *goquery.Document) (title, description string, ogData map[string]string) {
	title = strings.TrimSpace(doc.Find("title").First().Text())

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		description = strings.TrimSpace(content)
	}

	ogData = make(map[string]string)
	doc.Find(`meta[property^="og:"]`).Each(func(_ int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		content, _ := s.Attr("content")
		key := "og_" + strings.TrimPrefix(property, "og:")
		ogData[key] = content
	})

	return title, description, ogData
}
