package convert

import (
	"net/url"
	"strings"
)

// ResolveURL resolves an href/src attribute value against an optional page
// base URL. Resolution is purely string and URL-component manipulation and
// never fails: a malformed value is returned unchanged, and with no base
// every value passes through as-is.
func ResolveURL(raw string, base *url.URL) string {
	if base == nil || raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return base.Scheme + ":" + raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	resolved := base.ResolveReference(ref)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved.String()
}
