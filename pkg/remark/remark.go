// Package remark converts HTML documents into Markdown and exposes the
// derived views a content pipeline needs: page metadata, front matter,
// heading-based sections, extracted links, and plain text.
package remark

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mfenderov/remark/internal/convert"
)

// DefaultMaskTags are the tags removed from the parsed document before
// conversion when Options.MaskTags is nil.
var DefaultMaskTags = []string{"header", "footer", "aside", "nav", "noscript"}

// Options controls a single conversion.
type Options struct {
	// BaseURL is the absolute URL of the page, used to resolve relative
	// href/src values. Optional; when empty, relative links pass through.
	BaseURL string

	// MaskTags lists tag names whose subtrees are removed before
	// conversion. nil selects DefaultMaskTags; an empty non-nil slice
	// disables masking.
	MaskTags []string
}

// Remark is the assembled result of one conversion. It is immutable after
// construction; all accessors derive their output from the stored fields.
type Remark struct {
	URL         *url.URL
	Title       string
	Description string
	OGData      map[string]string
	Body        string // plain text of the document body
	Markdown    string
	HTML        string // the raw input document
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// FromHTML parses the document, removes masked tags, extracts metadata, and
// converts the body to Markdown. Parse failure is the only error; absent
// data degrades to empty strings and maps.
func FromHTML(htmlText string, opts Options) (*Remark, error) {
	root, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var base *url.URL
	if opts.BaseURL != "" {
		base, err = url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url %q: %w", opts.BaseURL, err)
		}
	}

	mask := opts.MaskTags
	if mask == nil {
		mask = DefaultMaskTags
	}
	removeTags(root, mask)

	doc := goquery.NewDocumentFromNode(root)
	title, description, ogData := extractMeta(doc)

	r := &Remark{
		URL:         base,
		Title:       title,
		Description: description,
		OGData:      ogData,
		HTML:        htmlText,
	}

	if body := findElement(root, "body"); body != nil {
		markdown := convert.Convert(body, convert.Context{PageURL: base})
		r.Markdown = blankRuns.ReplaceAllString(markdown, "\n\n")
		r.Body = strings.Join(strings.Fields(convert.TextContent(body)), " ")
	}

	return r, nil
}

var frontMatterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// FrontMatter renders a YAML front-matter block holding the title,
// description, and every og_* value. Keys are emitted in sorted order and
// values are quoted with embedded quotes and newlines escaped.
func (r *Remark) FrontMatter() string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: \"%s\"\n", frontMatterEscaper.Replace(r.Title))
	fmt.Fprintf(&b, "description: \"%s\"\n", frontMatterEscaper.Replace(r.Description))

	keys := make([]string, 0, len(r.OGData))
	for k := range r.OGData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: \"%s\"\n", k, frontMatterEscaper.Replace(r.OGData[k]))
	}

	b.WriteString("---\n")
	return b.String()
}

// Page is the front matter followed by the Markdown body.
func (r *Remark) Page() string {
	return r.FrontMatter() + "\n" + r.Markdown
}

var linkPattern = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)

// PlainText returns the Markdown with every [text](url) reference replaced
// by its bare text.
func (r *Remark) PlainText() string {
	return linkPattern.ReplaceAllString(r.Markdown, "$1")
}

// Sections splits the Markdown into heading-delimited sections. See
// SplitSections.
func (r *Remark) Sections(maxLevel int) []Section {
	return SplitSections(r.Markdown, maxLevel)
}

// removeTags drops every element whose tag is in the mask set, subtree
// included, before conversion begins.
func removeTags(root *html.Node, tags []string) {
	if len(tags) == 0 {
		return
	}
	masked := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		masked[strings.ToLower(t)] = struct{}{}
	}

	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.ElementNode {
				if _, ok := masked[c.Data]; ok {
					n.RemoveChild(c)
					c = next
					continue
				}
			}
			stack = append(stack, c)
			c = next
		}
	}
}

func findElement(root *html.Node, tag string) *html.Node {
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return nil
}
