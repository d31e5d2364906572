// Package convert implements the HTML-node-to-Markdown rendering engine.
//
// The converter classifies every element into one of a small closed set of
// categories (semantic container, leaf, formatting, transparent) and renders
// each category with a dedicated rule. Transparent and semantic containers
// are traversed with an explicit worklist so that pathologically deep
// wrapper nesting cannot overflow the call stack; formatting tags keep
// ordinary recursion since HTML's content model keeps them shallow.
package convert

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Context carries per-subtree conversion state. It is passed by value, so
// sibling subtrees never share mutable state.
type Context struct {
	// Quote is the current blockquote nesting depth. A blockquote renders
	// its children at depth zero and prefixes the result with Quote+1
	// repetitions of "> ".
	Quote int

	// PageURL is the resolution base for href/src attributes. May be nil,
	// in which case relative URLs pass through unresolved.
	PageURL *url.URL

	// skipLists suppresses ul/ol rendering while a list item's own inline
	// content is being extracted. Nested lists are rendered separately by
	// the list renderer.
	skipLists bool
}

type class int

const (
	classTransparent class = iota
	classSemantic
	classLeaf
	classFormatting
	classButton
	classIgnored
)

func classify(n *html.Node) class {
	switch n.Data {
	case "main", "section", "nav", "article", "aside", "header", "footer",
		"figure", "details", "summary":
		return classSemantic
	case "a", "img", "video", "hr", "dialog":
		return classLeaf
	case "h1", "h2", "h3", "h4", "h5", "h6", "p", "blockquote", "pre",
		"code", "strong", "b", "em", "i", "ul", "ol", "table":
		return classFormatting
	case "button":
		return classButton
	case "script", "style", "template":
		// Never transparent: walking into these would leak code and CSS
		// into the text output.
		return classIgnored
	default:
		return classTransparent
	}
}

var whitespaceRun = regexp.MustCompile(`[ \t\r\n\f]+`)

// Convert renders a parsed HTML node and its entire subtree as Markdown.
func Convert(n *html.Node, ctx Context) string {
	return renderNodes([]*html.Node{n}, ctx)
}

// frame is a worklist entry. exit frames mark the close of a semantic
// container whose buffered content must be wrapped in marker comments.
type frame struct {
	node *html.Node
	exit bool
}

// renderNodes walks the given nodes (and their subtrees) in document order
// using an explicit stack, emitting Markdown fragments. Only formatting
// elements recurse; wrapper nesting of any depth stays on the heap.
func renderNodes(nodes []*html.Node, ctx Context) string {
	stack := make([]frame, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: nodes[i]})
	}

	// One builder per open semantic container, plus the root output.
	outs := []*strings.Builder{{}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			inner := outs[len(outs)-1].String()
			outs = outs[:len(outs)-1]
			if trimmed := strings.TrimSpace(inner); trimmed != "" {
				tag := f.node.Data
				fmt.Fprintf(outs[len(outs)-1], "\n<!--<%s>-->\n%s\n<!--</%s>-->\n", tag, trimmed, tag)
			}
			continue
		}

		n := f.node
		cur := outs[len(outs)-1]

		switch n.Type {
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				cur.WriteString(whitespaceRun.ReplaceAllString(n.Data, " "))
			}
		case html.ElementNode:
			switch classify(n) {
			case classTransparent:
				stack = pushChildren(stack, n)
			case classSemantic:
				stack = append(stack, frame{node: n, exit: true})
				outs = append(outs, &strings.Builder{})
				stack = pushChildren(stack, n)
			case classLeaf:
				cur.WriteString(renderLeaf(n, ctx))
			case classFormatting:
				cur.WriteString(renderFormatting(n, ctx))
			case classButton:
				// Buttons are chrome, not content, unless they wrap a link.
				if hasDescendant(n, "a") {
					stack = pushChildren(stack, n)
				}
			case classIgnored:
			}
		}
	}

	return outs[0].String()
}

func pushChildren(stack []frame, n *html.Node) []frame {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: children[i]})
	}
	return stack
}

func renderChildren(n *html.Node, ctx Context) string {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return renderNodes(children, ctx)
}

func renderLeaf(n *html.Node, ctx Context) string {
	switch n.Data {
	case "a":
		return "[" + LinkText(n, ctx.PageURL) + "](" + ResolveURL(Attr(n, "href"), ctx.PageURL) + ")"
	case "img":
		return "![" + Attr(n, "alt") + "](" + ResolveURL(Attr(n, "src"), ctx.PageURL) + ")"
	case "video":
		title := strings.TrimSpace(Attr(n, "title"))
		if title == "" {
			title = "video"
		}
		return "[" + title + "](" + ResolveURL(Attr(n, "src"), ctx.PageURL) + ")"
	case "hr":
		return "\n---\n"
	case "dialog":
		return ""
	}
	return ""
}

func renderFormatting(n *html.Node, ctx Context) string {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		content := strings.TrimSpace(renderChildren(n, ctx))
		return "\n" + strings.Repeat("#", level) + " " + content + "\n"
	case "p":
		content := strings.TrimSpace(renderChildren(n, ctx))
		if content == "" {
			return ""
		}
		return "\n" + content + "\n"
	case "strong", "b":
		content := strings.TrimSpace(renderChildren(n, ctx))
		if content == "" {
			return ""
		}
		return "**" + content + "**"
	case "em", "i":
		content := strings.TrimSpace(renderChildren(n, ctx))
		if content == "" {
			return ""
		}
		return "*" + content + "*"
	case "code":
		content := strings.TrimSpace(renderChildren(n, ctx))
		if content == "" {
			return ""
		}
		return "`" + content + "`"
	case "pre":
		// Raw text content, not re-rendered as Markdown.
		return "\n```\n" + strings.Trim(TextContent(n), "\n") + "\n```\n"
	case "blockquote":
		inner := Context{PageURL: ctx.PageURL, skipLists: ctx.skipLists}
		content := strings.TrimSpace(renderChildren(n, inner))
		if content == "" {
			return ""
		}
		prefix := strings.Repeat("> ", ctx.Quote+1)
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			lines[i] = prefix + line
		}
		return "\n" + strings.Join(lines, "\n") + "\n"
	case "ul":
		if ctx.skipLists {
			return ""
		}
		return renderList(n, false, 0, ctx)
	case "ol":
		if ctx.skipLists {
			return ""
		}
		return renderList(n, true, 0, ctx)
	case "table":
		return renderTable(n, ctx)
	}
	return ""
}

// Attr returns the value of the named attribute, or "" if absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// TextContent concatenates every text node under n in document order.
func TextContent(n *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			continue
		}
		var children []*html.Node
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return b.String()
}

func hasDescendant(n *html.Node, tag string) bool {
	stack := []*html.Node{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.ElementNode && cur.Data == tag {
			return true
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			stack = append(stack, c)
		}
	}
	return false
}
