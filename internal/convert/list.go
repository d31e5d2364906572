package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// renderList renders a ul/ol element. Only direct li children become items;
// lists nested anywhere under an item are rendered separately, one level
// deeper, after the item's own inline content. Ordered lists number items
// from 1, restarting for every list. Items whose own content is empty after
// trimming are dropped along with their nested lists.
func renderList(n *html.Node, ordered bool, indent int, ctx Context) string {
	pad := strings.Repeat("  ", indent)
	itemCtx := ctx
	itemCtx.skipLists = true

	var items []string
	index := 0
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		content := strings.TrimSpace(renderChildren(li, itemCtx))
		if content == "" {
			continue
		}
		index++
		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", index)
		}
		item := pad + prefix + content

		var nested []string
		for _, sub := range nestedLists(li) {
			rendered := strings.TrimRight(renderList(sub, sub.Data == "ol", indent+1, ctx), "\n")
			if rendered != "" {
				nested = append(nested, rendered)
			}
		}
		if len(nested) > 0 {
			item += "\n" + strings.Join(nested, "\n") + "\n"
		}
		items = append(items, item)
	}

	body := strings.Join(items, "\n")
	if body == "" {
		return ""
	}
	if indent == 0 {
		return "\n" + body + "\n"
	}
	return body
}

// nestedLists collects the outermost ul/ol descendants of a list item in
// document order. Lists inside those lists are handled by recursion in
// renderList, so the walk stops at the first list boundary.
func nestedLists(li *html.Node) []*html.Node {
	var lists []*html.Node
	var stack []*html.Node
	for c := li.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.ElementNode && (cur.Data == "ul" || cur.Data == "ol") {
			lists = append(lists, cur)
			continue
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return lists
}
