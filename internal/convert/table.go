package convert

import (
	"strings"

	"golang.org/x/net/html"
)

// renderTable renders a table element as pipe-delimited rows. All tr rows
// are flattened in document order regardless of thead/tbody grouping, and a
// separator row follows the first row. Cell content goes through the full
// Markdown converter, with newlines collapsed so rows stay on one line.
func renderTable(n *html.Node, ctx Context) string {
	rows := tableRows(n)
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, tr := range rows {
		cells := rowCells(tr)
		if len(cells) == 0 {
			b.WriteString("| |\n")
		} else {
			rendered := make([]string, len(cells))
			for j, cell := range cells {
				rendered[j] = strings.Join(strings.Fields(renderChildren(cell, ctx)), " ")
			}
			b.WriteString("| " + strings.Join(rendered, " | ") + " |\n")
		}
		if i == 0 {
			cols := len(cells)
			if cols == 0 {
				cols = 1
			}
			b.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
		}
	}
	return b.String()
}

// tableRows collects tr descendants of the table, skipping rows that belong
// to nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var stack []*html.Node
	for c := table.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.ElementNode {
			if cur.Data == "table" {
				continue
			}
			if cur.Data == "tr" {
				rows = append(rows, cur)
				continue
			}
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return rows
}

func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
			cells = append(cells, c)
		}
	}
	return cells
}
