package convert

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil && body == nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	if body == nil {
		t.Fatalf("no body element in %q", fragment)
	}
	return body
}

func convertFragment(t *testing.T, fragment, base string) string {
	t.Helper()
	ctx := Context{}
	if base != "" {
		u, err := url.Parse(base)
		if err != nil {
			t.Fatalf("url.Parse(%q) error = %v", base, err)
		}
		ctx.PageURL = u
	}
	return Convert(parseBody(t, fragment), ctx)
}

func TestConvert_HeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		fragment := fmt.Sprintf("<h%d>Text</h%d>", level, level)
		want := "\n" + strings.Repeat("#", level) + " Text\n"
		if got := convertFragment(t, fragment, ""); got != want {
			t.Errorf("level %d = %q, want %q", level, got, want)
		}
	}
}

func TestConvert_Fragments(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "paragraph with strong",
			html: `<p>Hello <strong>world</strong>.</p>`,
			want: "\nHello **world**.\n",
		},
		{
			name: "strong and em nest",
			html: `<p><strong><em>text</em></strong></p>`,
			want: "\n***text***\n",
		},
		{
			name: "empty paragraph emits nothing",
			html: `<p>   </p>`,
			want: "",
		},
		{
			name: "inline code",
			html: `<p>Use <code>go run</code> here.</p>`,
			want: "\nUse `go run` here.\n",
		},
		{
			name: "pre is fenced raw text",
			html: "<pre>func main() {}\n</pre>",
			want: "\n```\nfunc main() {}\n```\n",
		},
		{
			name: "horizontal rule",
			html: `<hr>`,
			want: "\n---\n",
		},
		{
			name: "image",
			html: `<img src="https://x.com/a.png" alt="pic">`,
			want: "![pic](https://x.com/a.png)",
		},
		{
			name: "video falls back to generic title",
			html: `<video src="https://x.com/v.mp4"></video>`,
			want: "[video](https://x.com/v.mp4)",
		},
		{
			name: "video uses title attribute",
			html: `<video src="https://x.com/v.mp4" title="Talk"></video>`,
			want: "[Talk](https://x.com/v.mp4)",
		},
		{
			name: "dialog emits nothing",
			html: `<dialog>ignore me</dialog>`,
			want: "",
		},
		{
			name: "script and style skipped",
			html: `<script>var x = 1;</script><style>p{}</style><p>kept</p>`,
			want: "\nkept\n",
		},
		{
			name: "button without link skipped",
			html: `<button>Click</button>`,
			want: "",
		},
		{
			name: "button wrapping link is transparent",
			html: `<button><a href="https://x.com">go</a></button>`,
			want: "[go](https://x.com)",
		},
		{
			name: "unknown tags are transparent",
			html: `<div><span>plain</span></div>`,
			want: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertFragment(t, tt.html, ""); got != tt.want {
				t.Errorf("Convert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvert_HeadingAndParagraph(t *testing.T) {
	got := convertFragment(t, `<h1>Title</h1><p>Hello <strong>world</strong>.</p>`, "")

	if !strings.Contains(got, "\n# Title\n") {
		t.Errorf("output %q should contain heading", got)
	}
	if !strings.Contains(got, "\nHello **world**.\n") {
		t.Errorf("output %q should contain paragraph", got)
	}
}

func TestConvert_AnchorAriaLabel(t *testing.T) {
	got := convertFragment(t, `<a href="https://x.com" aria-label="X">link</a>`, "")

	want := "[X](https://x.com)"
	if got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestConvert_AnchorResolvesRelativeHref(t *testing.T) {
	got := convertFragment(t, `<a href="/docs">Docs</a>`, "https://example.com/page")

	want := "[Docs](https://example.com/docs)"
	if got != want {
		t.Errorf("Convert() = %q, want %q", got, want)
	}
}

func TestConvert_BlockquoteNesting(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		fragment := strings.Repeat("<blockquote>", depth) + "<p>deep</p>" + strings.Repeat("</blockquote>", depth)
		got := convertFragment(t, fragment, "")

		want := strings.Repeat("> ", depth) + "deep"
		if !strings.Contains(got, want) {
			t.Errorf("depth %d: output %q should contain %q", depth, got, want)
		}
		if strings.Contains(got, strings.Repeat("> ", depth+1)) {
			t.Errorf("depth %d: output %q has too many quote prefixes", depth, got)
		}
	}
}

func TestConvert_SemanticContainerMarkers(t *testing.T) {
	got := convertFragment(t, `<article><p>Hi</p></article>`, "")

	if !strings.Contains(got, "<!--<article>-->") || !strings.Contains(got, "<!--</article>-->") {
		t.Errorf("output %q should wrap article content in marker comments", got)
	}
	if !strings.Contains(got, "Hi") {
		t.Errorf("output %q should contain article content", got)
	}
}

func TestConvert_EmptySemanticContainerEmitsNothing(t *testing.T) {
	got := convertFragment(t, `<section>   </section>`, "")

	if got != "" {
		t.Errorf("Convert() = %q, want empty", got)
	}
}

func TestConvert_DeepWrapperNesting(t *testing.T) {
	// Built by hand because the parser caps its own open-element stack well
	// below this depth. The converter must handle arbitrarily deep wrappers.
	const depth = 3000
	root := &html.Node{Type: html.ElementNode, Data: "div"}
	cur := root
	for i := 1; i < depth; i++ {
		child := &html.Node{Type: html.ElementNode, Data: "div"}
		cur.AppendChild(child)
		cur = child
	}
	cur.AppendChild(&html.Node{Type: html.TextNode, Data: "x"})

	if got := Convert(root, Context{}); got != "x" {
		t.Errorf("Convert() = %q, want %q", got, "x")
	}
}
