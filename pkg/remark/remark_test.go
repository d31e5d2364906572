package remark

import (
	"strings"
	"testing"
)

const samplePage = `<html>
<head>
<title>Sample Page</title>
<meta name="description" content="A sample description">
<meta property="og:title" content="OG Sample">
<meta property="og:image" content="https://example.com/og.png">
</head>
<body>
<nav><a href="/home">Home</a></nav>
<h1>Welcome</h1>
<p>Hello <strong>world</strong>.</p>
</body>
</html>`

func TestFromHTML_Metadata(t *testing.T) {
	r, err := FromHTML(samplePage, Options{BaseURL: "https://example.com/page"})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if r.Title != "Sample Page" {
		t.Errorf("Title = %q, want %q", r.Title, "Sample Page")
	}
	if r.Description != "A sample description" {
		t.Errorf("Description = %q, want %q", r.Description, "A sample description")
	}
	if r.OGData["og_title"] != "OG Sample" {
		t.Errorf("OGData[og_title] = %q, want %q", r.OGData["og_title"], "OG Sample")
	}
	if r.OGData["og_image"] != "https://example.com/og.png" {
		t.Errorf("OGData[og_image] = %q", r.OGData["og_image"])
	}
}

func TestFromHTML_DuplicateOGPropertiesOverwrite(t *testing.T) {
	page := `<html><head>
<meta property="og:title" content="first">
<meta property="og:title" content="second">
</head><body></body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if r.OGData["og_title"] != "second" {
		t.Errorf("OGData[og_title] = %q, want later value to win", r.OGData["og_title"])
	}
}

func TestFromHTML_MasksDefaultTags(t *testing.T) {
	r, err := FromHTML(samplePage, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if strings.Contains(r.Markdown, "Home") {
		t.Errorf("Markdown %q should not contain masked nav content", r.Markdown)
	}
	if !strings.Contains(r.Markdown, "\n# Welcome\n") {
		t.Errorf("Markdown %q should contain heading", r.Markdown)
	}
	if !strings.Contains(r.Markdown, "Hello **world**.") {
		t.Errorf("Markdown %q should contain paragraph", r.Markdown)
	}
}

func TestFromHTML_CustomMaskTags(t *testing.T) {
	page := `<html><body><nav>menu</nav><p>keep</p><figure>drop</figure></body></html>`

	r, err := FromHTML(page, Options{MaskTags: []string{"figure"}})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if strings.Contains(r.Markdown, "drop") {
		t.Errorf("Markdown %q should not contain masked figure", r.Markdown)
	}
	if !strings.Contains(r.Markdown, "menu") {
		t.Errorf("Markdown %q should keep nav when mask list overrides defaults", r.Markdown)
	}
}

func TestFromHTML_InvalidBaseURL(t *testing.T) {
	if _, err := FromHTML("<p>x</p>", Options{BaseURL: "://bad"}); err == nil {
		t.Fatal("FromHTML() should reject an unparseable base URL")
	}
}

func TestFromHTML_PlainBodyText(t *testing.T) {
	r, err := FromHTML(samplePage, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if !strings.Contains(r.Body, "Welcome") || !strings.Contains(r.Body, "Hello world") {
		t.Errorf("Body = %q, want flattened body text", r.Body)
	}
	if strings.Contains(r.Body, "\n") {
		t.Errorf("Body = %q should have whitespace collapsed", r.Body)
	}
}

func TestRemark_FrontMatter(t *testing.T) {
	r, err := FromHTML(samplePage, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	fm := r.FrontMatter()
	for _, want := range []string{
		"---\n",
		"title: \"Sample Page\"\n",
		"description: \"A sample description\"\n",
		"og_title: \"OG Sample\"\n",
	} {
		if !strings.Contains(fm, want) {
			t.Errorf("FrontMatter() = %q, want it to contain %q", fm, want)
		}
	}
	if !strings.HasSuffix(fm, "---\n") {
		t.Errorf("FrontMatter() = %q, want trailing delimiter", fm)
	}
}

func TestRemark_FrontMatterEscapesQuotes(t *testing.T) {
	page := `<html><head><title>He said "hi"</title></head><body></body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if !strings.Contains(r.FrontMatter(), `title: "He said \"hi\""`) {
		t.Errorf("FrontMatter() = %q, want escaped quotes", r.FrontMatter())
	}
}

func TestRemark_Page(t *testing.T) {
	r, err := FromHTML(samplePage, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	page := r.Page()
	if !strings.HasPrefix(page, "---\n") {
		t.Errorf("Page() should start with front matter, got %q", page[:20])
	}
	if !strings.Contains(page, "# Welcome") {
		t.Errorf("Page() = %q, want markdown body", page)
	}
}

func TestRemark_PlainText(t *testing.T) {
	page := `<html><body><p>See <a href="https://x.com">this</a> and <img src="https://x.com/i.png" alt="pic"></p></body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	plain := r.PlainText()
	if strings.Contains(plain, "](") {
		t.Errorf("PlainText() = %q, want no residual link syntax", plain)
	}
	if !strings.Contains(plain, "this") {
		t.Errorf("PlainText() = %q, want link text preserved", plain)
	}
}

func TestRemark_PlainTextIdempotent(t *testing.T) {
	page := `<html><body><p><a href="https://a.com">one</a> text <a href="https://b.com">two</a></p></body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	once := r.PlainText()
	twice := linkPattern.ReplaceAllString(once, "$1")
	if once != twice {
		t.Errorf("link stripping not idempotent: %q vs %q", once, twice)
	}
}

func TestRemark_SectionsFromDocument(t *testing.T) {
	page := `<html><body>
<h1>One</h1>
<p>intro</p>
<h1>Two</h1>
<img src="https://x.com/i.png" alt="pic">
</body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	sections := r.Sections(1)
	if len(sections) != 2 {
		t.Fatalf("Sections() returned %d sections, want 2", len(sections))
	}
	if sections[1].Media.Kind != MediaImage {
		t.Errorf("second section media = %v, want image", sections[1].Media)
	}
	if sections[1].Media.URL != "https://x.com/i.png" || sections[1].Media.Alt != "pic" {
		t.Errorf("second section media = %+v", sections[1].Media)
	}
}
