package remark

import (
	"testing"
)

func TestRemark_Links_FiltersSchemes(t *testing.T) {
	page := `<html><body>
<a href="javascript:void(0)">x</a>
<a href="https://ok.com">y</a>
</body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	links := r.Links()
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].URL != "https://ok.com" || links[0].Text != "y" {
		t.Errorf("link = %+v, want {https://ok.com y}", links[0])
	}
}

func TestRemark_Links_AcceptedSchemes(t *testing.T) {
	page := `<html><body>
<a href="ftp://files.example.com/a">ftp</a>
<a href="wss://sock.example.com">wss</a>
<a href="GIT://repo.example.com/r.git">git</a>
<a href="mailto:a@b.com">mail</a>
<a href="/relative/only">rel</a>
<a href="">empty</a>
</body></html>`

	r, err := FromHTML(page, Options{BaseURL: "https://example.com/"})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	links := r.Links()
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3: %+v", len(links), links)
	}
	wantTexts := []string{"ftp", "wss", "git"}
	for i, want := range wantTexts {
		if links[i].Text != want {
			t.Errorf("links[%d].Text = %q, want %q", i, links[i].Text, want)
		}
	}
}

func TestRemark_Links_DuplicatesKeptInOrder(t *testing.T) {
	page := `<html><body>
<a href="https://ok.com">same</a>
<a href="https://ok.com">same</a>
</body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	if links := r.Links(); len(links) != 2 {
		t.Errorf("got %d links, want duplicates preserved", len(links))
	}
}

func TestRemark_Links_UsesLinkTextPriority(t *testing.T) {
	page := `<html><body><a href="https://ok.com" aria-label="Label">ignored</a></body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	links := r.Links()
	if len(links) != 1 || links[0].Text != "Label" {
		t.Errorf("links = %+v, want aria-label text", links)
	}
}

func TestRemark_Links_ScansRawHTML(t *testing.T) {
	// Link extraction re-scans the raw HTML, so masked tags still count.
	page := `<html><body><nav><a href="https://nav.example.com">nav link</a></nav></body></html>`

	r, err := FromHTML(page, Options{})
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	links := r.Links()
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1 (raw HTML scan includes masked tags)", len(links))
	}
	if links[0].Text != "nav link" {
		t.Errorf("link text = %q", links[0].Text)
	}
}
