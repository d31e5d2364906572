// Package crawler walks a site with colly and converts every fetched page
// to a Markdown file.
package crawler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/mfenderov/remark/pkg/remark"
)

// Config holds crawler configuration.
type Config struct {
	Delay     time.Duration
	MaxDepth  int
	UserAgent string
	Timeout   time.Duration
	OutputDir string
	MaskTags  []string // forwarded to the converter
}

// Result summarizes one crawl.
type Result struct {
	Pages  int      // pages converted and written
	Files  []string // written file paths, in completion order
	Errors []string // non-fatal per-page failures
}

// Crawler converts a whole site to per-page Markdown files.
type Crawler struct {
	config Config
}

// New creates a Crawler with the given configuration.
func New(config Config) *Crawler {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "remark/1.0"
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	return &Crawler{config: config}
}

// Crawl fetches startURL and every same-host page reachable within the
// configured depth, converting each to Markdown with front matter and
// writing one file per page. The context cancels queued requests.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*Result, error) {
	parsed, err := url.Parse(startURL)
	if err != nil {
		return nil, fmt.Errorf("parse start url: %w", err)
	}
	if err := os.MkdirAll(c.config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	result := &Result{}
	var mu sync.Mutex

	col := colly.NewCollector(
		colly.MaxDepth(c.config.MaxDepth),
		colly.UserAgent(c.config.UserAgent),
	)
	col.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       c.config.Delay,
		Parallelism: 2,
	})
	col.SetRequestTimeout(c.config.Timeout)

	col.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			slog.Debug("crawl cancelled", "url", r.URL.String())
			r.Abort()
		}
	})

	col.OnResponse(func(r *colly.Response) {
		if r.StatusCode >= 400 {
			slog.Debug("skipping page with error status", "url", r.Request.URL.String(), "status", r.StatusCode)
			return
		}

		pageURL := r.Request.URL.String()
		res, err := remark.FromHTML(string(r.Body), remark.Options{
			BaseURL:  pageURL,
			MaskTags: c.config.MaskTags,
		})
		if err != nil {
			mu.Lock()
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pageURL, err))
			mu.Unlock()
			return
		}

		path := filepath.Join(c.config.OutputDir, PageID(pageURL)+".md")
		if err := os.WriteFile(path, []byte(res.Page()), 0o644); err != nil {
			mu.Lock()
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", pageURL, err))
			mu.Unlock()
			return
		}

		slog.Debug("wrote page", "url", pageURL, "file", path)
		mu.Lock()
		result.Pages++
		result.Files = append(result.Files, path)
		mu.Unlock()
	})

	col.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		linkURL, err := url.Parse(link)
		if err != nil {
			return
		}
		if linkURL.Host == parsed.Host {
			e.Request.Visit(link)
		}
	})

	if err := col.Visit(startURL); err != nil {
		slog.Debug("visit error (continuing)", "url", startURL, "error", err)
		return result, nil
	}
	col.Wait()

	if ctx.Err() != nil {
		slog.Info("crawl cancelled by context", "pages", result.Pages)
		return result, ctx.Err()
	}

	slog.Debug("crawl complete", "url", startURL, "pages", result.Pages)
	return result, nil
}

// PageID returns a deterministic file stem for a page URL: the first 16 hex
// chars of its SHA-256 hash.
func PageID(pageURL string) string {
	hash := sha256.Sum256([]byte(pageURL))
	return hex.EncodeToString(hash[:])[:16]
}
