// Package fetcher retrieves page HTML for conversion. The plain Fetcher
// does a single HTTP GET; DynamicFetcher drives a headless browser and
// waits for the rendered document to stabilize.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Config holds fetcher configuration, shared by the static and dynamic
// fetchers.
type Config struct {
	Timeout        time.Duration
	UserAgent      string
	Headers        map[string]string
	PollInterval   time.Duration // dynamic fetch snapshot interval
	BlockResources []string      // URL patterns blocked during dynamic fetch
}

// Fetcher fetches pages over plain HTTP.
type Fetcher struct {
	config     Config
	httpClient *http.Client
}

// New creates a new Fetcher with the given configuration.
func New(config Config) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "remark/1.0"
	}
	return &Fetcher{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Fetch retrieves the page at pageURL and returns its body as text. Any
// network failure or non-2xx status is an error; the caller receives either
// a complete document or nothing.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	for k, v := range f.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}

	slog.Debug("fetched page", "url", pageURL, "size", len(body))
	return string(body), nil
}
