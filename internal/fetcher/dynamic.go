package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// stableSnapshots is how many consecutive identical HTML snapshots count as
// stable content.
const stableSnapshots = 3

// DynamicFetcher renders pages in a headless browser so script-generated
// content is present in the returned HTML. Each Fetch owns its browser
// context and tears it down before returning.
type DynamicFetcher struct {
	config Config
}

// NewDynamic creates a DynamicFetcher with the given configuration.
func NewDynamic(config Config) *DynamicFetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.PollInterval == 0 {
		config.PollInterval = 500 * time.Millisecond
	}
	return &DynamicFetcher{config: config}
}

// Fetch navigates to pageURL and polls the rendered document until three
// consecutive snapshots are identical. If the deadline passes first, the
// last snapshot is returned as a best effort; with no snapshot at all the
// timeout is an error.
func (f *DynamicFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if f.config.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(f.config.UserAgent))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	actions := []chromedp.Action{}
	if len(f.config.BlockResources) > 0 {
		actions = append(actions,
			network.Enable(),
			network.SetBlockedURLs(f.config.BlockResources),
		)
	}
	actions = append(actions, chromedp.Navigate(pageURL))

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return "", fmt.Errorf("navigate %s: %w", pageURL, err)
	}

	var last string
	stable := 0
	ticker := time.NewTicker(f.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-browserCtx.Done():
			if last != "" {
				slog.Warn("content did not stabilize before timeout", "url", pageURL)
				return last, nil
			}
			return "", fmt.Errorf("dynamic fetch %s: %w", pageURL, browserCtx.Err())
		case <-ticker.C:
			var snapshot string
			if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &snapshot, chromedp.ByQuery)); err != nil {
				if last != "" {
					return last, nil
				}
				return "", fmt.Errorf("snapshot %s: %w", pageURL, err)
			}
			if snapshot == last {
				stable++
			} else {
				stable = 1
				last = snapshot
			}
			if stable >= stableSnapshots {
				slog.Debug("content stabilized", "url", pageURL, "size", len(last))
				return last, nil
			}
		}
	}
}
