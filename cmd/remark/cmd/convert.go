package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfenderov/remark/internal/fetcher"
	"github.com/mfenderov/remark/pkg/remark"
)

var (
	withFrontMatter bool
	plainTextOnly   bool
	useDynamic      bool
	fetchTimeout    time.Duration
	blockResources  []string
	headerFlags     []string
	maskFlags       []string
)

var convertCmd = &cobra.Command{
	Use:   "convert <url>",
	Short: "Convert one page to Markdown",
	Long: `Fetch a page and print its Markdown to standard output.

Examples:
  # Plain conversion
  remark convert https://example.com/article

  # Include YAML front matter with title, description, and og:* data
  remark convert --front-matter https://example.com/article

  # Render with a headless browser and block tracking scripts
  remark convert --dynamic --block "*analytics*" https://example.com/app`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&withFrontMatter, "front-matter", false, "prepend YAML front matter")
	convertCmd.Flags().BoolVar(&plainTextOnly, "plain-text", false, "strip link markup from the output")
	convertCmd.Flags().BoolVar(&useDynamic, "dynamic", false, "render the page in a headless browser")
	convertCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "fetch timeout")
	convertCmd.Flags().StringSliceVar(&blockResources, "block", nil, "URL patterns to block during dynamic fetch")
	convertCmd.Flags().StringArrayVar(&headerFlags, "header", nil, "custom request header, key=value (repeatable)")
	convertCmd.Flags().StringArrayVar(&maskFlags, "mask", nil, "tag to remove before conversion (repeatable)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := fetchAndConvert(ctx, args[0])
	if err != nil {
		return err
	}

	out := result.Markdown
	if plainTextOnly {
		out = result.PlainText()
	}
	if withFrontMatter {
		out = result.FrontMatter() + "\n" + out
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return nil
}

// fetchAndConvert validates the URL, fetches the page with the configured
// fetcher, and converts it. Shared by the convert, links, and sections
// commands.
func fetchAndConvert(ctx context.Context, rawURL string) (*remark.Remark, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || !pageURL.IsAbs() || pageURL.Host == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}
	if fetchTimeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", fetchTimeout)
	}

	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return nil, err
	}
	for k, v := range cfg.Fetcher.Headers {
		if _, ok := headers[k]; !ok {
			headers[k] = v
		}
	}

	block := blockResources
	if block == nil {
		block = cfg.Fetcher.BlockResources
	}
	fetchConfig := fetcher.Config{
		Timeout:        fetchTimeout,
		UserAgent:      cfg.Fetcher.UserAgent,
		Headers:        headers,
		PollInterval:   cfg.Fetcher.PollInterval,
		BlockResources: block,
	}

	var htmlText string
	if useDynamic || cfg.Fetcher.Dynamic {
		htmlText, err = fetcher.NewDynamic(fetchConfig).Fetch(ctx, rawURL)
	} else {
		htmlText, err = fetcher.New(fetchConfig).Fetch(ctx, rawURL)
	}
	if err != nil {
		return nil, err
	}

	mask := cfg.Converter.MaskTags
	if len(maskFlags) > 0 {
		mask = maskFlags
	}
	return remark.FromHTML(htmlText, remark.Options{BaseURL: rawURL, MaskTags: mask})
}

func parseHeaders(flags []string) (map[string]string, error) {
	headers := make(map[string]string, len(flags))
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q, want key=value", flag)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers, nil
}
