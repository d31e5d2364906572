package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfenderov/remark/internal/crawler"
)

var (
	crawlOutputDir string
	crawlDepth     int
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Convert a whole site to Markdown files",
	Long: `Crawl a site starting at the given URL, converting every same-host page
to a Markdown file (front matter + body) in the output directory. Files are
named by a hash of the page URL.

Example:
  remark crawl https://example.com/docs --out ./pages --depth 3`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVar(&crawlOutputDir, "out", "", "output directory (default from config)")
	crawlCmd.Flags().IntVar(&crawlDepth, "depth", 0, "maximum crawl depth (default from config)")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startURL, err := url.Parse(args[0])
	if err != nil || !startURL.IsAbs() || startURL.Host == "" {
		return fmt.Errorf("invalid URL %q", args[0])
	}

	outputDir := crawlOutputDir
	if outputDir == "" {
		outputDir = cfg.Crawler.OutputDir
	}
	depth := crawlDepth
	if depth <= 0 {
		depth = cfg.Crawler.MaxDepth
	}

	c := crawler.New(crawler.Config{
		Delay:     cfg.Crawler.Delay,
		MaxDepth:  depth,
		UserAgent: cfg.Fetcher.UserAgent,
		Timeout:   cfg.Fetcher.Timeout,
		OutputDir: outputDir,
		MaskTags:  cfg.Converter.MaskTags,
	})

	result, err := c.Crawl(ctx, args[0])
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "  Warning: %s\n", e)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pages to %s\n", result.Pages, outputDir)
	return nil
}
