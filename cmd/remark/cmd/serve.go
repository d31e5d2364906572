package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfenderov/remark/internal/fetcher"
	"github.com/mfenderov/remark/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server for page conversion.

The server communicates via stdio and provides three tools:
  - convert_page: fetch a URL and return its Markdown
  - extract_links: fetch a URL and return its links as JSON
  - extract_sections: fetch a URL and return heading-delimited sections as JSON

With fetcher.dynamic enabled in the configuration, pages are rendered in a
headless browser before conversion.

Example:
  remark serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	server := mcp.NewServer(mcp.Config{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
		Fetcher: fetcher.Config{
			Timeout:        cfg.Fetcher.Timeout,
			UserAgent:      cfg.Fetcher.UserAgent,
			Headers:        cfg.Fetcher.Headers,
			PollInterval:   cfg.Fetcher.PollInterval,
			BlockResources: cfg.Fetcher.BlockResources,
		},
		Dynamic:  cfg.Fetcher.Dynamic,
		MaskTags: cfg.Converter.MaskTags,
	})

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")

	return server.ServeStdio()
}
