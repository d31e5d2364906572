// Package mcp exposes page conversion as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mfenderov/remark/internal/fetcher"
	"github.com/mfenderov/remark/pkg/remark"
)

// Config holds MCP server configuration.
type Config struct {
	Name     string
	Version  string
	Fetcher  fetcher.Config
	Dynamic  bool
	MaskTags []string
}

// pageFetcher is satisfied by both the static and the headless fetcher.
type pageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Server wraps the MCP server with the fetch-and-convert tools.
type Server struct {
	mcpServer *server.MCPServer
	fetcher   pageFetcher
	maskTags  []string
}

// NewServer creates an MCP server with conversion tools registered.
func NewServer(config Config) *Server {
	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	var f pageFetcher = fetcher.New(config.Fetcher)
	if config.Dynamic {
		f = fetcher.NewDynamic(config.Fetcher)
	}

	s := &Server{
		mcpServer: mcpServer,
		fetcher:   f,
		maskTags:  config.MaskTags,
	}

	convertTool := mcp.NewTool("convert_page",
		mcp.WithDescription("Fetch a web page and convert it to Markdown."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL of the page to convert"),
		),
		mcp.WithBoolean("front_matter",
			mcp.Description("Prepend a YAML front-matter block with page metadata (default: false)"),
		),
		mcp.WithBoolean("plain",
			mcp.Description("Strip link markup and return plain text (default: false)"),
		),
	)
	mcpServer.AddTool(convertTool, s.convertHandler)

	linksTool := mcp.NewTool("extract_links",
		mcp.WithDescription("Fetch a web page and return its links as JSON."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL of the page to scan"),
		),
	)
	mcpServer.AddTool(linksTool, s.linksHandler)

	sectionsTool := mcp.NewTool("extract_sections",
		mcp.WithDescription("Fetch a web page, convert it, and return heading-delimited sections as JSON."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute URL of the page to section"),
		),
		mcp.WithNumber("max_level",
			mcp.Description("Deepest heading level that starts a new section (default: 1)"),
		),
	)
	mcpServer.AddTool(sectionsTool, s.sectionsHandler)

	return s
}

func (s *Server) convert(ctx context.Context, pageURL string) (*remark.Remark, error) {
	htmlText, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return remark.FromHTML(htmlText, remark.Options{BaseURL: pageURL, MaskTags: s.maskTags})
}

// convertHandler handles the convert_page tool call.
func (s *Server) convertHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required"), nil
	}

	result, err := s.convert(ctx, pageURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("convert failed: %v", err)), nil
	}

	out := result.Markdown
	if req.GetBool("plain", false) {
		out = result.PlainText()
	}
	if req.GetBool("front_matter", false) {
		out = result.FrontMatter() + "\n" + out
	}
	return mcp.NewToolResultText(out), nil
}

// linksHandler handles the extract_links tool call.
func (s *Server) linksHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required"), nil
	}

	result, err := s.convert(ctx, pageURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("convert failed: %v", err)), nil
	}

	payload, err := json.Marshal(result.Links())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal links: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// sectionsHandler handles the extract_sections tool call.
func (s *Server) sectionsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required"), nil
	}

	result, err := s.convert(ctx, pageURL)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("convert failed: %v", err)), nil
	}

	payload, err := json.Marshal(result.Sections(req.GetInt("max_level", 1)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal sections: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
