package config

import "time"

// Config holds all application configuration.
type Config struct {
	Fetcher   Fetcher   `mapstructure:"fetcher"`
	Converter Converter `mapstructure:"converter"`
	Crawler   Crawler   `mapstructure:"crawler"`
	MCP       MCP       `mapstructure:"mcp"`
}

// Fetcher holds page retrieval configuration.
type Fetcher struct {
	Timeout        time.Duration     `mapstructure:"timeout"`
	UserAgent      string            `mapstructure:"user_agent"`
	Headers        map[string]string `mapstructure:"headers"`
	Dynamic        bool              `mapstructure:"dynamic"`
	PollInterval   time.Duration     `mapstructure:"poll_interval"`
	BlockResources []string          `mapstructure:"block_resources"`
}

// Converter holds HTML-to-Markdown conversion configuration.
type Converter struct {
	MaskTags        []string `mapstructure:"mask_tags"`
	MaxHeadingLevel int      `mapstructure:"max_heading_level"`
}

// Crawler holds site crawl configuration.
type Crawler struct {
	Delay     time.Duration `mapstructure:"delay"`
	MaxDepth  int           `mapstructure:"max_depth"`
	OutputDir string        `mapstructure:"output_dir"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Fetcher: Fetcher{
			Timeout:      30 * time.Second,
			UserAgent:    "remark/1.0",
			PollInterval: 500 * time.Millisecond,
		},
		Converter: Converter{
			MaskTags:        nil, // nil keeps the converter's default mask set
			MaxHeadingLevel: 1,
		},
		Crawler: Crawler{
			Delay:     1 * time.Second,
			MaxDepth:  3,
			OutputDir: "pages",
		},
		MCP: MCP{
			Name:    "remark",
			Version: "1.0.0",
		},
	}
}
