package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mfenderov/remark/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "remark",
	Short: "remark: convert web pages to Markdown",
	Long: `remark fetches web pages, converts their HTML to Markdown, and derives
page metadata, heading-based sections, links, and plain text.

Commands:
  convert   Convert one page and print the Markdown
  links     Print the links found on a page
  sections  Print the heading-delimited sections of a page
  crawl     Convert a whole site to Markdown files
  serve     Start the MCP server exposing conversion tools`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/remark")
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	// REMARK_FETCHER_TIMEOUT -> fetcher.timeout
	viper.SetEnvPrefix("REMARK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("fetcher.timeout", "REMARK_FETCHER_TIMEOUT")
	viper.BindEnv("fetcher.user_agent", "REMARK_FETCHER_USER_AGENT")
	viper.BindEnv("fetcher.dynamic", "REMARK_FETCHER_DYNAMIC")
	viper.BindEnv("fetcher.poll_interval", "REMARK_FETCHER_POLL_INTERVAL")
	viper.BindEnv("converter.max_heading_level", "REMARK_CONVERTER_MAX_HEADING_LEVEL")
	viper.BindEnv("crawler.delay", "REMARK_CRAWLER_DELAY")
	viper.BindEnv("crawler.max_depth", "REMARK_CRAWLER_MAX_DEPTH")
	viper.BindEnv("crawler.output_dir", "REMARK_CRAWLER_OUTPUT_DIR")
	viper.BindEnv("mcp.name", "REMARK_MCP_NAME")
	viper.BindEnv("mcp.version", "REMARK_MCP_VERSION")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars
	}

	// Unmarshal into struct (merges config file with defaults)
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}

	// Handle special case: mask tags as comma-separated string from env
	if tags := os.Getenv("REMARK_CONVERTER_MASK_TAGS"); tags != "" {
		cfg.Converter.MaskTags = strings.Split(tags, ",")
	}
}
