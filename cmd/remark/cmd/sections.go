package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfenderov/remark/pkg/remark"
)

var maxHeadingLevel int

var sectionsCmd = &cobra.Command{
	Use:   "sections <url>",
	Short: "Print the heading-delimited sections of a page",
	Long: `Fetch a page, convert it, and print its sections. A section starts at
every heading of level <= --max-level and runs until the next one. The first
image or full-line link in a section is reported as its media.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)

	sectionsCmd.Flags().IntVar(&maxHeadingLevel, "max-level", 0, "deepest heading level that starts a section (default from config)")
	sectionsCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "fetch timeout")
	sectionsCmd.Flags().BoolVar(&useDynamic, "dynamic", false, "render the page in a headless browser")
}

func runSections(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := fetchAndConvert(ctx, args[0])
	if err != nil {
		return err
	}

	level := maxHeadingLevel
	if level <= 0 {
		level = cfg.Converter.MaxHeadingLevel
	}

	out := cmd.OutOrStdout()
	for i, section := range result.Sections(level) {
		if i > 0 {
			fmt.Fprintln(out, "\n---")
		}
		fmt.Fprintln(out, section.Content)
		switch section.Media.Kind {
		case remark.MediaImage:
			fmt.Fprintf(out, "[media: image %s alt=%q]\n", section.Media.URL, section.Media.Alt)
		case remark.MediaVideo:
			fmt.Fprintf(out, "[media: video %s]\n", section.Media.URL)
		}
	}
	return nil
}
