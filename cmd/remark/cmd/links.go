package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links <url>",
	Short: "Print the links found on a page",
	Long: `Fetch a page and print its links, one per line, as URL and display
text separated by a tab. Only anchors with an accepted scheme (http, https,
ftp, sftp, ssh, git, news, irc, ws, wss) are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)

	linksCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "fetch timeout")
	linksCmd.Flags().BoolVar(&useDynamic, "dynamic", false, "render the page in a headless browser")
}

func runLinks(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := fetchAndConvert(ctx, args[0])
	if err != nil {
		return err
	}

	for _, link := range result.Links() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", link.URL, link.Text)
	}
	return nil
}
