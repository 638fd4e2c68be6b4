package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tessro/reverb/internal/browser"
)

var (
	searchSource string
	searchOpen   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for tracks on the node",
	Long: `Search for tracks by prefixing the query with a search source and
resolving it against the node.

Examples:
  reverb search "never gonna give you up"
  reverb search --source soundcloud "aphex twin"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "youtube", "search source (youtube, soundcloud)")
	searchCmd.Flags().BoolVar(&searchOpen, "open", false, "open the top result in the browser")
	rootCmd.AddCommand(searchCmd)
}

// searchPrefixes maps source names to the node's search identifier prefixes.
var searchPrefixes = map[string]string{
	"youtube":    "ytsearch:",
	"yt":         "ytsearch:",
	"soundcloud": "scsearch:",
	"sc":         "scsearch:",
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	prefix, ok := searchPrefixes[searchSource]
	if !ok {
		return fmt.Errorf("unknown search source %q (use youtube or soundcloud)", searchSource)
	}

	node, err := newNode()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	resp, err := node.Rest().Resolve(ctx, prefix+query)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(resp)
	}

	if resp == nil || len(resp.Tracks) == 0 {
		fmt.Println("No matches")
		return nil
	}

	if searchOpen {
		top := resp.First()
		if top.Info.URI != "" {
			if err := browser.Open(top.Info.URI); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
			}
		}
	}

	table := NewTable("#", "TITLE", "AUTHOR", "LENGTH")
	for i, track := range resp.Tracks {
		table.Row(
			fmt.Sprintf("%d", i+1),
			TruncateString(track.Info.Title, 56),
			TruncateString(track.Info.Author, 24),
			trackLength(track.Info),
		)
	}
	table.Flush()
	return nil
}
