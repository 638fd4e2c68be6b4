package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/reverb/internal/errors"
	"github.com/tessro/reverb/internal/lavalink"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>...",
	Short: "Resolve identifiers into playable tracks",
	Long: `Resolve one or more identifiers against the node's /loadtracks endpoint.

An identifier is whatever the node's sources understand: a direct URL, or a
search expression such as "ytsearch:never gonna give you up".

Examples:
  reverb resolve https://www.youtube.com/watch?v=dQw4w9WgXcQ
  reverb resolve "ytsearch:daft punk" "scsearch:aphex twin"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	node, err := newNode()
	if err != nil {
		return err
	}

	result := errors.PartialResult[[]*lavalink.LavalinkResponse]{}
	for _, identifier := range args {
		resp, err := node.Rest().Resolve(ctx, identifier)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %w", identifier, err))
			continue
		}
		result.Data = append(result.Data, resp)
	}

	if JSONOutput() {
		if err := json.NewEncoder(os.Stdout).Encode(result.Data); err != nil {
			return err
		}
	} else {
		printResponses(result.Data)
	}

	if result.HasErrors() {
		return fmt.Errorf("%s", result.ErrorSummary())
	}
	return nil
}

func printResponses(responses []*lavalink.LavalinkResponse) {
	table := NewTable("LOAD TYPE", "TITLE", "AUTHOR", "LENGTH", "URI")
	for _, resp := range responses {
		if resp == nil {
			table.Row("(empty)", "", "", "", "")
			continue
		}
		if len(resp.Tracks) == 0 {
			table.Row(string(resp.LoadType), "", "", "", "")
			continue
		}
		for _, track := range resp.Tracks {
			table.Row(
				string(resp.LoadType),
				TruncateString(track.Info.Title, 48),
				TruncateString(track.Info.Author, 24),
				trackLength(track.Info),
				track.Info.URI,
			)
		}
	}
	table.Flush()
}

func trackLength(info lavalink.TrackInfo) string {
	if info.IsStream {
		return FormatDuration(-1)
	}
	return FormatDuration(info.Length)
}
