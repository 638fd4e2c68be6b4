package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <encoded-track>",
	Short: "Decode an encoded track token",
	Long: `Decode an opaque track token into its metadata via the node's
/decodetrack endpoint. Tokens come from resolve output (the "track" field).`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	node, err := newNode()
	if err != nil {
		return err
	}

	track, err := node.Rest().Decode(ctx, args[0])
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(track)
	}

	if track == nil {
		fmt.Println("The node returned nothing for this token")
		return nil
	}

	fmt.Printf("Title:      %s\n", track.Info.Title)
	fmt.Printf("Author:     %s\n", track.Info.Author)
	fmt.Printf("Identifier: %s\n", track.Info.Identifier)
	fmt.Printf("Length:     %s\n", trackLength(track.Info))
	fmt.Printf("Seekable:   %t\n", track.Info.IsSeekable)
	fmt.Printf("Stream:     %t\n", track.Info.IsStream)
	fmt.Printf("URI:        %s\n", track.Info.URI)
	return nil
}
