package cli

import (
	"github.com/spf13/cobra"
	"github.com/tessro/reverb/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive search browser",
	Long: `Launch the interactive terminal search browser.

Type a query (or paste a URL) and press enter to resolve it against the
node. Results appear on the left; the selected track's metadata on the
right.

Keyboard shortcuts:
  Enter        Search
  Tab          Toggle search source (YouTube/SoundCloud)
  ↑/↓          Move selection
  Ctrl+D       Decode the selected track's token on the node
  Esc, Ctrl+C  Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	node, err := newNode()
	if err != nil {
		return err
	}
	return tui.Run(node)
}
