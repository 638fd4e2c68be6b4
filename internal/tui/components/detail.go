package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/reverb/internal/lavalink"
	"github.com/tessro/reverb/internal/tui/styles"
)

// Detail displays a single track's metadata.
type Detail struct{}

// NewDetail creates a new Detail component
func NewDetail() *Detail {
	return &Detail{}
}

// Render renders the detail panel for the given track. decoded is the
// node's own expansion of the track token, when one has been requested.
func (d *Detail) Render(track *lavalink.Track, decoded *lavalink.Track, width, height int, focused bool) string {
	title := styles.PanelTitle("Track", focused)

	var content string
	if track == nil {
		content = styles.Muted.Render("Select a result to inspect it.")
	} else {
		content = d.renderTrack(track, decoded, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (d *Detail) renderTrack(track *lavalink.Track, decoded *lavalink.Track, width int) string {
	info := track.Info

	length := formatLength(info)
	lines := []string{
		styles.Title.Render(truncate(info.Title, width)),
		styles.Subtitle.Render(truncate(info.Author, width)),
		"",
		field("Identifier", info.Identifier),
		field("Length", length),
		field("Seekable", fmt.Sprintf("%t", info.IsSeekable)),
		field("URI", truncate(info.URI, width-12)),
		"",
		field("Token", truncate(track.Track, width-12)),
	}

	if info.IsStream {
		lines = append(lines, "", styles.Stream.Render("● live stream"))
	}

	if decoded != nil {
		lines = append(lines,
			"",
			styles.Label.Render("Decoded by node:"),
			field("Title", truncate(decoded.Info.Title, width-12)),
			field("Author", truncate(decoded.Info.Author, width-12)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string) string {
	return styles.Label.Render(fmt.Sprintf("%-10s", label)) + " " + styles.Muted.Render(value)
}

func formatLength(info lavalink.TrackInfo) string {
	if info.IsStream {
		return "live"
	}
	d := info.Duration()
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
