package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/reverb/internal/lavalink"
	"github.com/tessro/reverb/internal/tui/styles"
)

// Results displays the tracks from a resolve call.
type Results struct {
	offset int
}

// NewResults creates a new Results component
func NewResults() *Results {
	return &Results{}
}

// Render renders the results panel.
func (r *Results) Render(tracks []lavalink.Track, cursor, width, height int, focused bool) string {
	title := styles.PanelTitle("Results", focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("No results. Type a query and press enter.")
	} else {
		content = r.renderTracks(tracks, cursor, width-4, height-4)
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

func (r *Results) renderTracks(tracks []lavalink.Track, cursor, width, maxLines int) string {
	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the cursor inside the visible window
	if cursor < r.offset {
		r.offset = cursor
	}
	if cursor >= r.offset+visibleCount {
		r.offset = cursor - visibleCount + 1
	}

	start := r.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	var lines []string
	for i := start; i < end; i++ {
		track := tracks[i]
		line := fmt.Sprintf("%2d. %s — %s", i+1,
			truncate(track.Info.Title, width/2),
			truncate(track.Info.Author, width/4))

		if i == cursor {
			lines = append(lines, styles.Highlight.Render("> "+line))
		} else {
			lines = append(lines, styles.Muted.Render("  "+line))
		}
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("  … %d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
