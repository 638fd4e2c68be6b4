package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/reverb/internal/lavalink"
	"github.com/tessro/reverb/internal/tui/components"
	"github.com/tessro/reverb/internal/tui/styles"
)

// Source represents which search source queries are prefixed with.
type Source int

const (
	SourceYouTube Source = iota
	SourceSoundCloud
)

func (s Source) prefix() string {
	if s == SourceSoundCloud {
		return "scsearch:"
	}
	return "ytsearch:"
}

func (s Source) String() string {
	if s == SourceSoundCloud {
		return "SoundCloud"
	}
	return "YouTube"
}

// Run launches the search browser against the given node.
func Run(node *lavalink.Node) error {
	p := tea.NewProgram(NewModel(node), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Model is the main TUI model
type Model struct {
	node   *lavalink.Node
	width  int
	height int

	// State
	tracks   []lavalink.Track
	loadType lavalink.LoadType
	cursor   int
	decoded  *lavalink.Track

	// Components
	searchInput textinput.Model
	resultsView *components.Results
	detailView  *components.Detail

	source    Source
	searching bool
	lastError error

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(node *lavalink.Node) Model {
	ti := textinput.New()
	ti.Placeholder = "Search tracks, or paste a URL..."
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	return Model{
		node:        node,
		searchInput: ti,
		resultsView: components.NewResults(),
		detailView:  components.NewDetail(),
	}
}

// Messages
type resultsMsg struct {
	resp *lavalink.LavalinkResponse
	err  error
}
type decodedMsg struct {
	track *lavalink.Track
	err   error
}

// Commands
func (m Model) doResolve(identifier string) tea.Cmd {
	node := m.node
	return func() tea.Msg {
		resp, err := node.Rest().Resolve(context.Background(), identifier)
		return resultsMsg{resp: resp, err: err}
	}
}

func (m Model) doDecode(token string) tea.Cmd {
	node := m.node
	return func() tea.Msg {
		track, err := node.Rest().Decode(context.Background(), token)
		return decodedMsg{track: track, err: err}
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			query := m.searchInput.Value()
			if query == "" || m.searching {
				return m, nil
			}
			m.searching = true
			m.lastError = nil
			m.decoded = nil
			return m, m.doResolve(m.identifierFor(query))

		case "tab":
			if m.source == SourceYouTube {
				m.source = SourceSoundCloud
			} else {
				m.source = SourceYouTube
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.tracks)-1 {
				m.cursor++
				m.decoded = nil
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.decoded = nil
			}
			return m, nil

		case "ctrl+d":
			if track := m.selected(); track != nil {
				return m, m.doDecode(track.Track)
			}
			return m, nil
		}

	case resultsMsg:
		m.searching = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.cursor = 0
		if msg.resp == nil {
			m.tracks = nil
			m.loadType = lavalink.LoadTypeNoMatches
			return m, nil
		}
		m.tracks = msg.resp.Tracks
		m.loadType = msg.resp.LoadType
		return m, nil

	case decodedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.decoded = msg.track
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// identifierFor turns the typed query into a node identifier. URLs pass
// through untouched; anything else becomes a search expression.
func (m Model) identifierFor(query string) string {
	if len(query) > 8 && (query[:7] == "http://" || query[:8] == "https://") {
		return query
	}
	return m.source.prefix() + query
}

func (m Model) selected() *lavalink.Track {
	if m.cursor < 0 || m.cursor >= len(m.tracks) {
		return nil
	}
	return &m.tracks[m.cursor]
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	header := styles.Title.Render("reverb") + " " +
		styles.Subtitle.Render("· node "+m.node.Name()) + "  " +
		styles.Label.Render("source: "+m.source.String())

	searchLine := m.searchInput.View()
	if m.searching {
		searchLine += "  " + styles.Dim.Render("searching…")
	} else if m.loadType != "" {
		searchLine += "  " + styles.Dim.Render(string(m.loadType))
	}

	panelHeight := m.height - 7
	if panelHeight < 5 {
		panelHeight = 5
	}
	resultsWidth := m.width / 2
	detailWidth := m.width - resultsWidth - 4

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.resultsView.Render(m.tracks, m.cursor, resultsWidth, panelHeight, true),
		m.detailView.Render(m.selected(), m.decoded, detailWidth, panelHeight, false),
	)

	footer := styles.Dim.Render("enter search · tab source · ctrl+d decode · esc quit")
	if m.lastError != nil {
		footer = styles.ErrorText.Render(fmt.Sprintf("error: %v", m.lastError))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		searchLine,
		"",
		body,
		footer,
	)
}
