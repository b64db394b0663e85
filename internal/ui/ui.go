package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mnfaaiiq/soniq/internal/models"
	"github.com/mnfaaiiq/soniq/internal/player"
	"github.com/mnfaaiiq/soniq/internal/search"
	"github.com/mnfaaiiq/soniq/internal/services"
	"github.com/mnfaaiiq/soniq/internal/usersync"
)

// Focus tracks which pane receives keystrokes.
type Focus int

const (
	ListFocus Focus = iota
	SearchFocus
)

const volumeStep = 0.1

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	library     services.Library
	session     *player.Session
	resolver    *player.Resolver
	sync        *usersync.Controller
	placeholder string

	focus      Focus
	width      int
	height     int
	input      textinput.Model
	results    list.Model
	songs      []models.Song
	nowPlaying *player.View
	err        error

	deb       *search.Debouncer[string]
	queryChan chan string

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The sync
// controller may be nil when no identity is configured.
func NewModel(ctx context.Context, library services.Library, session *player.Session, resolver *player.Resolver, sync *usersync.Controller, placeholder string, debounce time.Duration) *Model {
	input := textinput.New()
	input.Placeholder = "What do you want to listen to?"
	input.CharLimit = 128

	queryChan := make(chan string, 8)
	deb := search.NewDebouncer(debounce, func(q string) {
		select {
		case queryChan <- q:
		default:
		}
	})

	return &Model{
		ctx:         ctx,
		library:     library,
		session:     session,
		resolver:    resolver,
		sync:        sync,
		placeholder: placeholder,
		input:       input,
		deb:         deb,
		queryChan:   queryChan,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init loads the full catalog and starts listening for stabilized queries.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchSongs(""), m.waitForQuery())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.results.Width() == 0 {
			m.results.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		if m.focus == SearchFocus {
			return m.handleSearchKeys(msg)
		}
		return m.handleListKeys(msg)

	case queryStabilizedMsg:
		return m, tea.Batch(m.fetchSongs(string(msg)), m.waitForQuery())

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.songs = msg.songs
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.results = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.results.Title = listTitle(msg.query, len(msg.songs))
		m.results.SetShowHelp(false)
		if m.width > 0 {
			m.results.SetSize(m.width-4, m.height-10)
		}
		return m, nil

	case nowPlayingMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.nowPlaying = msg.view
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// View renders the search input, the results list, and the player bar.
func (m *Model) View() string {
	header := styles.title.Render("soniq")
	if greeting := m.greeting(); greeting != "" {
		header = fmt.Sprintf("%s  %s", header, styles.help.Render(greeting))
	}

	body := fmt.Sprintf("%s\n%s\n\n%s", header, m.input.View(), m.results.View())

	if m.err != nil {
		body = fmt.Sprintf("%s\n\n%s", body, styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	helpView := m.help.ShortHelpView(m.helpKeys())
	return fmt.Sprintf("%s\n\n%s\n%s", body, m.playerBar(), helpView)
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.deb.Stop()
		return m, tea.Quit
	case "esc", "enter":
		m.focus = ListFocus
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.deb.Set(m.input.Value())
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.deb.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.focus = SearchFocus
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.results.SelectedItem().(songItem); ok {
			return m, m.play(selected.song.SongID)
		}
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.skip(m.session.Next())
	case key.Matches(msg, m.keys.prev):
		return m, m.skip(m.session.Previous())
	case key.Matches(msg, m.keys.volUp):
		m.session.SetVolume(m.session.Volume() + volumeStep)
		return m, nil
	case key.Matches(msg, m.keys.volDown):
		m.session.SetVolume(m.session.Volume() - volumeStep)
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// play loads the current result set as the queue and resolves the chosen song.
func (m *Model) play(id string) tea.Cmd {
	ids := make([]string, len(m.songs))
	for i, song := range m.songs {
		ids[i] = song.SongID
	}
	m.session.SetQueue(ids)
	m.session.SetActive(id)
	return m.resolve(id)
}

// skip resolves the song the queue advanced to, if any.
func (m *Model) skip(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	return m.resolve(id)
}

func (m *Model) resolve(id string) tea.Cmd {
	return func() tea.Msg {
		media, err := m.resolver.Resolve(m.ctx, id)
		if err != nil {
			return nowPlayingMsg{err: err}
		}
		return nowPlayingMsg{view: player.BuildView(id, media, m.placeholder)}
	}
}

func (m *Model) fetchSongs(query string) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.library.SearchSongs(m.ctx, query)
		return songsFetchedMsg{query: query, songs: songs, err: err}
	}
}

func (m *Model) waitForQuery() tea.Cmd {
	return func() tea.Msg {
		return queryStabilizedMsg(<-m.queryChan)
	}
}

func (m *Model) playerBar() string {
	if m.nowPlaying == nil {
		return styles.bar.Render("Nothing playing")
	}

	song := m.nowPlaying.Song
	now := fmt.Sprintf("%s %s %s  vol %d%%",
		styles.ok.Render("▶"),
		song.Title,
		styles.help.Render("· "+song.Author),
		int(m.session.Volume()*100),
	)
	return styles.bar.Render(now)
}

func (m *Model) greeting() string {
	if m.sync == nil {
		return ""
	}
	snapshot := m.sync.Snapshot()
	if snapshot.Profile == nil || snapshot.Profile.FullName == "" {
		return ""
	}
	return fmt.Sprintf("Welcome back, %s", snapshot.Profile.FullName)
}

func (m *Model) helpKeys() []key.Binding {
	if m.focus == SearchFocus {
		return []key.Binding{m.keys.back, m.keys.quit}
	}
	return []key.Binding{m.keys.search, m.keys.enter, m.keys.next, m.keys.prev, m.keys.quit}
}

func listTitle(query string, count int) string {
	if query == "" {
		return fmt.Sprintf("Catalog (%d songs)", count)
	}
	return fmt.Sprintf("Results for %q (%d)", query, count)
}
