package storylist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fragmede/hnpeek/internal/api"
	"github.com/fragmede/hnpeek/internal/preview"
	"github.com/fragmede/hnpeek/internal/render"
	"github.com/fragmede/hnpeek/internal/ui/keymap"
	"github.com/fragmede/hnpeek/internal/ui/messages"
)

// headerLines is the title line plus one blank line above the rows.
const headerLines = 2

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#828282"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

// Remote is what the list needs from the API: the story list for itself and
// full items for the resolvers of its rows.
type Remote interface {
	preview.Fetcher
	ListTop(ctx context.Context, feed api.Feed, n int) ([]*api.StoryItem, error)
}

// Model is the story list view.
type Model struct {
	ctx    context.Context
	feed   api.Feed
	count  int
	remote Remote
	store  *preview.Store
	loc    *time.Location
	log    zerolog.Logger

	settled bool
	err     error
	rows    []*Row
	cursor  int
	hovered int
	offset  int
	width   int
	height  int
}

// New creates a story list for feed showing count stories. Every row's
// resolver writes to store.
func New(ctx context.Context, feed api.Feed, count int, remote Remote, store *preview.Store, loc *time.Location, log zerolog.Logger) Model {
	return Model{
		ctx:     ctx,
		feed:    feed,
		count:   count,
		remote:  remote,
		store:   store,
		loc:     loc,
		log:     log,
		hovered: -1,
	}
}

// Init fetches the story list. It is the only list fetch of the model.
func (m Model) Init() tea.Cmd {
	ctx, feed, count, remote := m.ctx, m.feed, m.count, m.remote
	return func() tea.Msg {
		items, err := remote.ListTop(ctx, feed, count)
		return messages.StoriesLoadedMsg{Feed: feed, Items: items, Err: err}
	}
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.scrollToCursor()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.StoriesLoadedMsg:
		if msg.Feed != m.feed || m.settled {
			return m, nil
		}
		m.settled = true
		if msg.Err != nil {
			m.err = msg.Err
			m.log.Error().Err(msg.Err).Str("feed", string(m.feed)).Msg("story list fetch failed")
			return m, nil
		}
		m.rows = make([]*Row, 0, len(msg.Items))
		for _, story := range msg.Items {
			if story == nil {
				continue
			}
			m.rows = append(m.rows, &Row{
				Story:    story,
				Resolver: preview.NewResolver(story.ID, m.store, m.remote, m.log),
				Index:    len(m.rows),
			})
		}
		m.cursor, m.offset = 0, 0
		return m, nil

	case tea.KeyMsg:
		if len(m.rows) == 0 {
			return m, nil
		}
		switch {
		case key.Matches(msg, keymap.Keys.Down):
			return m, m.focus(m.cursor + 1)
		case key.Matches(msg, keymap.Keys.Up):
			return m, m.focus(m.cursor - 1)
		case key.Matches(msg, keymap.Keys.Home):
			return m, m.focus(0)
		case key.Matches(msg, keymap.Keys.End):
			return m, m.focus(len(m.rows) - 1)
		case key.Matches(msg, keymap.Keys.Preview):
			return m, m.resolve(m.cursor)
		case key.Matches(msg, keymap.Keys.OpenURL):
			if story := m.rows[m.cursor].Story; story.URL != "" {
				return m, openURL(story.URL)
			}
		case key.Matches(msg, keymap.Keys.OpenItem):
			return m, openURL(render.ItemURL(m.rows[m.cursor].Story.ID))
		}

	case tea.MouseMsg:
		return m, m.mouse(msg)
	}
	return m, nil
}

// mouse handles pointer input in pane-local coordinates.
func (m *Model) mouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.offset = min(m.offset+1, max(len(m.rows)-m.perPage(), 0))
		return nil
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.offset = max(m.offset-1, 0)
		return nil
	}

	idx := m.RowAt(msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if idx == m.hovered {
			return nil
		}
		m.hovered = idx
		if idx < 0 {
			return nil
		}
		return m.resolve(idx)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && idx >= 0 && idx != m.cursor {
			return m.focus(idx)
		}
	}
	return nil
}

// focus moves the cursor to idx and resolves the newly focused row.
func (m *Model) focus(idx int) tea.Cmd {
	idx = max(0, min(idx, len(m.rows)-1))
	if idx == m.cursor {
		return nil
	}
	m.cursor = idx
	m.scrollToCursor()
	return m.resolve(idx)
}

func (m *Model) resolve(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}
	return m.rows[idx].Resolver.Resolve(m.ctx)
}

// RowAt maps a pane-local line to a row index, or -1 outside the rows.
func (m Model) RowAt(y int) int {
	if y < headerLines || len(m.rows) == 0 {
		return -1
	}
	idx := m.offset + (y-headerLines)/rowHeight
	if idx >= len(m.rows) || idx >= m.offset+m.perPage() {
		return -1
	}
	return idx
}

func (m Model) perPage() int {
	if m.height <= 0 {
		return len(m.rows)
	}
	return max((m.height-headerLines)/rowHeight, 1)
}

func (m *Model) scrollToCursor() {
	per := m.perPage()
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+per {
		m.offset = m.cursor - per + 1
	}
}

// View renders the story list.
func (m Model) View() string {
	if !m.settled {
		return placeholderStyle.Render("Loading items")
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("An error occurred while fetching stories %s", m.err))
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(feedTitle(m.feed)))
	sb.WriteString("\n\n")
	end := min(m.offset+m.perPage(), len(m.rows))
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.rows[i].render(m.width, i == m.cursor, m.loc))
		if i < end-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Feed returns the feed the list shows.
func (m Model) Feed() api.Feed {
	return m.feed
}

// Rows returns the rows in API order.
func (m Model) Rows() []*Row {
	return m.rows
}

// Cursor returns the index of the focused row.
func (m Model) Cursor() int {
	return m.cursor
}

func openURL(u string) tea.Cmd {
	return func() tea.Msg {
		return messages.OpenURLMsg{URL: u}
	}
}

func feedTitle(feed api.Feed) string {
	switch feed {
	case api.FeedTop:
		return "Top Stories"
	case api.FeedNew:
		return "New"
	case api.FeedBest:
		return "Best Stories"
	case api.FeedAsk:
		return "Ask HN"
	case api.FeedShow:
		return "Show HN"
	case api.FeedJobs:
		return "Jobs"
	default:
		return "Hacker News"
	}
}
