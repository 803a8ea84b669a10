package storyview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fragmede/hnpeek/internal/preview"
	"github.com/fragmede/hnpeek/internal/render"
	"github.com/fragmede/hnpeek/internal/ui/keymap"
)

const (
	// HintText is shown before any story has been resolved.
	HintText = "Hover over a story to preview it here"
	// LoadingText is shown while a preview fetch is in flight.
	LoadingText = "Loading..."
)

var (
	commentAuthorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	commentMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	commentDelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")).Italic(true)
	storyHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	storyMetaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	separatorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// Model is the preview pane. It draws whatever the store holds.
type Model struct {
	viewport viewport.Model
	store    *preview.Store
	version  uint64
	width    int
	height   int
}

// New creates a preview pane reading from store.
func New(store *preview.Store) Model {
	vp := viewport.New(0, 0)
	m := Model{
		viewport: vp,
		store:    store,
	}
	m.rebuild()
	return m
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h, 1)
	m.rebuild()
}

// Sync re-renders when the store changed since the last render. A new state
// starts at the top.
func (m *Model) Sync() {
	if m.store.Version() == m.version {
		return
	}
	m.rebuild()
	m.viewport.GotoTop()
}

func (m *Model) rebuild() {
	m.version = m.store.Version()
	m.viewport.SetContent(Render(m.store.Get(), m.width))
}

// Update handles scrolling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.Keys.PageDown):
			m.viewport.HalfViewDown()
			return m, nil
		case key.Matches(msg, keymap.Keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil
		}
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the preview pane.
func (m Model) View() string {
	return m.viewport.View()
}

// Render maps a preview state to the pane content.
func Render(st preview.State, width int) string {
	switch st.Kind {
	case preview.Loading:
		return hintStyle.Render(LoadingText)
	case preview.Loaded:
		if st.Item == nil {
			return hintStyle.Render(LoadingText)
		}
	default:
		return hintStyle.Render(HintText)
	}

	item := st.Item
	textWidth := max(width-2, 20)

	var parts []string
	title := ansi.Truncate(item.Item.Title, textWidth, "…")
	parts = append(parts, render.Link(item.Item.URL, storyHeaderStyle.Render(title)))
	parts = append(parts, storyMetaStyle.Render(strings.Join([]string{
		render.ScoreLabel(item.Item.Score),
		"by " + item.Item.By,
		render.TimeAgo(item.Item.Time.Unix()),
		render.CommentLabel(len(item.Item.Kids)),
	}, " | ")))
	if item.Text != "" {
		parts = append(parts, "", render.HNToText(item.Text, textWidth))
	}
	parts = append(parts, separatorStyle.Render(strings.Repeat("─", max(width, 1))))
	if len(item.Comments) > 0 {
		parts = append(parts, RenderComments(item.Comments, width))
	}
	return strings.Join(parts, "\n")
}
