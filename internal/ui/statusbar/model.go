package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/hnpeek/internal/api"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF6600")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

var tabLabels = map[api.Feed]string{
	api.FeedTop:  "Top",
	api.FeedNew:  "New",
	api.FeedBest: "Best",
	api.FeedAsk:  "Ask",
	api.FeedShow: "Show",
	api.FeedJobs: "Jobs",
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	activeFeed api.Feed
	statusText string
	isError    bool
	hint       string
}

// New creates a new status bar.
func New(feed api.Feed, hint string) Model {
	return Model{activeFeed: feed, hint: hint}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetActiveFeed sets the highlighted feed tab.
func (m *Model) SetActiveFeed(feed api.Feed) {
	m.activeFeed = feed
}

// SetStatus sets a temporary status message. An empty text shows the key hint.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for _, feed := range api.Feeds {
		if feed == m.activeFeed {
			tabsStr += activeTabStyle.Render(tabLabels[feed])
		} else {
			tabsStr += inactiveTabStyle.Render(tabLabels[feed])
		}
	}

	var right string
	switch {
	case m.statusText != "" && m.isError:
		right = errorTextStyle.Render(m.statusText)
	case m.statusText != "":
		right = statusTextStyle.Render(m.statusText)
	default:
		right = statusTextStyle.Render(m.hint)
	}

	// Fill middle with background.
	tabsWidth := lipgloss.Width(tabsStr)
	rightWidth := lipgloss.Width(right)
	gap := m.width - tabsWidth - rightWidth
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
