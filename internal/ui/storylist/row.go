package storylist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fragmede/hnpeek/internal/api"
	"github.com/fragmede/hnpeek/internal/preview"
	"github.com/fragmede/hnpeek/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	hostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	selectedTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6600"))

	selectedDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CCCCCC"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Width(4).
			Align(lipgloss.Right)
)

// rowHeight is the number of lines a row occupies, spacer included.
const rowHeight = 3

// Row is one story of the list. It owns the resolver (and with it the cache
// cell) for that story.
type Row struct {
	Story    *api.StoryItem
	Resolver *preview.Resolver
	Index    int
}

// Hostname is the story URL without scheme and "www.".
func (r Row) Hostname() string {
	return render.Hostname(r.Story.URL)
}

// Meta is the score, author, time and comment count line.
func (r Row) Meta(loc *time.Location) string {
	return strings.Join([]string{
		render.ScoreLabel(r.Story.Score),
		"by " + r.Story.By,
		render.Timestamp(r.Story.Time, loc),
		render.CommentLabel(len(r.Story.Kids)),
	}, "  ")
}

// render draws the row's title and meta lines, truncated to width.
func (r Row) render(width int, selected bool, loc *time.Location) string {
	idx := indexStyle.Render(fmt.Sprintf("%d.", r.Index+1))
	avail := max(width-lipgloss.Width(idx)-1, 10)

	title := r.Story.Title
	if title == "" {
		title = fmt.Sprintf("[%s]", r.Story.Type)
	}
	host := r.Hostname()
	var hostPart string
	if host != "" {
		hostPart = " (" + host + ")"
	}
	title = ansi.Truncate(title, avail, "…")
	hostPart = ansi.Truncate(hostPart, max(avail-ansi.StringWidth(title), 0), "…")
	meta := ansi.Truncate(r.Meta(loc), avail, "…")

	ts, ds := titleStyle, descStyle
	if selected {
		ts, ds = selectedTitleStyle, selectedDescStyle
	}

	line1 := idx + " " + render.Link(r.Story.URL, ts.Render(title))
	if hostPart != "" {
		line1 += render.Link(render.FromSiteURL(host), hostStyle.Render(hostPart))
	}
	line2 := strings.Repeat(" ", lipgloss.Width(idx)+1) + ds.Render(meta)
	return line1 + "\n" + line2
}
