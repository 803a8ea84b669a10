package storyview

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/hnpeek/internal/api"
	"github.com/fragmede/hnpeek/internal/preview"
)

func comment(id int, by, text string, subs ...*api.Comment) *api.Comment {
	return &api.Comment{ID: id, By: by, Text: text, Time: time.Now().Add(-time.Hour), SubComments: subs}
}

func TestRender_Unset(t *testing.T) {
	assert.Equal(t, HintText, Render(preview.State{}, 80))
	assert.Equal(t, "Hover over a story to preview it here", HintText)
}

func TestRender_Loading(t *testing.T) {
	assert.Equal(t, "Loading...", Render(preview.LoadingState(), 80))
}

func TestRender_Loaded(t *testing.T) {
	item := &api.FullItem{
		Item: api.StoryItem{
			ID:    8863,
			Title: "My YC app: Dropbox",
			URL:   "http://www.getdropbox.com/u/2/screencast.html",
			By:    "dhouston",
			Score: 111,
			Time:  time.Now().Add(-2 * time.Hour),
			Kids:  []int{1},
		},
		Text:     "Throw away your USB drive<p>no really",
		Comments: []*api.Comment{comment(1, "pg", "Nice &amp; simple")},
	}

	out := Render(preview.LoadedState(item), 80)
	assert.Contains(t, out, "My YC app: Dropbox")
	assert.Contains(t, out, "http://www.getdropbox.com/u/2/screencast.html")
	assert.Contains(t, out, "111 points | by dhouston | 2 hours ago | 1 comment")
	assert.Contains(t, out, "Throw away your USB drive\n\nno really")
	assert.Contains(t, out, "by pg")
	assert.Contains(t, out, "Nice & simple")
	assert.Less(t, strings.Index(out, "no really"), strings.Index(out, "by pg"), "body comes before comments")
}

func TestRenderComments_DepthFirst(t *testing.T) {
	tree := comment(1, "one", "first",
		comment(2, "two", "second",
			comment(3, "three", "third"),
		),
		comment(4, "four", "fourth"),
	)

	out := RenderComments([]*api.Comment{tree}, 80)
	var order []int
	for _, who := range []string{"by one", "by two", "by three", "by four"} {
		idx := strings.Index(out, who)
		require.GreaterOrEqual(t, idx, 0, who)
		order = append(order, idx)
	}
	assert.IsIncreasing(t, order)

	lines := strings.Split(out, "\n")
	indentOf := func(who string) int {
		for _, l := range lines {
			if strings.Contains(l, who) {
				return len(l) - len(strings.TrimLeft(l, " "))
			}
		}
		return -1
	}
	assert.Equal(t, 0, indentOf("by one"))
	assert.Equal(t, 2, indentOf("by two"))
	assert.Equal(t, 4, indentOf("by three"))
	assert.Equal(t, 2, indentOf("by four"))
}

func TestRenderComments_Deep(t *testing.T) {
	// Build a chain deeper than the indentation cap.
	var root *api.Comment
	for i := 100; i >= 1; i-- {
		if root == nil {
			root = comment(i, "deepest", "bottom")
		} else {
			root = comment(i, "u", "x", root)
		}
	}

	out := RenderComments([]*api.Comment{root}, 80)
	assert.Contains(t, out, "by deepest")
	assert.Equal(t, 100, strings.Count(out, "│ by "))
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(l)-len(strings.TrimLeft(l, " ")), maxIndent)
	}
}

func TestRenderComments_DeletedAndDead(t *testing.T) {
	out := RenderComments([]*api.Comment{
		{ID: 1, Deleted: true},
		{ID: 2, Dead: true, SubComments: []*api.Comment{comment(3, "kid", "still shown")}},
	}, 80)
	assert.Contains(t, out, "[deleted]")
	assert.Contains(t, out, "[flagged]")
	assert.Contains(t, out, "still shown")
}

func TestModel_SyncFollowsStore(t *testing.T) {
	store := preview.NewStore()
	m := New(store)
	m.SetSize(60, 20)
	assert.Contains(t, m.View(), HintText)

	store.Set(preview.LoadingState())
	assert.Contains(t, m.View(), HintText, "view only changes after Sync")
	m.Sync()
	assert.Contains(t, m.View(), LoadingText)

	store.Set(preview.LoadedState(&api.FullItem{Item: api.StoryItem{Title: "Loaded title"}}))
	m.Sync()
	assert.Contains(t, m.View(), "Loaded title")
}

func TestModel_ScrollKeys(t *testing.T) {
	store := preview.NewStore()
	var comments []*api.Comment
	for i := 0; i < 50; i++ {
		comments = append(comments, comment(i+1, "u", "line"))
	}
	store.Set(preview.LoadedState(&api.FullItem{Item: api.StoryItem{Title: "long"}, Comments: comments}))

	m := New(store)
	m.SetSize(60, 10)
	m.Sync()
	assert.True(t, m.viewport.AtTop())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.False(t, m.viewport.AtTop())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.True(t, m.viewport.AtTop())
}
