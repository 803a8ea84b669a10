package api

import (
	"encoding/json"
	"time"
)

// Feed names one of the HN story lists.
type Feed string

const (
	FeedTop  Feed = "top"
	FeedNew  Feed = "new"
	FeedBest Feed = "best"
	FeedAsk  Feed = "ask"
	FeedShow Feed = "show"
	FeedJobs Feed = "jobs"
)

// Feeds lists every feed in tab order.
var Feeds = []Feed{FeedTop, FeedNew, FeedBest, FeedAsk, FeedShow, FeedJobs}

// Item is an HN item as the Firebase API returns it.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	Parent      int    `json:"parent"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// KidsJSON returns the kids as a JSON array (for cache storage).
func (it *Item) KidsJSON() string {
	if len(it.Kids) == 0 {
		return "[]"
	}
	b, err := json.Marshal(it.Kids)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// StoryItem is the summary of a story shown as one row of the list.
type StoryItem struct {
	ID    int
	Title string
	URL   string // empty when the story has no link
	By    string
	Score int
	Time  time.Time
	Kids  []int
	Type  string
}

// FullItem is a story with its body and fully materialized comment tree.
type FullItem struct {
	Item     StoryItem
	Text     string
	Comments []*Comment
}

// Comment is one node of a comment tree. SubComments follows the order of Kids.
type Comment struct {
	ID          int
	By          string
	Text        string
	Time        time.Time
	Kids        []int
	SubComments []*Comment
	Deleted     bool
	Dead        bool
}

// Story converts a raw item into its summary form.
func (it *Item) Story() *StoryItem {
	return &StoryItem{
		ID:    it.ID,
		Title: it.Title,
		URL:   it.URL,
		By:    it.By,
		Score: max(it.Score, 0),
		Time:  time.Unix(it.Time, 0).UTC(),
		Kids:  it.Kids,
		Type:  it.Type,
	}
}

// Comment converts a raw item into a comment node without children.
func (it *Item) Comment() *Comment {
	return &Comment{
		ID:      it.ID,
		By:      it.By,
		Text:    it.Text,
		Time:    time.Unix(it.Time, 0).UTC(),
		Kids:    it.Kids,
		Deleted: it.Deleted,
		Dead:    it.Dead,
	}
}
