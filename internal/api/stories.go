package api

import (
	"context"

	"github.com/rs/zerolog"
)

// Fetcher is the remote data client used by the UI. It builds story lists and
// full items with comment trees on top of an ItemSource.
type Fetcher struct {
	src ItemSource
	log zerolog.Logger
}

// NewFetcher creates a Fetcher reading from src.
func NewFetcher(src ItemSource, log zerolog.Logger) *Fetcher {
	return &Fetcher{src: src, log: log}
}

// ListTop fetches the first n stories of a feed, in feed order.
// n <= 0 fetches the whole feed. Stories that fail to load are skipped.
func (f *Fetcher) ListTop(ctx context.Context, feed Feed, n int) ([]*StoryItem, error) {
	ids, err := f.src.GetStoryIDs(ctx, feed)
	if err != nil {
		return nil, &FetchError{Op: "list", Err: err}
	}
	if n > 0 && n < len(ids) {
		ids = ids[:n]
	}

	items, err := f.BatchGetItems(ctx, ids)
	if err != nil {
		return nil, &FetchError{Op: "list", Err: err}
	}

	stories := make([]*StoryItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			stories = append(stories, item.Story())
		}
	}
	f.log.Debug().
		Str("feed", string(feed)).
		Int("requested", len(ids)).
		Int("loaded", len(stories)).
		Msg("story list fetched")
	return stories, nil
}
