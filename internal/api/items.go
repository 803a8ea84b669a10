package api

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BatchGetItems fetches multiple items concurrently with a concurrency limit.
// Returns items in the same order as the input IDs. Failed fetches are nil.
// The only error is the cancellation of ctx.
func (f *Fetcher) BatchGetItems(ctx context.Context, ids []int) ([]*Item, error) {
	results := make([]*Item, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, id := range ids {
		g.Go(func() error {
			item, err := f.src.GetItem(gctx, id)
			if err != nil {
				// Non-fatal: individual items can fail.
				f.log.Debug().Err(err).Int("id", id).Msg("item fetch failed")
				return nil
			}
			mu.Lock()
			results[i] = item
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetFull fetches a story and eagerly materializes its whole comment tree.
// Comments that fail to load are left out; the rest keep their API order.
// No comment ID is materialized twice, so a cyclic reply graph still yields
// a finite tree.
func (f *Fetcher) GetFull(ctx context.Context, id int) (*FullItem, error) {
	root, err := f.src.GetItem(ctx, id)
	if err != nil {
		return nil, &FetchError{Op: "item", ID: id, Err: err}
	}

	seen := map[int]bool{root.ID: true}
	comments, err := f.commentTree(ctx, root.Kids, seen)
	if err != nil {
		return nil, &FetchError{Op: "item", ID: id, Err: err}
	}

	f.log.Debug().
		Int("id", id).
		Int("comments", len(seen)-1).
		Msg("full item fetched")

	return &FullItem{
		Item:     *root.Story(),
		Text:     root.Text,
		Comments: comments,
	}, nil
}

// commentTree walks the tree one depth level at a time, fetching each level
// as a single batch.
func (f *Fetcher) commentTree(ctx context.Context, ids []int, seen map[int]bool) ([]*Comment, error) {
	fetched, err := f.fetchLevel(ctx, ids, seen)
	if err != nil {
		return nil, err
	}
	roots := attach(ids, fetched)

	frontier := roots
	for len(frontier) > 0 {
		var next []int
		for _, c := range frontier {
			next = append(next, c.Kids...)
		}
		fetched, err := f.fetchLevel(ctx, next, seen)
		if err != nil {
			return nil, err
		}

		var nextFrontier []*Comment
		for _, c := range frontier {
			c.SubComments = attach(c.Kids, fetched)
			nextFrontier = append(nextFrontier, c.SubComments...)
		}
		frontier = nextFrontier
	}
	return roots, nil
}

// fetchLevel fetches the IDs not yet seen and marks them seen.
func (f *Fetcher) fetchLevel(ctx context.Context, ids []int, seen map[int]bool) (map[int]*Comment, error) {
	var pending []int
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	items, err := f.BatchGetItems(ctx, pending)
	if err != nil {
		return nil, err
	}
	out := make(map[int]*Comment, len(items))
	for _, item := range items {
		if item != nil {
			out[item.ID] = item.Comment()
		}
	}
	return out, nil
}

// attach picks the fetched comments for ids in order. Each comment is handed
// out once, to the first parent that lists it.
func attach(ids []int, fetched map[int]*Comment) []*Comment {
	var out []*Comment
	for _, id := range ids {
		if c, ok := fetched[id]; ok {
			out = append(out, c)
			delete(fetched, id)
		}
	}
	return out
}
