package api

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSource serves items from memory and counts GetItem calls.
type mapSource struct {
	mu    sync.Mutex
	items map[int]*Item
	calls map[int]int
}

func newMapSource(items ...*Item) *mapSource {
	s := &mapSource{items: map[int]*Item{}, calls: map[int]int{}}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *mapSource) GetItem(_ context.Context, id int) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return it, nil
}

func (s *mapSource) GetStoryIDs(context.Context, Feed) ([]int, error) {
	return nil, errors.New("not implemented")
}

func ids(cs []*Comment) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFetcher_GetFullTree(t *testing.T) {
	src := newMapSource(
		&Item{ID: 1, Type: "story", Title: "root", Text: "<p>body", Kids: []int{4, 2, 3}},
		&Item{ID: 2, Type: "comment", By: "b", Kids: []int{21, 20}},
		&Item{ID: 3, Type: "comment", By: "c"},
		&Item{ID: 4, Type: "comment", By: "a", Kids: []int{40}},
		&Item{ID: 20, Type: "comment", Kids: []int{200}},
		&Item{ID: 21, Type: "comment"},
		&Item{ID: 40, Type: "comment"},
		&Item{ID: 200, Type: "comment"},
	)

	full, err := NewFetcher(src, zerolog.Nop()).GetFull(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "root", full.Item.Title)
	assert.Equal(t, "<p>body", full.Text)
	require.Equal(t, []int{4, 2, 3}, ids(full.Comments))
	assert.Equal(t, []int{40}, ids(full.Comments[0].SubComments))
	assert.Equal(t, []int{21, 20}, ids(full.Comments[1].SubComments))
	assert.Empty(t, full.Comments[2].SubComments)
	assert.Equal(t, []int{200}, ids(full.Comments[1].SubComments[1].SubComments))
}

func TestFetcher_GetFullSkipsMissingChildren(t *testing.T) {
	src := newMapSource(
		&Item{ID: 1, Kids: []int{2, 99, 3}},
		&Item{ID: 2},
		&Item{ID: 3},
	)

	full, err := NewFetcher(src, zerolog.Nop()).GetFull(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(full.Comments))
}

func TestFetcher_GetFullCycle(t *testing.T) {
	src := newMapSource(
		&Item{ID: 1, Kids: []int{2}},
		&Item{ID: 2, Kids: []int{3}},
		&Item{ID: 3, Kids: []int{2, 1}},
	)

	full, err := NewFetcher(src, zerolog.Nop()).GetFull(context.Background(), 1)
	require.NoError(t, err)

	require.Equal(t, []int{2}, ids(full.Comments))
	require.Equal(t, []int{3}, ids(full.Comments[0].SubComments))
	assert.Empty(t, full.Comments[0].SubComments[0].SubComments)
	for id, n := range src.calls {
		assert.Equal(t, 1, n, "item %d fetched more than once", id)
	}
}

func TestFetcher_GetFullSharedChild(t *testing.T) {
	src := newMapSource(
		&Item{ID: 1, Kids: []int{2, 3}},
		&Item{ID: 2, Kids: []int{5}},
		&Item{ID: 3, Kids: []int{5}},
		&Item{ID: 5},
	)

	full, err := NewFetcher(src, zerolog.Nop()).GetFull(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids(full.Comments[0].SubComments))
	assert.Empty(t, full.Comments[1].SubComments)
}

func TestFetcher_GetFullRootError(t *testing.T) {
	src := newMapSource()

	_, err := NewFetcher(src, zerolog.Nop()).GetFull(context.Background(), 42)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "item", fe.Op)
	assert.Equal(t, 42, fe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "fetching item 42: item not found", err.Error())
}

func TestFetcher_GetFullCancelled(t *testing.T) {
	src := newMapSource(
		&Item{ID: 1, Kids: []int{2}},
		&Item{ID: 2},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(src, zerolog.Nop()).GetFull(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_BatchGetItemsOrder(t *testing.T) {
	src := newMapSource(&Item{ID: 1}, &Item{ID: 2}, &Item{ID: 3})

	items, err := NewFetcher(src, zerolog.Nop()).BatchGetItems(context.Background(), []int{3, 404, 1, 2})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, 3, items[0].ID)
	assert.Nil(t, items[1])
	assert.Equal(t, 1, items[2].ID)
	assert.Equal(t, 2, items[3].ID)
}
