package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/hnpeek/internal/api"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_ItemRoundTrip(t *testing.T) {
	db := openTestDB(t)

	in := &api.Item{
		ID:      121003,
		Type:    "story",
		By:      "tel",
		Time:    1203647620,
		Title:   "Ask HN: The Arc Effect",
		Text:    "<i>or</i> HN: the Next Iteration",
		Score:   25,
		Kids:    []int{121016, 121109},
		Deleted: true,
	}
	require.NoError(t, db.PutItem(in))

	out, fresh, err := db.GetItem(in.ID, time.Minute)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, fresh)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.Text, out.Text)
	assert.Equal(t, in.Kids, out.Kids)
	assert.True(t, out.Deleted)
	assert.Empty(t, out.URL)
}

func TestDB_ItemMiss(t *testing.T) {
	db := openTestDB(t)

	out, fresh, err := db.GetItem(1, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.False(t, fresh)
}

func TestDB_ItemExpired(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutItem(&api.Item{ID: 5, Type: "comment"}))

	out, fresh, err := db.GetItem(5, 0)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, fresh)
}

func TestDB_StoryList(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutStoryList("top", []int{3, 1, 2}))

	ids, fresh, err := db.GetStoryList("top", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, []int{3, 1, 2}, ids)

	ids, _, err = db.GetStoryList("new", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestDB_Purge(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutItem(&api.Item{ID: 9, Type: "story"}))
	require.NoError(t, db.PutStoryList("top", []int{9}))

	require.NoError(t, db.Purge(time.Now().Add(time.Hour).Unix()))

	item, _, err := db.GetItem(9, time.Minute)
	require.NoError(t, err)
	assert.Nil(t, item)
	ids, _, err := db.GetStoryList("top", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

type countingSource struct {
	items    map[int]*api.Item
	ids      []int
	err      error
	getCalls int
	idsCalls int
}

func (s *countingSource) GetItem(_ context.Context, id int) (*api.Item, error) {
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items[id], nil
}

func (s *countingSource) GetStoryIDs(context.Context, api.Feed) ([]int, error) {
	s.idsCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.ids, nil
}

func TestSource_ReadThrough(t *testing.T) {
	db := openTestDB(t)
	next := &countingSource{
		items: map[int]*api.Item{7: {ID: 7, Type: "story", Title: "seven"}},
		ids:   []int{7},
	}
	src := NewSource(db, next, time.Minute, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, err := src.GetItem(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "seven", item.Title)

		ids, err := src.GetStoryIDs(ctx, api.FeedTop)
		require.NoError(t, err)
		assert.Equal(t, []int{7}, ids)
	}
	assert.Equal(t, 1, next.getCalls)
	assert.Equal(t, 1, next.idsCalls)
}

func TestSource_StaleEntryNotServedOnError(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutItem(&api.Item{ID: 7, Type: "story"}))
	require.NoError(t, db.PutStoryList("top", []int{7}))

	boom := errors.New("network down")
	next := &countingSource{err: boom}
	src := NewSource(db, next, 0, 0, zerolog.Nop())

	_, err := src.GetItem(context.Background(), 7)
	assert.ErrorIs(t, err, boom)
	_, err = src.GetStoryIDs(context.Background(), api.FeedTop)
	assert.ErrorIs(t, err, boom)
}
