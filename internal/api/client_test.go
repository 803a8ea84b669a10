package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockItem(id int, body map[string]interface{}) {
	body["id"] = id
	gock.New(BaseURL).
		Get(fmt.Sprintf("/item/%d.json", id)).
		Reply(http.StatusOK).
		JSON(body)
}

func TestClient_GetItem(t *testing.T) {
	defer gock.Off()

	mockItem(8863, map[string]interface{}{
		"type":  "story",
		"by":    "dhouston",
		"title": "My YC app: Dropbox",
		"url":   "http://www.getdropbox.com/u/2/screencast.html",
		"score": 111,
		"time":  1175714200,
		"kids":  []int{9224, 8917},
	})

	item, err := NewClient().GetItem(context.Background(), 8863)
	require.NoError(t, err)
	assert.Equal(t, 8863, item.ID)
	assert.Equal(t, "dhouston", item.By)
	assert.Equal(t, []int{9224, 8917}, item.Kids)
	assert.Equal(t, "[9224,8917]", item.KidsJSON())
	assert.True(t, gock.IsDone())
}

func TestClient_GetItemNull(t *testing.T) {
	defer gock.Off()

	gock.New(BaseURL).
		Get("/item/404.json").
		Reply(http.StatusOK).
		BodyString("null")

	_, err := NewClient().GetItem(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetItemHTTPError(t *testing.T) {
	defer gock.Off()

	gock.New(BaseURL).
		Get("/item/7.json").
		Reply(http.StatusInternalServerError).
		BodyString("boom")

	_, err := NewClient().GetItem(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestClient_GetStoryIDs(t *testing.T) {
	defer gock.Off()

	gock.New(BaseURL).
		Get("/askstories.json").
		Reply(http.StatusOK).
		JSON([]int{3, 2, 1})

	ids, err := NewClient().GetStoryIDs(context.Background(), FeedAsk)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, ids)
}

func TestClient_GetStoryIDsUnknownFeed(t *testing.T) {
	_, err := NewClient().GetStoryIDs(context.Background(), Feed("past"))
	assert.ErrorIs(t, err, ErrUnknownFeed)
}

func TestFetcher_ListTop(t *testing.T) {
	defer gock.Off()

	gock.New(BaseURL).
		Get("/topstories.json").
		Reply(http.StatusOK).
		JSON([]int{30, 20, 10, 40})
	mockItem(30, map[string]interface{}{"title": "thirty", "score": 1})
	mockItem(20, map[string]interface{}{"title": "twenty"})
	mockItem(10, map[string]interface{}{"title": "ten", "kids": []int{11}})

	f := NewFetcher(NewClient(), zerolog.Nop())
	stories, err := f.ListTop(context.Background(), FeedTop, 3)
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "thirty", stories[0].Title)
	assert.Equal(t, "twenty", stories[1].Title)
	assert.Equal(t, "ten", stories[2].Title)
	assert.Equal(t, []int{11}, stories[2].Kids)
}

func TestFetcher_ListTopError(t *testing.T) {
	defer gock.Off()

	gock.New(BaseURL).
		Get("/topstories.json").
		Reply(http.StatusServiceUnavailable)

	f := NewFetcher(NewClient(), zerolog.Nop())
	_, err := f.ListTop(context.Background(), FeedTop, 10)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "list", fe.Op)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestFetcher_ListTopEmpty(t *testing.T) {
	defer gock.Off()

	gock.New(BaseURL).
		Get("/newstories.json").
		Reply(http.StatusOK).
		JSON([]int{})

	f := NewFetcher(NewClient(), zerolog.Nop())
	stories, err := f.ListTop(context.Background(), FeedNew, 10)
	require.NoError(t, err)
	assert.Empty(t, stories)
}
