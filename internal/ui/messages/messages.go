package messages

import "github.com/fragmede/hnpeek/internal/api"

// View transition messages.
type (
	SwitchFeedMsg struct{ Feed api.Feed }
	OpenURLMsg    struct{ URL string }
)

// Data messages.
type (
	StoriesLoadedMsg struct {
		Feed  api.Feed
		Items []*api.StoryItem
		Err   error
	}

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
