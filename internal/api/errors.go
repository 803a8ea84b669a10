package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the API has no item for an ID.
	ErrNotFound = errors.New("item not found")
	// ErrUnknownFeed is returned for a feed name the API does not serve.
	ErrUnknownFeed = errors.New("unknown feed")
)

// FetchError is the error shape of ListTop and GetFull.
type FetchError struct {
	Op  string // "list" or "item"
	ID  int    // item ID for Op "item"
	Err error
}

func (e *FetchError) Error() string {
	if e.Op == "item" {
		return fmt.Sprintf("fetching item %d: %v", e.ID, e.Err)
	}
	return e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }
