// Package preview holds the preview lifecycle shared by the story list and
// the preview pane, and the per-row logic that drives it.
package preview

import "github.com/fragmede/hnpeek/internal/api"

// Kind tags the variant of a State.
type Kind int

const (
	Unset Kind = iota
	Loading
	Loaded
)

func (k Kind) String() string {
	switch k {
	case Unset:
		return "unset"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is the preview lifecycle. Item is set only when Kind is Loaded.
type State struct {
	Kind Kind
	Item *api.FullItem
}

// LoadingState returns the Loading variant.
func LoadingState() State { return State{Kind: Loading} }

// LoadedState returns the Loaded variant carrying item.
func LoadedState(item *api.FullItem) State { return State{Kind: Loaded, Item: item} }
