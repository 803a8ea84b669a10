package preview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/fragmede/hnpeek/internal/api"
)

// Fetcher loads a full item with its comment tree.
type Fetcher interface {
	GetFull(ctx context.Context, id int) (*api.FullItem, error)
}

// ResolvedMsg carries the outcome of a Resolver fetch back to the update loop.
type ResolvedMsg struct {
	Resolver *Resolver
	ID       int
	Item     *api.FullItem
	Err      error
}

// Resolver turns interaction on one list row into preview state. Each row
// owns one Resolver and its Cell; the Store is shared by all of them.
type Resolver struct {
	id    int
	cell  Cell
	store *Store
	fetch Fetcher
	log   zerolog.Logger
}

// NewResolver creates the resolver for the row showing item id.
func NewResolver(id int, store *Store, fetch Fetcher, log zerolog.Logger) *Resolver {
	return &Resolver{
		id:    id,
		store: store,
		fetch: fetch,
		log:   log,
	}
}

// ID returns the item the resolver previews.
func (r *Resolver) ID() int { return r.id }

// Cached returns the memoized item, if the row already resolved once.
func (r *Resolver) Cached() (*api.FullItem, bool) { return r.cell.Get() }

// Resolve shows the row's item in the preview. A cache hit sets Loaded and
// returns nil. A miss sets Loading before returning the fetch command; the
// command's ResolvedMsg must be passed to Settle. Every miss fetches, even
// when an earlier fetch for this row is still in flight.
func (r *Resolver) Resolve(ctx context.Context) tea.Cmd {
	if item, ok := r.cell.Get(); ok {
		r.store.Set(LoadedState(item))
		return nil
	}

	r.store.Set(LoadingState())
	r.log.Debug().Int("id", r.id).Msg("fetching preview")

	id, fetch := r.id, r.fetch
	return func() tea.Msg {
		item, err := fetch.GetFull(ctx, id)
		return ResolvedMsg{Resolver: r, ID: id, Item: item, Err: err}
	}
}

// Settle applies a finished fetch. Success fills the cell (first write only)
// and sets Loaded, even if another row has been resolved since. Failure leaves
// the store as it is.
func (r *Resolver) Settle(msg ResolvedMsg) {
	if msg.Err != nil || msg.Item == nil {
		r.log.Warn().Err(msg.Err).Int("id", msg.ID).Msg("preview fetch failed")
		return
	}
	r.cell.Fill(msg.Item)
	r.store.Set(LoadedState(msg.Item))
}
