package preview

import "github.com/fragmede/hnpeek/internal/api"

// Cell memoizes the full item of one list row. It is filled at most once and
// never cleared.
type Cell struct {
	item *api.FullItem
}

// Get returns the memoized item, if any.
func (c *Cell) Get() (*api.FullItem, bool) {
	return c.item, c.item != nil
}

// Fill stores item if the cell is empty. It reports whether item was stored.
func (c *Cell) Fill(item *api.FullItem) bool {
	if c.item != nil || item == nil {
		return false
	}
	c.item = item
	return true
}
