package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fragmede/hnpeek/internal/api"
)

// Source is a read-through api.ItemSource backed by the DB. Entries older
// than their TTL are refetched; a failed refetch is returned as an error
// rather than answered from the stale row.
type Source struct {
	db      *DB
	next    api.ItemSource
	listTTL time.Duration
	itemTTL time.Duration
	log     zerolog.Logger
}

// NewSource wraps next with the cache.
func NewSource(db *DB, next api.ItemSource, listTTL, itemTTL time.Duration, log zerolog.Logger) *Source {
	return &Source{
		db:      db,
		next:    next,
		listTTL: listTTL,
		itemTTL: itemTTL,
		log:     log,
	}
}

// GetItem returns the cached item while fresh, otherwise fetches and stores it.
func (s *Source) GetItem(ctx context.Context, id int) (*api.Item, error) {
	item, fresh, err := s.db.GetItem(id, s.itemTTL)
	if err != nil {
		s.log.Warn().Err(err).Int("id", id).Msg("reading cached item")
	}
	if fresh && item != nil {
		return item, nil
	}

	item, err = s.next.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.PutItem(item); err != nil {
		s.log.Warn().Err(err).Int("id", id).Msg("caching item")
	}
	return item, nil
}

// GetStoryIDs returns the cached feed while fresh, otherwise fetches and stores it.
func (s *Source) GetStoryIDs(ctx context.Context, feed api.Feed) ([]int, error) {
	ids, fresh, err := s.db.GetStoryList(string(feed), s.listTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("feed", string(feed)).Msg("reading cached story list")
	}
	if fresh && ids != nil {
		return ids, nil
	}

	ids, err = s.next.GetStoryIDs(ctx, feed)
	if err != nil {
		return nil, err
	}
	if err := s.db.PutStoryList(string(feed), ids); err != nil {
		s.log.Warn().Err(err).Str("feed", string(feed)).Msg("caching story list")
	}
	return ids, nil
}
