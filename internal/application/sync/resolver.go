package sync

import (
	"context"
	"fmt"

	"desksync/internal/domain/dimension"
	"desksync/internal/shared/logger"
)

// Resolver maps external reference ids onto local surrogate keys with one
// in-memory cache per dimension, preloaded from the store at run start.
// Working from the cache instead of relying on unique-constraint violations
// keeps resolution idempotent within and across runs.
//
// A Resolver is run-scoped and single-writer: it lives for exactly one sync
// run and must not be shared between concurrent runs.
type Resolver struct {
	store  dimension.Store
	caches map[dimension.Dimension]map[string]dimension.Record
	log    logger.Interface
}

// NewResolver preloads every dimension cache from the store.
func NewResolver(ctx context.Context, store dimension.Store, log logger.Interface) (*Resolver, error) {
	caches := make(map[dimension.Dimension]map[string]dimension.Record, len(dimension.All))
	for _, dim := range dimension.All {
		rows, err := store.Load(ctx, dim)
		if err != nil {
			return nil, fmt.Errorf("failed to preload %s dimension: %w", dim, err)
		}
		caches[dim] = rows
	}
	return &Resolver{store: store, caches: caches, log: log}, nil
}

// Resolve returns the surrogate key for externalID, creating the row on
// first observation. An empty external id is never resolved and yields a
// nil reference. On a cache hit with changed attributes the row's mutable
// attributes are refreshed, unless the new title is empty.
func (r *Resolver) Resolve(ctx context.Context, dim dimension.Dimension, externalID string, attrs dimension.Attributes) (*uint, error) {
	if externalID == "" {
		return nil, nil
	}

	cache := r.caches[dim]
	if rec, ok := cache[externalID]; ok {
		if attrs.Title != "" && !rec.Attributes.Equal(attrs) {
			if err := r.store.Update(ctx, dim, rec.ID, attrs); err != nil {
				return nil, fmt.Errorf("failed to refresh %s %q: %w", dim, externalID, err)
			}
			rec.Attributes = attrs
			cache[externalID] = rec
		}
		id := rec.ID
		return &id, nil
	}

	id, err := r.store.Insert(ctx, dim, externalID, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %q: %w", dim, externalID, err)
	}
	cache[externalID] = dimension.Record{ID: id, Attributes: attrs}
	r.log.Debugw("dimension row created", "dimension", dim, "external_id", externalID, "id", id)

	return &id, nil
}
