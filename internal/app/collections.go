package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"lakeshore_hotel/internal/adapters/observability"
	"lakeshore_hotel/internal/domain"
)

// Result is one fully fetched collection. TotalCount always equals len(Items).
type Result[T domain.Record] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// Client retrieves whole collections from a content store as typed records.
// It performs exactly one store round trip per call; no caching, no retry.
type Client struct {
	store domain.ContentStore
}

func NewClient(s domain.ContentStore) *Client { return &Client{store: s} }

// Store exposes the backing store (readiness checks).
func (c *Client) Store() domain.ContentStore { return c.store }

// GetAll fetches every record of the collection that T belongs to.
func GetAll[T domain.Record](ctx context.Context, c *Client) (Result[T], error) {
	var zero T
	if any(zero) == nil {
		return Result[T]{}, errors.New("GetAll needs a concrete record type")
	}
	col := zero.Collection()
	recs, err := c.fetch(ctx, col)
	if err != nil {
		return Result[T]{}, err
	}
	items := make([]T, 0, len(recs))
	for _, r := range recs {
		t, ok := r.(T)
		if !ok {
			return Result[T]{}, domain.Malformed(col, fmt.Errorf("decoded %T, want %T", r, zero))
		}
		items = append(items, t)
	}
	return Result[T]{Items: items, TotalCount: len(items)}, nil
}

// Collection fetches a collection by name. Names outside the known set
// fail with domain.ErrNotFound without touching the store.
func (c *Client) Collection(ctx context.Context, name string) (Result[domain.Record], error) {
	col, err := domain.ParseCollection(name)
	if err != nil {
		return Result[domain.Record]{}, err
	}
	recs, err := c.fetch(ctx, col)
	if err != nil {
		return Result[domain.Record]{}, err
	}
	return Result[domain.Record]{Items: recs, TotalCount: len(recs)}, nil
}

func (c *Client) fetch(ctx context.Context, col domain.CollectionID) ([]domain.Record, error) {
	start := time.Now()
	page, err := c.store.Fetch(ctx, col)
	if err != nil {
		err = classify(ctx, col, err)
		observability.ObserveExternal(c.store.Name(), string(col), domain.KindOf(err), time.Since(start))
		log.Debug().Str("collection", string(col)).Str("kind", domain.KindOf(err)).Err(err).Msg("collection fetch failed")
		return nil, err
	}

	recs, err := decodePage(col, page)
	observability.ObserveExternal(c.store.Name(), string(col), domain.KindOf(err), time.Since(start))
	if err != nil {
		log.Debug().Str("collection", string(col)).Err(err).Msg("collection decode failed")
		return nil, err
	}
	if page.TotalCount > len(recs) {
		// single page only; the rest of the collection is not read
		log.Warn().
			Str("collection", string(col)).
			Int("returned", len(recs)).
			Int("store_total", page.TotalCount).
			Msg("store holds more records than one page")
	}
	log.Debug().Str("collection", string(col)).Int("count", len(recs)).Dur("took", time.Since(start)).Msg("collection fetched")
	return recs, nil
}

// classify makes sure every store error leaves the client as a *FetchError.
func classify(ctx context.Context, col domain.CollectionID, err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		if fe.Collection == "" {
			fe.Collection = col
		}
		return fe
	}
	if ctx.Err() != nil {
		return domain.Transient(col, ctx.Err())
	}
	return domain.Transient(col, err)
}
