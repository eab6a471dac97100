package redisad

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lakeshore_hotel/internal/domain"
)

// KeyPrefix namespaces collection keys: content:{collection} holds the
// collection as a JSON array (or the items/totalCount envelope).
const KeyPrefix = "content:"

// Store is a read-only content store over Redis. Nothing here writes keys;
// they are published by whatever exports the CMS.
type Store struct{ c *redis.Client }

func New(addr, pass string, db int) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func NewWithClient(c *redis.Client) *Store { return &Store{c: c} }

// Connect builds the store and verifies connectivity with a ping.
func Connect(ctx context.Context, addr, pass string, db int) (*Store, error) {
	s := New(addr, pass, db)
	if err := s.Ping(ctx); err != nil {
		_ = s.c.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return s, nil
}

func Key(c domain.CollectionID) string { return KeyPrefix + string(c) }

func (s *Store) Name() string { return "redis" }

func (s *Store) Fetch(ctx context.Context, col domain.CollectionID) (domain.RawPage, error) {
	v, err := s.c.Get(ctx, Key(col)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RawPage{}, domain.NotFound(col)
	}
	if err != nil {
		return domain.RawPage{}, domain.Transient(col, err)
	}
	page, err := domain.ParseRawPage(v)
	if err != nil {
		return domain.RawPage{}, domain.Malformed(col, err)
	}
	return page, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.c.Ping(ctx).Err() }

func (s *Store) Close() error { return s.c.Close() }
