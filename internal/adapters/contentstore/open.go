// Package contentstore picks the content store backend named in the config.
package contentstore

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"lakeshore_hotel/internal/adapters/cms"
	redisad "lakeshore_hotel/internal/adapters/redis"
	"lakeshore_hotel/internal/domain"
	"lakeshore_hotel/internal/shared"
	mysqlstore "lakeshore_hotel/internal/storage/mysql"
)

// Open connects the configured backend. The returned close func releases
// its connections and is never nil.
func Open(ctx context.Context, cfg shared.Config) (domain.ContentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case shared.BackendHTTP:
		c, err := cms.New(cfg.ContentBase, cfg.ContentKey, cms.Layout(cfg.ContentAPI), cfg.ContentRPS, cfg.FetchTimeout)
		if err != nil {
			return nil, noop, fmt.Errorf("content client: %w", err)
		}
		log.Info().Str("base", cfg.ContentBase).Str("layout", cfg.ContentAPI).Float64("rps", cfg.ContentRPS).Msg("using CMS content store")
		return c, noop, nil

	case shared.BackendMySQL:
		s, err := mysqlstore.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Msg("using mysql content store")
		return s, s.Close, nil

	case shared.BackendRedis:
		s, err := redisad.Connect(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("addr", cfg.RedisAddr).Int("db", cfg.RedisDB).Msg("using redis content store")
		return s, s.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown content backend %q", cfg.Backend)
}
