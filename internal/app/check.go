package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"lakeshore_hotel/internal/adapters/observability"
	"lakeshore_hotel/internal/domain"
)

// CheckResult is the outcome of reading one collection end to end.
type CheckResult struct {
	Collection domain.CollectionID
	Count      int
	Took       time.Duration
	Err        error
}

// CheckService verifies that every collection can be fetched and decoded.
// It only reads.
type CheckService struct {
	client  *Client
	workers int
}

func NewCheckService(c *Client, workers int) *CheckService {
	if workers < 1 {
		workers = 1
	}
	return &CheckService{client: c, workers: workers}
}

func (s *CheckService) Check(ctx context.Context, col domain.CollectionID) CheckResult {
	start := time.Now()
	res, err := s.client.Collection(ctx, string(col))
	return CheckResult{Collection: col, Count: res.TotalCount, Took: time.Since(start), Err: err}
}

// CheckAll checks the collections with at most s.workers in flight. Results
// keep the input order; the error joins every failed collection.
func (s *CheckService) CheckAll(ctx context.Context, cols []domain.CollectionID) ([]CheckResult, error) {
	out := make([]CheckResult, len(cols))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup

	for i, col := range cols {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(cols); j++ {
				out[j] = CheckResult{Collection: cols[j], Err: domain.Transient(cols[j], err)}
			}
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			r := s.Check(ctx, col)
			out[i] = r
			if r.Err != nil {
				log.Warn().
					Str("collection", string(col)).
					Str("kind", domain.KindOf(r.Err)).
					Str("err_type", observability.LabelErr(cause(r.Err))).
					Err(r.Err).
					Msg("check failed")
				return
			}
			log.Info().Str("collection", string(col)).Int("count", r.Count).Dur("took", r.Took).Msg("check ok")
		}()
	}
	wg.Wait()

	var errs []error
	for _, r := range out {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return out, errors.Join(errs...)
}

// cause is the underlying error behind a *FetchError.
func cause(err error) error {
	var fe *domain.FetchError
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err
	}
	return err
}
