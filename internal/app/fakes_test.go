package app_test

import (
	"context"
	"fmt"
	"sync"

	"lakeshore_hotel/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu    sync.Mutex
	pages map[domain.CollectionID]domain.RawPage
	// errs are consumed one per call before the page is served; a nil entry
	// lets that call through.
	errs  map[domain.CollectionID][]error
	calls map[domain.CollectionID]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		pages: map[domain.CollectionID]domain.RawPage{},
		errs:  map[domain.CollectionID][]error{},
		calls: map[domain.CollectionID]int{},
	}
}

func (f *fakeStore) with(c domain.CollectionID, items ...map[string]any) *fakeStore {
	f.pages[c] = domain.RawPage{Items: items, TotalCount: len(items)}
	return f
}

func (f *fakeStore) failing(c domain.CollectionID, errs ...error) *fakeStore {
	f.errs[c] = append(f.errs[c], errs...)
	return f
}

func (f *fakeStore) Fetch(ctx context.Context, c domain.CollectionID) (domain.RawPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[c]++
	if q := f.errs[c]; len(q) > 0 {
		err := q[0]
		f.errs[c] = q[1:]
		if err != nil {
			return domain.RawPage{}, err
		}
	}
	if err := ctx.Err(); err != nil {
		return domain.RawPage{}, err
	}
	p, ok := f.pages[c]
	if !ok {
		return domain.RawPage{}, domain.NotFound(c)
	}
	return p, nil
}

func (f *fakeStore) Ping(context.Context) error { return nil }
func (f *fakeStore) Name() string               { return "fake" }

func (f *fakeStore) callCount(c domain.CollectionID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[c]
}

// records builds n raw records with ids prefix-0..n-1.
func records(prefix string, n int, extra func(i int) map[string]any) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		m := map[string]any{"_id": fmt.Sprintf("%s-%d", prefix, i)}
		if extra != nil {
			for k, v := range extra(i) {
				m[k] = v
			}
		}
		out[i] = m
	}
	return out
}

func ptr[T any](v T) *T { return &v }
func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
