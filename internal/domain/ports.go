package domain

import "context"

// RawPage is one page of loosely typed records exactly as a store returned it.
type RawPage struct {
	Items []map[string]any
	// TotalCount is the store's own count; it may exceed len(Items) when
	// the store has more pages than the single page we read.
	TotalCount int
}

// ContentStore is the remote content service boundary.
//
// Implementations perform one round trip per Fetch and return *FetchError
// values classified as ErrNotFound, ErrTransient or ErrMalformed.
type ContentStore interface {
	Fetch(ctx context.Context, c CollectionID) (RawPage, error)
	Ping(ctx context.Context) error
	Name() string
}
