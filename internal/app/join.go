package app

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"lakeshore_hotel/internal/domain"
)

// Task fetches into a private buffer. The returned commit publishes that
// buffer to the caller and is only invoked once every task in a join succeeded.
type Task func(ctx context.Context) (commit func(), err error)

// Fetch binds GetAll[T] into a Task that publishes into dst.
func Fetch[T domain.Record](c *Client, dst *Result[T]) Task {
	return func(ctx context.Context) (func(), error) {
		r, err := GetAll[T](ctx, c)
		if err != nil {
			return nil, err
		}
		return func() { *dst = r }, nil
	}
}

// JoinAll runs tasks concurrently and waits for all of them.
//
// If any task fails, nothing is committed, the shared context is cancelled,
// and the result is the first failure joined with every other failure that
// was not just a reaction to that cancellation.
func JoinAll(ctx context.Context, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	commits := make([]func(), len(tasks))
	errs := make([]error, len(tasks))

	for i, t := range tasks {
		g.Go(func() error {
			commit, err := t(gctx)
			if err != nil {
				errs[i] = err
				return err
			}
			commits[i] = commit
			return nil
		})
	}

	if first := g.Wait(); first != nil {
		return aggregate(first, errs)
	}
	for _, commit := range commits {
		if commit != nil {
			commit()
		}
	}
	return nil
}

func aggregate(first error, errs []error) error {
	out := []error{first}
	for _, err := range errs {
		if err == nil || err == first || errors.Is(err, context.Canceled) {
			continue
		}
		out = append(out, err)
	}
	if len(out) == 1 {
		return first
	}
	return errors.Join(out...)
}
