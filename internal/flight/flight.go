// Package flight coalesces concurrent loads for the same key into a single
// execution whose result is shared by every waiter.
package flight

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group is a typed wrapper around singleflight.Group. Concurrent Do calls
// with the same key share one execution of fn; the in-flight entry is
// dropped once fn settles, so a failed load is never cached.
type Group[V any] struct {
	sf singleflight.Group
}

// Do executes fn for key, coalescing with any in-flight execution for the
// same key. All waiters receive the same value or error. shared reports
// whether the result was given to more than one caller.
//
// If ctx is cancelled while waiting, Do returns ctx.Err() and detaches this
// caller only; the execution continues for the remaining waiters.
func (g *Group[V]) Do(ctx context.Context, key string, fn func() (V, error)) (v V, shared bool, err error) {
	ch := g.sf.DoChan(key, func() (any, error) {
		return fn()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return v, res.Shared, res.Err
		}
		return res.Val.(V), res.Shared, nil
	case <-ctx.Done():
		return v, false, ctx.Err()
	}
}
