// Package task ties background fetches to the lifetime of the page that
// started them. Once a page is closed, late results are dropped instead of
// being applied to state nobody is looking at.
package task

import (
	"context"
	"sync"
)

// Runner scopes work to one page. Close cancels everything started through
// it; a closed Runner stays closed.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewRunner(parent context.Context) *Runner {
	ctx, cancel := context.WithCancel(parent)
	return &Runner{ctx: ctx, cancel: cancel}
}

func (r *Runner) Close() {
	r.once.Do(r.cancel)
}

func (r *Runner) Closed() bool {
	return r.ctx.Err() != nil
}

// Run calls fetch with a context cancelled by either ctx or the runner, then
// hands the value to apply. When the runner was closed before fetch returned
// the result is dropped: apply is not called and Run returns nil, unless ctx
// itself was cancelled, in which case its error is returned.
func Run[T any](ctx context.Context, r *Runner, fetch func(ctx context.Context) (T, error), apply func(T)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.Closed() {
		return nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(r.ctx, cancel)
	defer stop()

	v, err := fetch(ctx)
	if perr := parent.Err(); perr != nil {
		return perr
	}
	if r.Closed() {
		return nil
	}
	if err != nil {
		return err
	}
	apply(v)
	return nil
}
