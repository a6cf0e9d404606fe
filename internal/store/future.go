package store

import "context"

// Future is the result of a dispatched async action.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func rejectedFuture[T any](err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(*new(T), err)
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.val, f.err = v, err
	close(f.done)
}

// Done is closed once the action settled and the store has been updated.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the action settles or ctx is done. Giving up on the
// wait does not cancel the action.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
