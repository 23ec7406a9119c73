// Package future provides typed single-assignment futures and promises used
// at every asynchronous boundary in strata.
//
// A Future is the consumer side: any number of goroutines may wait on Ready,
// block in Get, or register completion callbacks. A Promise is the producer
// side and resolves its Future exactly once with either a value or an error.
//
// The readiness channel plus blocking getter follow the shape of
// cloud.google.com/go/pubsub's PublishResult; completion callbacks are added
// on top so completions can be composed without spawning goroutines.
//
// # Usage
//
//	p := future.NewPromise[int]()
//	go func() { p.Fulfill(42) }()
//
//	v, err := p.Future().Get(ctx)
//
// Pre-resolved futures are cheap to construct and are the uniform way to
// surface synchronous validation failures through an asynchronous API:
//
//	return future.Failed[types.Result](err)
package future

import (
	"context"
	"sync"
)

// Future holds the eventual outcome of an asynchronous operation: a value of
// type T or an error, never both. A Future resolves at most once and is safe
// for concurrent use.
type Future[T any] struct {
	mu        sync.Mutex
	ready     chan struct{}
	val       T
	err       error
	done      bool
	callbacks []func(T, error)
}

// Promise is the producer side of a Future. Exactly one of Fulfill or Fail
// takes effect; the Future observes the first resolution only.
type Promise[T any] struct {
	future *Future[T]
}

// NewPromise creates an unresolved promise/future pair.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{future: newFuture[T]()}
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{ready: make(chan struct{})}
}

// Future returns the consumer side of the promise.
func (p *Promise[T]) Future() *Future[T] {
	return p.future
}

// Fulfill resolves the future with a value.
//
// Resolution is idempotent: only the first Fulfill or Fail takes effect, and
// later calls report false without changing the outcome.
//
// Parameters:
//   - val: The value the future resolves to
//
// Returns:
//   - bool: true if this call resolved the future
func (p *Promise[T]) Fulfill(val T) bool {
	return p.future.resolve(val, nil)
}

// Fail resolves the future with an error. The error value is stored as-is
// and surfaces unchanged from Get and completion callbacks, so callers can
// match it with errors.Is or compare identity directly.
//
// Parameters:
//   - err: The error the future fails with
//
// Returns:
//   - bool: true if this call resolved the future
func (p *Promise[T]) Fail(err error) bool {
	var zero T

	return p.future.resolve(zero, err)
}

// resolve stores the outcome, closes the readiness channel, and runs pending
// callbacks in registration order. Only the first call wins.
func (f *Future[T]) resolve(val T, err error) bool {
	f.mu.Lock()
	if f.done {
		f.mu.Unlock()

		return false
	}
	f.val = val
	f.err = err
	f.done = true
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.ready)
	f.mu.Unlock()

	// Callbacks run outside the lock so they can register further callbacks
	// or inspect the future without deadlocking.
	for _, callback := range callbacks {
		callback(val, err)
	}

	return true
}

// Ready returns a channel that is closed once the future resolves. It never
// receives a value; use it in select statements.
func (f *Future[T]) Ready() <-chan struct{} {
	return f.ready
}

// Get blocks until the future resolves or ctx is done.
//
// Once the future is ready, Get always returns its outcome, even if ctx is
// already canceled; ctx only bounds the wait.
//
// Parameters:
//   - ctx: Context bounding the wait
//
// Returns:
//   - T: The resolved value (zero value on failure)
//   - error: The resolution error, or ctx.Err() if the wait was cut short
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.ready:
		return f.val, f.err
	default:
	}

	select {
	case <-f.ready:
		return f.val, f.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// Err returns the resolution error without blocking. It returns nil both
// while the future is pending and after a successful resolution; use Ready
// to distinguish the two.
func (f *Future[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}

// OnComplete registers fn to run exactly once when the future resolves.
//
// Callbacks registered before resolution run in registration order on the
// goroutine that resolves the promise. If the future is already resolved,
// fn runs immediately on the calling goroutine. Either way fn receives the
// stored value and error untouched.
//
// Parameters:
//   - fn: Callback receiving the future's outcome
func (f *Future[T]) OnComplete(fn func(T, error)) {
	f.mu.Lock()
	if f.done {
		val, err := f.val, f.err
		f.mu.Unlock()
		fn(val, err)

		return
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Fulfilled returns an already-resolved future carrying val.
func Fulfilled[T any](val T) *Future[T] {
	f := newFuture[T]()
	f.resolve(val, nil)

	return f
}

// Failed returns an already-failed future carrying err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.resolve(zero, err)

	return f
}
