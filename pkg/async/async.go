package async

import (
	"context"
	"fmt"
	"sync"
)

// Future represents the result of an asynchronous computation.
// Any number of goroutines may wait on the same Future; all of them observe
// the same result and error.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes first.
// Giving up on the wait does not stop the computation: the Future still
// completes and later callers of Await observe its result.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the Future has completed.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
//
// A panic inside fn does not crash the process: it completes the Future with
// an error matching ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			f.complete(*new(U), ctx.Err())
			return
		default:
		}

		defer func() {
			if r := recover(); r != nil {
				f.complete(*new(U), fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
	})
}
