// Package async provides simple, generic helpers for running computations asynchronously and
// waiting for their completion.
//
// The package is centred around the generic type Future that represents the eventual result of an
// asynchronous operation. A Future can be obtained by calling Async, which starts the supplied
// function in its own goroutine and immediately returns a *Future instance. Any number of
// goroutines can then wait for the same result with Await, give up waiting with AwaitContext,
// select on Done, or poll the state with IsComplete.
//
// Sharing one Future between many waiters is how the swr package deduplicates concurrent loads of
// the same key: the first caller starts the load, every later caller awaits the stored Future.
//
// # Usage
//
//	future := async.Async(ctx, 42, func(_ context.Context, v int) (string, error) {
//	    time.Sleep(100 * time.Millisecond)
//	    return fmt.Sprintf("value is %d", v), nil
//	})
//
//	// do other work …
//	res, err := future.Await()
//
// # Cancellation
//
// If the context passed to Async is already cancelled the function is never invoked and the Future
// completes with the context error. Once started, the function runs to completion; cancelling the
// context a waiter passes to AwaitContext only stops that waiter.
//
// # Error Handling
//
// Futures return the error produced by the user callback. A panic in the callback is recovered and
// reported as an error wrapping ErrPanic.
package async
