// Package deferred provides [Deferred], a lazily started result handle
// whose single execution is shared by every observer that attaches while
// it is in flight.
//
// # Activation
//
// Creating a [Deferred] does no work. The wrapped function runs the first
// time an observer calls [Deferred.Await] or [Deferred.Subscribe]:
//
//	d := deferred.New(func(ctx context.Context) (string, error) {
//		return fetch(ctx)
//	})
//	v, err := d.Await(ctx)
//
// # Sharing
//
// Observers that attach before the execution finishes receive its result
// without triggering another one. Once the result has been delivered the
// handle is idle again; the next observer starts a fresh execution. There
// is no replay of earlier results.
//
//	a := d.Subscribe(ctx)
//	b := d.Subscribe(ctx) // joins the execution started by a
//	ra, rb := <-a, <-b
//
// # Cancellation
//
// The execution runs detached from the cancellation of the context that
// started it. An observer's context only bounds how long that observer
// waits in [Deferred.Await].
package deferred
