package deferred

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// callKey is the only key used in a Deferred's group: every Deferred
// guards exactly one unit of work.
const callKey = "deferred"

// Func is the unit of work wrapped by a Deferred.
type Func[T any] func(ctx context.Context) (T, error)

// Result is delivered once to each observer.
type Result[T any] struct {
	Value T
	Err   error

	// Shared reports whether the execution was delivered to more than one observer.
	Shared bool
}

// Deferred is a not-yet-executed unit of work. At most one execution
// runs at a time, no matter how many observers are attached.
type Deferred[T any] struct {
	fn    Func[T]
	group singleflight.Group
}

// New wraps fn without running it.
func New[T any](fn Func[T]) *Deferred[T] {
	return &Deferred[T]{fn: fn}
}

// Subscribe attaches an observer, starting the execution if none is in
// flight. The observer is registered by the time Subscribe returns. The
// returned channel receives exactly one Result and is never closed.
func (d *Deferred[T]) Subscribe(ctx context.Context) <-chan Result[T] {
	detached := context.WithoutCancel(ctx)

	ch := d.group.DoChan(callKey, func() (any, error) {
		return d.fn(detached)
	})

	out := make(chan Result[T], 1)
	go func() {
		r := <-ch

		var v T
		if r.Val != nil {
			v = r.Val.(T)
		}

		out <- Result[T]{Value: v, Err: r.Err, Shared: r.Shared}
	}()

	return out
}

// Await activates or joins the execution and blocks until it resolves or
// ctx ends. Giving up on the wait does not stop the execution for other
// observers. An already-ended ctx returns without activating anything.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	select {
	case r := <-d.Subscribe(ctx):
		return r.Value, r.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Map returns a Deferred that applies fn to the successful value of d.
// Errors from d pass through untouched. The returned Deferred is lazy and
// shared in its own right; activating it activates d.
func Map[T, U any](d *Deferred[T], fn func(T) (U, error)) *Deferred[U] {
	return New(func(ctx context.Context) (U, error) {
		v, err := d.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}

		return fn(v)
	})
}
