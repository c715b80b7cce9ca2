package future

import (
	"context"
	"fmt"
)

// Future is a lazy computation producing a T or an error when run.
// The zero Future resolves to the zero value of T.
type Future[T any] struct {
	run func(ctx context.Context) (T, error)
}

// New wraps fn into a Future. fn is invoked once per Run.
func New[T any](fn func(ctx context.Context) (T, error)) Future[T] {
	return Future[T]{run: fn}
}

// Of returns a Future that resolves to value.
func Of[T any](value T) Future[T] {
	return New(func(context.Context) (T, error) {
		return value, nil
	})
}

// Reject returns a Future that fails with err.
func Reject[T any](err error) Future[T] {
	return New(func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

// Try runs a synchronous function as a Future. A panic inside fn is
// converted into a failure instead of unwinding the caller.
func Try[T any](fn func() (T, error)) Future[T] {
	return New(func(context.Context) (value T, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("future: recovered panic: %v", r)
			}
		}()
		return fn()
	})
}

// Run executes the computation and blocks until it completes.
func (f Future[T]) Run(ctx context.Context) (T, error) {
	if f.run == nil {
		var zero T
		return zero, nil
	}
	return f.run(ctx)
}

// Observe attaches paired hooks that see the outcome of f.
// Hooks are observational: the value or error of f propagates unchanged.
// Either hook may be nil.
func (f Future[T]) Observe(onFailure func(error), onSuccess func(T)) Future[T] {
	return New(func(ctx context.Context) (T, error) {
		value, err := f.Run(ctx)
		if err != nil {
			if onFailure != nil {
				onFailure(err)
			}
			return value, err
		}
		if onSuccess != nil {
			onSuccess(value)
		}
		return value, nil
	})
}

// ChainRej turns a failure of f into the Future returned by fn.
// Successful results pass through untouched.
func (f Future[T]) ChainRej(fn func(error) Future[T]) Future[T] {
	return New(func(ctx context.Context) (T, error) {
		value, err := f.Run(ctx)
		if err != nil {
			return fn(err).Run(ctx)
		}
		return value, nil
	})
}

// Map transforms the successful result of f.
func Map[T, U any](f Future[T], fn func(T) U) Future[U] {
	return New(func(ctx context.Context) (U, error) {
		value, err := f.Run(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(value), nil
	})
}

// Chain sequences fn after f, feeding it the result of f.
// fn is not called when f fails.
func Chain[T, U any](f Future[T], fn func(T) Future[U]) Future[U] {
	return New(func(ctx context.Context) (U, error) {
		value, err := f.Run(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(value).Run(ctx)
	})
}
