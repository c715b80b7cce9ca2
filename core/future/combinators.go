package future

import "context"

// Step is a continuation: it consumes the current value and returns the
// Future of the next one.
type Step[T, U any] func(T) Future[U]

// Lift turns a synchronous function into a Step. Errors returned by fn and
// panics raised inside it both become failures of the resulting Future.
func Lift[T, U any](fn func(T) (U, error)) Step[T, U] {
	return func(value T) Future[U] {
		return Try(func() (U, error) {
			return fn(value)
		})
	}
}

// Noop passes its input through unchanged.
func Noop[T any]() Step[T, T] {
	return func(value T) Future[T] {
		return Of(value)
	}
}

// Tap runs fn for its side effect and passes the input through.
func Tap[T any](fn func(T)) Step[T, T] {
	return func(value T) Future[T] {
		return New(func(context.Context) (T, error) {
			fn(value)
			return value, nil
		})
	}
}

// Iff evaluates predicate on the current value and continues with onTrue or
// onFalse. A nil onFalse behaves like Noop.
func Iff[T any](predicate func(T) bool, onTrue, onFalse Step[T, T]) Step[T, T] {
	if onFalse == nil {
		onFalse = Noop[T]()
	}
	return func(value T) Future[T] {
		return New(func(ctx context.Context) (T, error) {
			if predicate(value) {
				return onTrue(value).Run(ctx)
			}
			return onFalse(value).Run(ctx)
		})
	}
}

// Void discards the result of f so futures of different types can share a Series.
func Void[T any](f Future[T]) Future[struct{}] {
	return Map(f, func(T) struct{} { return struct{}{} })
}

// Series runs steps one after another, ignoring their results.
// The first failure stops the series and is returned.
func Series(steps ...Future[struct{}]) Future[struct{}] {
	return New(func(ctx context.Context) (struct{}, error) {
		for _, step := range steps {
			if _, err := step.Run(ctx); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
}

// SwallowError suppresses a failure of f, resolving to the zero value instead.
// Use it only for operations that are explicitly best effort.
func SwallowError[T any](f Future[T]) Future[T] {
	return New(func(ctx context.Context) (T, error) {
		value, err := f.Run(ctx)
		if err != nil {
			var zero T
			return zero, nil
		}
		return value, nil
	})
}

// IgnoreValues adapts an input-less Future into a Step that ignores its input.
func IgnoreValues[T, U any](f Future[U]) Step[T, U] {
	return func(T) Future[U] {
		return f
	}
}
