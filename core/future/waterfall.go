package future

// Waterfall folds steps left to right: each step receives the previous
// result, the first step receives initial. The pipeline stops on the first
// failing step.
func Waterfall[T any](steps ...Step[T, T]) Step[T, T] {
	return func(initial T) Future[T] {
		sofar := Of(initial)
		for _, next := range steps {
			sofar = Chain(sofar, next)
		}
		return sofar
	}
}
