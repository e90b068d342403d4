package stream

// Pipe applies a series of same-typed operators to a stream from left
// to right, returning the final stream. Pipe(a, f, g) is equivalent to
// g.Apply(f.Apply(a)).
func Pipe[T any](source Stream[T], operators ...Operator[T, T]) Stream[T] {
	result := source
	for _, op := range operators {
		result = op.Apply(result)
	}
	return result
}

// Apply is a helper to apply a single operator to a stream.
// Equivalent to operator.Apply(stream) but reads left-to-right.
func Apply[IN, OUT any](source Stream[IN], operator Operator[IN, OUT]) Stream[OUT] {
	return operator.Apply(source)
}

// Through applies two operators of differing types in order, threading
// concrete generics through the composition.
func Through[A, B, C any](source Stream[A], op1 Operator[A, B], op2 Operator[B, C]) Stream[C] {
	return op2.Apply(op1.Apply(source))
}

// Through3 applies three operators of differing types in order.
func Through3[A, B, C, D any](source Stream[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D]) Stream[D] {
	return op3.Apply(op2.Apply(op1.Apply(source)))
}
