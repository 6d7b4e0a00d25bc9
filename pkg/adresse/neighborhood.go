package adresse

import "iter"

// Window is an item of a sequence with its neighbours.
type Window[T any] struct {
	Prev, Cur, Next T
}

// Neighborhood yields a (previous, current, next) window for every item of
// seq. first stands in for the previous item of the first window and last
// for the next item of the last one. The returned sequence holds no state
// between iterations; ranging over it twice ranges over seq twice.
func Neighborhood[T any](seq iter.Seq[T], first, last T) iter.Seq[Window[T]] {
	return func(yield func(Window[T]) bool) {
		prev := first
		var cur T
		started := false
		for item := range seq {
			if started {
				if !yield(Window[T]{Prev: prev, Cur: cur, Next: item}) {
					return
				}
				prev = cur
			}
			cur = item
			started = true
		}
		if started {
			yield(Window[T]{Prev: prev, Cur: cur, Next: last})
		}
	}
}

// neighbours is Neighborhood over tokens with empty boundary tokens.
func neighbours(tokens iter.Seq[Token]) iter.Seq[Window[Token]] {
	return Neighborhood(tokens, Token{}, Token{})
}
