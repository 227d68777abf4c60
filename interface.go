package shingles

import "iter"

// Iterator is the pull interface shared by every windower in this
// package. Next returns the next window and true, or the zero value
// and false once the underlying data has been exhausted. Iterators
// are single pass: once false has been returned, every subsequent
// call also returns false.
type Iterator[W any] interface {
	Next() (W, bool)
}

// Seq adapts an Iterator to a range-over-func sequence. Ranging over
// the result consumes the iterator.
func Seq[W any](it Iterator[W]) iter.Seq[W] {
	return func(yield func(W) bool) {
		for {
			w, ok := it.Next()
			if !ok {
				return
			}
			if !yield(w) {
				return
			}
		}
	}
}
