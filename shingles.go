// Package shingles produces overlapping fixed-size windows ("shingles")
// over slices, UTF-8 text, and two dimensional grids of rows, without
// copying the underlying data. Every window handed out is a sub-slice
// or substring of the caller's data.
package shingles

import "iter"

// SliceShingles produces windows over a slice of elements. Window
// boundaries are element indices.
type SliceShingles[T any] struct {
	data []T
	size int
	step int
}

// NewSlice creates a windower over data with the given window size and
// a step of 1.
func NewSlice[T any](data []T, size int) (*SliceShingles[T], error) {
	return NewSliceWithStep(data, size, 1)
}

// NewSliceWithStep creates a windower over data. Consecutive windows
// start step elements apart.
func NewSliceWithStep[T any](data []T, size, step int) (*SliceShingles[T], error) {
	if err := validate(size, step); err != nil {
		return nil, err
	}
	return &SliceShingles[T]{
		data: data,
		size: size,
		step: step,
	}, nil
}

// Next returns the next window. The returned slice shares its backing
// array with the caller's data, and its capacity is clipped to the
// window so that appending to it never overwrites the caller's data.
func (s *SliceShingles[T]) Next() ([]T, bool) {
	if len(s.data) < s.size {
		return nil, false
	}

	ret := s.data[0:s.size:s.size]
	s.data = s.data[min(s.step, len(s.data)):]
	return ret, true
}

// All returns the remaining windows as a sequence.
func (s *SliceShingles[T]) All() iter.Seq[[]T] {
	return Seq[[]T](s)
}

// Hashes returns an iterator over the hashes of the remaining windows.
func (s *SliceShingles[T]) Hashes(options ...HashOption) *ShingleHasher[[]T] {
	return NewShingleHasher[[]T](s, EncodeElements[T], options...)
}
