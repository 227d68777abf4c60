// Package similarity compares documents through the hashes of their
// shingles.
package similarity

import (
	"iter"

	"github.com/google/btree"
)

const btreeDegree = 32

// Set is an ordered set of shingle hashes
type Set struct {
	tree *btree.BTreeG[uint64]
}

// NewSet creates an empty Set
func NewSet() *Set {
	return &Set{tree: btree.NewOrderedG[uint64](btreeDegree)}
}

// Add inserts h and reports whether it was not already present
func (s *Set) Add(h uint64) bool {
	_, found := s.tree.ReplaceOrInsert(h)
	return !found
}

// AddAll inserts every hash in seq and returns the number of hashes
// that were not already present.
func (s *Set) AddAll(seq iter.Seq[uint64]) int {
	var added int
	for h := range seq {
		if s.Add(h) {
			added++
		}
	}
	return added
}

// Has reports whether h is in the set
func (s *Set) Has(h uint64) bool {
	return s.tree.Has(h)
}

// Len returns the number of distinct hashes in the set
func (s *Set) Len() int {
	return s.tree.Len()
}

// Ascend calls fn for each hash in ascending order until fn returns false
func (s *Set) Ascend(fn func(uint64) bool) {
	s.tree.Ascend(btree.ItemIteratorG[uint64](fn))
}

// Intersection returns the number of hashes present in both sets
func Intersection(a, b *Set) int {
	if a.Len() > b.Len() {
		a, b = b, a
	}

	var n int
	a.Ascend(func(h uint64) bool {
		if b.Has(h) {
			n++
		}
		return true
	})
	return n
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets are identical and
// have a similarity of 1.
func Jaccard(a, b *Set) float64 {
	inter := Intersection(a, b)
	union := a.Len() + b.Len() - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// Containment returns the fraction of a that is also in b, |a ∩ b| / |a|.
// It returns 0 when a is empty.
func Containment(a, b *Set) float64 {
	if a.Len() == 0 {
		return 0
	}
	return float64(Intersection(a, b)) / float64(a.Len())
}
