package similarity

import (
	"iter"

	"github.com/google/btree"
	"github.com/pkg/errors"
)

// Sketch is a bottom-k MinHash sketch: it keeps only the k smallest
// distinct hashes it has seen. Two sketches built with the same k and
// the same hash function estimate the Jaccard similarity of the full
// sets in O(k) space.
type Sketch struct {
	k    int
	tree *btree.BTreeG[uint64]
}

// NewSketch creates a sketch that keeps the k smallest hashes
func NewSketch(k int) (*Sketch, error) {
	if k < 1 {
		return nil, errors.Errorf("sketch size must be at least 1, got %d", k)
	}
	return &Sketch{
		k:    k,
		tree: btree.NewOrderedG[uint64](btreeDegree),
	}, nil
}

// Add offers h to the sketch
func (s *Sketch) Add(h uint64) {
	if s.tree.Len() >= s.k {
		if largest, _ := s.tree.Max(); h >= largest {
			return
		}
	}

	if _, found := s.tree.ReplaceOrInsert(h); found {
		return
	}
	if s.tree.Len() > s.k {
		s.tree.DeleteMax()
	}
}

// AddAll offers every hash in seq to the sketch
func (s *Sketch) AddAll(seq iter.Seq[uint64]) {
	for h := range seq {
		s.Add(h)
	}
}

// K returns the maximum number of hashes kept
func (s *Sketch) K() int {
	return s.k
}

// Len returns the number of hashes currently kept
func (s *Sketch) Len() int {
	return s.tree.Len()
}

// Values returns the kept hashes in ascending order
func (s *Sketch) Values() []uint64 {
	ret := make([]uint64, 0, s.tree.Len())
	s.tree.Ascend(func(h uint64) bool {
		ret = append(ret, h)
		return true
	})
	return ret
}

// EstimateJaccard estimates the Jaccard similarity of the sets a and b
// were built from. It walks the smallest hashes of the union of both
// sketches, up to the smaller of the two k, and counts the ones present
// in both. Two empty sketches have a similarity of 1.
func EstimateJaccard(a, b *Sketch) float64 {
	k := min(a.k, b.k)
	av, bv := a.Values(), b.Values()

	var seen, shared int
	i, j := 0, 0
	for seen < k && (i < len(av) || j < len(bv)) {
		switch {
		case j >= len(bv) || (i < len(av) && av[i] < bv[j]):
			i++
		case i >= len(av) || bv[j] < av[i]:
			j++
		default:
			shared++
			i++
			j++
		}
		seen++
	}

	if seen == 0 {
		return 1
	}
	return float64(shared) / float64(seen)
}
