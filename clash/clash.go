// Package clash finds steric clashes: pairs of atoms that are not bonded
// and overlap, that is, are closer than the sum of their van der Waals
// radii.
package clash

import (
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/wkpark/jmol-sub011"
)

// Pair is two overlapping atoms, A < B. Distances in Å.
type Pair struct {
	A, B     int
	Distance float64
	Overlap  float64 //scaled radii sum minus distance, > 0
}

func members(bs *bitset.BitSet, n int) []int {
	ret := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if bs == nil || bs.Test(uint(i)) {
			ret = append(ret, i)
		}
	}
	return ret
}

// Find returns the pairs made of an atom of a and an atom of b (nil means
// every atom) of the same model that are not bonded to each other and whose
// distance is less than scale times the sum of their van der Waals radii.
// Each pair appears once, and the pairs are sorted by decreasing overlap.
func Find(s *chem.Store, a, b *bitset.BitSet, scale float64) []Pair {
	n := s.AtomCount()
	bAtoms := members(b, n)
	if len(bAtoms) == 0 {
		return nil
	}
	radii := make([]float64, len(bAtoms))
	for k, j := range bAtoms {
		radii[k] = s.VdwRadius(j)
	}
	maxR := floats.Max(radii)
	seen := make(map[[2]int]bool)
	var ret []Pair
	for _, i := range members(a, n) {
		at := s.Atom(i)
		ri := s.VdwRadius(i)
		for _, h := range s.Spatial().Within(at.Model(), at.Pos(), scale*(ri+maxR)) {
			j := h.Atom
			if j == i || b != nil && !b.Test(uint(j)) || s.IsBonded(i, j) {
				continue
			}
			key := [2]int{min(i, j), max(i, j)}
			if seen[key] {
				continue
			}
			d := math.Sqrt(h.Dist2)
			if ov := scale*(ri+s.VdwRadius(j)) - d; ov > 0 {
				seen[key] = true
				ret = append(ret, Pair{A: key[0], B: key[1], Distance: d, Overlap: ov})
			}
		}
	}
	slices.SortStableFunc(ret, func(p, q Pair) int {
		switch {
		case p.Overlap > q.Overlap:
			return -1
		case p.Overlap < q.Overlap:
			return 1
		}
		return 0
	})
	s.Logger().Named("clash").Debug("clashes found", zap.Int("pairs", len(ret)), zap.Float64("scale", scale))
	return ret
}

// HighestOverlap returns the pair with the largest overlap between atoms of
// a and atoms of b, and false if there are no clashes.
func HighestOverlap(s *chem.Store, a, b *bitset.BitSet, scale float64) (Pair, bool) {
	p := Find(s, a, b, scale)
	if len(p) == 0 {
		return Pair{}, false
	}
	return p[0], true
}

// LowestDistance returns the shortest distance between an atom of a and a
// different atom of b, and the indexes of those atoms. It looks at every
// pair, regardless of models and bonds, and returns +Inf if there are none.
func LowestDistance(s *chem.Store, a, b *bitset.BitSet) (dist float64, indexes [2]int) {
	dist = math.Inf(1)
	indexes = [2]int{-1, -1}
	n := s.AtomCount()
	bAtoms := members(b, n)
	for _, i := range members(a, n) {
		pi := s.Atom(i).Pos()
		for _, j := range bAtoms {
			if i == j {
				continue
			}
			if d := r3.Norm(r3.Sub(pi, s.Atom(j).Pos())); d < dist {
				dist = d
				indexes = [2]int{i, j}
			}
		}
	}
	return dist, indexes
}
