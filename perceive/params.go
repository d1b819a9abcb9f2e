/*
 * params.go, part of gochem.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

// Package perceive infers bonds from geometry: covalent bonds from
// interatomic distances and bonding radii, and hydrogen bonds from
// donor/acceptor distances and angles.
package perceive

import "github.com/bits-and-blooms/bitset"

// BondingParams controls covalent bond perception. Distances in Å.
type BondingParams struct {
	Tolerance    float64 //added to the sum of bonding radii
	MinDistance  float64 //pairs closer than this are never bonded
	MaxBondCount int     //atoms with this many bonds get no more
	Mad          int16   //diameter of new bonds
}

// DefaultBonding returns the usual covalent bonding parameters.
func DefaultBonding() BondingParams {
	return BondingParams{Tolerance: 0.45, MinDistance: 0.4, MaxBondCount: 20, Mad: 300}
}

// HBondParams controls hydrogen bond perception. Distances in Å, angles
// in degrees.
type HBondParams struct {
	DistanceMaximum      float64 //largest donor-acceptor distance
	AngleMinimum         float64 //smallest angle at the donor and acceptor attachments
	HXDistanceMinimum    float64 //H-acceptor range with explicit hydrogens
	HXDistanceMaximum    float64
	HeavyDistanceMinimum float64 //smallest donor-acceptor distance without hydrogens
	Backbone             bool    //only backbone atoms of polymer groups take part
	Mad                  int16
}

func DefaultHBonds() HBondParams {
	return HBondParams{
		DistanceMaximum:      3.25,
		AngleMinimum:         90,
		HXDistanceMinimum:    1.0,
		HXDistanceMaximum:    2.5,
		HeavyDistanceMinimum: 2.5,
		Mad:                  1,
	}
}

//A nil set means "every atom".
func inSet(bs *bitset.BitSet, i int) bool {
	return bs == nil || bs.Test(uint(i))
}

//members returns, in ascending order, the atoms below n that are in bs.
func members(bs *bitset.BitSet, n int) []int {
	if bs == nil {
		ret := make([]int, n)
		for i := range ret {
			ret[i] = i
		}
		return ret
	}
	ret := make([]int, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok && int(i) < n; i, ok = bs.NextSet(i + 1) {
		ret = append(ret, int(i))
	}
	return ret
}

//union returns a ∪ b, or nil (every atom) if either is nil.
func union(a, b *bitset.BitSet) *bitset.BitSet {
	if a == nil || b == nil {
		return nil
	}
	return a.Union(b)
}
