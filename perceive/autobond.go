/*
 * autobond.go, part of gochem.
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

package perceive

import (
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	chem "github.com/wkpark/jmol-sub011"
)

// AutoBond creates single covalent bonds between atoms of a and atoms of b
// that lie within the sum of their bonding radii plus p.Tolerance, and
// returns how many bonds were created. Pairs with both atoms in exclude are
// not bonded, and pairs already bonded are left alone. A nil set stands for
// every atom.
//
// Atoms are visited in ascending index order, and each one only looks at
// neighbors with a higher index, so every pair is examined once, lower
// index first. When an atom reaches p.MaxBondCount, the bonds examined
// later for it are the ones dropped.
func AutoBond(s *chem.Store, a, b, exclude *bitset.BitSet, p BondingParams) int {
	log := s.Logger().Named("autobond")
	maxR := s.MaxBondingRadius()
	minD2 := p.MinDistance * p.MinDistance
	created := 0
	for _, i := range members(union(a, b), s.AtomCount()) {
		at := s.Atom(i)
		r := at.BondingRadius()
		if r == 0 {
			continue
		}
		iA, iB := inSet(a, i), inSet(b, i)
		iEx := exclude != nil && exclude.Test(uint(i))
		func() {
			it := s.Spatial().QueryAtom(at.Model(), i, r+maxR+p.Tolerance, true)
			defer it.Release()
			for it.Next() {
				j := it.Atom()
				if !(iA && inSet(b, j) || iB && inSet(a, j)) {
					continue
				}
				if iEx && exclude.Test(uint(j)) {
					continue
				}
				if bondOrder(r, s.BondingRadius(j), it.Dist2(), minD2, p.Tolerance) == 0 || s.IsBonded(i, j) {
					continue
				}
				if checkValencesAndBond(s, i, j, p, log) {
					created++
				}
			}
		}()
	}
	log.Debug("autobonding done", zap.Int("created", created), zap.Float64("tolerance", p.Tolerance))
	return created
}

//bondOrder is 1 if atoms with bonding radii r1 and r2, at squared distance
//d2, should be bonded, and 0 otherwise.
func bondOrder(r1, r2, d2, minD2, tolerance float64) int {
	if r1 == 0 || r2 == 0 || d2 < minD2 {
		return 0
	}
	lim := r1 + r2 + tolerance
	if d2 > lim*lim {
		return 0
	}
	return 1
}

//checkValencesAndBond bonds i and j unless one of them is full, both carry
//a charge of the same sign, or they belong to different alternate
//locations. It reports whether a bond was created.
func checkValencesAndBond(s *chem.Store, i, j int, p BondingParams, log *zap.Logger) bool {
	ai, aj := s.Atom(i), s.Atom(j)
	if ai.BondCount() >= p.MaxBondCount || aj.BondCount() >= p.MaxBondCount {
		s.WarnOnce("autobond.maxBondCount", "maximum number of bonds reached, some bonds were not created",
			zap.Int("max", p.MaxBondCount), zap.Int("atom", i), zap.Int("near", j))
		return false
	}
	if ai.FormalCharge()*aj.FormalCharge() > 0 {
		return false
	}
	if l1, l2 := ai.AltLoc(), aj.AltLoc(); l1 != 0 && l2 != 0 && l1 != l2 {
		return false
	}
	_, created, err := s.BondAtoms(i, j, chem.Single, p.Mad)
	if err != nil {
		log.Warn("bond rejected", zap.Int("atom", i), zap.Int("near", j), zap.Error(err))
		return false
	}
	return created
}

// Rebond deletes every covalent bond of the Store and perceives them again
// over all atoms. Hydrogen bonds are kept. It returns the number of bonds
// deleted and created.
func Rebond(s *chem.Store, p BondingParams) (deleted, created int) {
	all := s.BondsOfOrder(0)
	all.InPlaceDifference(s.BondsOfOrder(chem.HydrogenMask))
	deleted = s.DeleteBonds(all)
	created = AutoBond(s, nil, nil, nil, p)
	return deleted, created
}
