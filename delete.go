/*
 * delete.go, part of gochem.
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

package chem

import (
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
)

// DeleteAtoms removes the atoms in set and returns how many were removed.
// Their bonds are deleted first. The remaining atoms are renumbered keeping
// their relative order, and so are the bonds, the optional attribute arrays,
// the taint table and the hierarchy ranges. Models, chains and groups left
// without atoms are kept, empty. The spatial index is invalidated.
//
// Atom and Bond pointers obtained before the call are not valid afterwards.
func (s *Store) DeleteAtoms(set *bitset.BitSet) int {
	n := len(s.atoms)
	if set == nil {
		return 0
	}
	del := bitset.New(uint(n))
	for i, ok := set.NextSet(0); ok && int(i) < n; i, ok = set.NextSet(i + 1) {
		del.Set(i)
	}
	ndel := int(del.Count())
	if ndel == 0 {
		return 0
	}
	nb := s.DeleteBonds(s.BondsOfAtoms(del, false))

	delBefore := make([]int, n+1)
	remap := make([]int, n)
	j := 0
	for i := 0; i < n; i++ {
		delBefore[i] = i - j
		if del.Test(uint(i)) {
			if len(s.atoms[i].bonds) != 0 {
				panic(ErrDanglingBond)
			}
			remap[i] = -1
			continue
		}
		remap[i] = j
		s.atoms[j] = s.atoms[i]
		s.atoms[j].index = j
		j++
	}
	delBefore[n] = n - j
	clear(s.atoms[j:])
	s.atoms = s.atoms[:j]
	for i := range s.bonds {
		b := &s.bonds[i]
		b.at1, b.at2 = remap[b.at1], remap[b.at2]
	}
	s.attrs.delete(del)
	s.taints.Delete(del)
	s.shrinkRanges(delBefore)
	s.index.InvalidateAll()
	s.maxBondingRadius = -1
	s.log.Debug("atoms deleted", zap.Int("atoms", ndel), zap.Int("bonds", nb), zap.Int("remaining", j))
	return ndel
}
