/*
 * check.go, part of gochem.
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

import "errors"

var errInconsistent = errors.New("inconsistent structure")

// Check verifies the internal consistency of the Store: every bond appears
// in the lists of exactly its two atoms, no pair of atoms has two bonds,
// displayed-bond counters match, stored indexes match positions, and the
// hierarchy ranges are contiguous and nested. It returns nil if everything
// is fine. It is meant for tests and debugging; the Store keeps these
// properties by itself.
func (s *Store) Check() error {
	fail := func(format string, args ...interface{}) error {
		return newError(errInconsistent, true, "Check", format, args...)
	}
	seen := make(map[[2]int]int, len(s.bonds))
	for i := range s.bonds {
		b := &s.bonds[i]
		if b.index != i {
			return fail("bond %d has index %d", i, b.index)
		}
		if b.at1 < 0 || b.at1 >= len(s.atoms) || b.at2 < 0 || b.at2 >= len(s.atoms) || b.at1 == b.at2 {
			return fail("bond %d joins %d and %d", i, b.at1, b.at2)
		}
		key := [2]int{min(b.at1, b.at2), max(b.at1, b.at2)}
		if j, ok := seen[key]; ok {
			return fail("bonds %d and %d join the same atoms", j, i)
		}
		seen[key] = i
	}
	listed := make([]int, len(s.bonds))
	for i := range s.atoms {
		a := &s.atoms[i]
		if a.index != i {
			return fail("atom %d has index %d", i, a.index)
		}
		displayed := 0
		for _, v := range a.bonds {
			if v < 0 || v >= len(s.bonds) || !s.bonds[v].Contains(i) {
				return fail("atom %d lists bond %d, which is not its own", i, v)
			}
			listed[v]++
			if s.bonds[v].visible {
				displayed++
			}
		}
		if displayed != a.nDisplayed {
			return fail("atom %d counts %d displayed bonds, has %d", i, a.nDisplayed, displayed)
		}
	}
	for i, v := range listed {
		if v != 2 {
			return fail("bond %d is listed by %d atoms", i, v)
		}
	}
	return s.checkHierarchy(fail)
}

func (s *Store) checkHierarchy(fail func(string, ...interface{}) error) error {
	next := 0
	for i := range s.models {
		m := &s.models[i]
		if m.firstAtom != next {
			return fail("model %d starts at atom %d, expected %d", i, m.firstAtom, next)
		}
		next += m.atomCount
		natoms := 0
		for c := m.firstChain; c < m.firstChain+m.chainCount; c++ {
			ch := &s.chains[c]
			if ch.model != i || ch.firstAtom != m.firstAtom+natoms {
				return fail("chain %d is not contiguous in model %d", c, i)
			}
			gatoms := 0
			for g := ch.firstGroup; g < ch.firstGroup+ch.groupCount; g++ {
				gr := &s.groups[g]
				if gr.chain != c || gr.firstAtom != ch.firstAtom+gatoms {
					return fail("group %d is not contiguous in chain %d", g, c)
				}
				for a := gr.firstAtom; a < gr.firstAtom+gr.atomCount; a++ {
					if s.atoms[a].group != g || s.atoms[a].model != i {
						return fail("atom %d is outside of its group %d", a, g)
					}
				}
				gatoms += gr.atomCount
			}
			if gatoms != ch.atomCount {
				return fail("chain %d has %d atoms, its groups %d", c, ch.atomCount, gatoms)
			}
			natoms += ch.atomCount
		}
		if natoms != m.atomCount {
			return fail("model %d has %d atoms, its chains %d", i, m.atomCount, natoms)
		}
	}
	if next != len(s.atoms) {
		return fail("models cover %d of %d atoms", next, len(s.atoms))
	}
	return nil
}
