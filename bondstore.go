/*
 * bondstore.go, part of gochem.
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
	"slices"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/wkpark/jmol-sub011/taint"
)

// BondAtoms joins atoms a and b with a bond of the given order and diameter,
// and returns the index of the bond. If the atoms are already bonded, the
// existing bond gets the new order and mad, and created is false; the order
// is then a user override, as with SetBondOrder. New bonds are visible.
func (s *Store) BondAtoms(a, b int, order BondOrder, mad int16) (index int, created bool, err error) {
	if a < 0 || a >= len(s.atoms) || b < 0 || b >= len(s.atoms) {
		return -1, false, newError(ErrOutOfRange, false, "BondAtoms", "atoms %d-%d of %d", a, b, len(s.atoms))
	}
	if a == b {
		return -1, false, newError(ErrSameAtom, false, "BondAtoms", "atom %d", a)
	}
	if i, ok := s.BondBetween(a, b); ok {
		s.SetBondOrder(i, order)
		s.bonds[i].mad = mad
		return i, false, nil
	}
	i := len(s.bonds)
	s.bonds = slices.Grow(s.bonds, 1)
	s.bonds = append(s.bonds, Bond{index: i, at1: a, at2: b, order: order, mad: mad, visible: true})
	s.addAtomBond(a, i)
	s.addAtomBond(b, i)
	s.atoms[a].nDisplayed++
	s.atoms[b].nDisplayed++
	if order == Aromatic {
		s.declaredAromatic.Set(uint(i))
	}
	return i, true, nil
}

// AssignBondOrder sets the order of bond i as a result of perception. It
// doesn't change whether the bond was declared aromatic.
func (s *Store) AssignBondOrder(i int, order BondOrder) {
	s.checkBond(i)
	s.bonds[i].order = order
}

// SetBondOrder sets the order of bond i as a user override. The bond stops
// being declared aromatic unless order is the unresolved aromatic order.
func (s *Store) SetBondOrder(i int, order BondOrder) {
	s.checkBond(i)
	s.bonds[i].order = order
	if order == Aromatic {
		s.declaredAromatic.Set(uint(i))
	} else {
		s.declaredAromatic.Clear(uint(i))
	}
}

// SetBondVisible shows or hides bond i, keeping the displayed-bond counters
// of both atoms up to date.
func (s *Store) SetBondVisible(i int, visible bool) {
	s.checkBond(i)
	b := &s.bonds[i]
	if b.visible == visible {
		return
	}
	b.visible = visible
	d := 1
	if !visible {
		d = -1
	}
	s.atoms[b.at1].nDisplayed += d
	s.atoms[b.at2].nDisplayed += d
}

func (s *Store) SetBondMad(i int, mad int16) {
	s.checkBond(i)
	s.bonds[i].mad = mad
}

// SetBondEnergy sets the energy, in kcal/mol, of hydrogen bond i.
func (s *Store) SetBondEnergy(i int, e float64) {
	s.checkBond(i)
	s.bonds[i].energy = e
}

// DeclaredAromatic returns a copy of the set of bonds given as aromatic by
// the input, or by SetBondOrder.
func (s *Store) DeclaredAromatic() *bitset.BitSet { return s.declaredAromatic.Clone() }

// IsDeclaredAromatic reports whether bond i was given as aromatic.
func (s *Store) IsDeclaredAromatic(i int) bool { return s.declaredAromatic.Test(uint(i)) }

// BondsOfOrder returns the bonds whose order has any bit of mask set. A mask
// of 0 matches every bond.
func (s *Store) BondsOfOrder(mask BondOrder) *bitset.BitSet {
	ret := bitset.New(uint(len(s.bonds)))
	for i := range s.bonds {
		if mask == 0 || s.bonds[i].order&mask != 0 {
			ret.Set(uint(i))
		}
	}
	return ret
}

// BondsOfAtoms returns the bonds with at least one end in atoms, or with
// both ends if both is true.
func (s *Store) BondsOfAtoms(atoms *bitset.BitSet, both bool) *bitset.BitSet {
	ret := bitset.New(uint(len(s.bonds)))
	for i := range s.bonds {
		b := &s.bonds[i]
		t1, t2 := atoms.Test(uint(b.at1)), atoms.Test(uint(b.at2))
		if t1 && t2 || !both && (t1 || t2) {
			ret.Set(uint(i))
		}
	}
	return ret
}

// DeleteBonds removes the bonds in set and returns how many were removed.
// The remaining bonds are renumbered, keeping their relative order.
func (s *Store) DeleteBonds(set *bitset.BitSet) int {
	if set == nil {
		return 0
	}
	n := 0
	for i, ok := set.NextSet(0); ok && int(i) < len(s.bonds); i, ok = set.NextSet(i + 1) {
		b := &s.bonds[i]
		s.removeAtomBond(b.at1, int(i))
		s.removeAtomBond(b.at2, int(i))
		if b.visible {
			s.atoms[b.at1].nDisplayed--
			s.atoms[b.at2].nDisplayed--
		}
		n++
	}
	if n == 0 {
		return 0
	}
	remap := make([]int, len(s.bonds))
	j := 0
	for i := range s.bonds {
		if set.Test(uint(i)) {
			remap[i] = -1
			continue
		}
		remap[i] = j
		s.bonds[j] = s.bonds[i]
		s.bonds[j].index = j
		j++
	}
	clear(s.bonds[j:])
	s.bonds = s.bonds[:j]
	for i := range s.atoms {
		l := s.atoms[i].bonds
		for k, v := range l {
			l[k] = remap[v]
		}
	}
	s.declaredAromatic = taint.Compact(s.declaredAromatic, set)
	s.log.Debug("bonds deleted", zap.Int("deleted", n), zap.Int("remaining", j))
	return n
}
