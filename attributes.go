/*
 * attributes.go, part of gochem.
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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wkpark/jmol-sub011/taint"
)

//attributes holds the optional per-atom arrays. Each one stays nil until
//some atom gets a value different from the default, so structures without
//names, occupancies or vibrations don't pay for them.
type attributes struct {
	names          []string
	types          []string
	numbers        []int
	seqIDs         []int
	occupancies    []float64
	partialCharges []float64
	bfactors       []float64
	hydrophobicity []float64
	vdwRadii       []float64
	vibrations     []r3.Vec
	tensors        []*mat.SymDense
	n              int //number of atoms the allocated arrays cover
}

//lazySet sets (*arr)[i] = v, allocating the array with def in every
//position if needed. It returns whether the stored value changed.
func lazySet[T comparable](arr *[]T, n, i int, def, v T) bool {
	if *arr == nil {
		if v == def {
			return false
		}
		a := make([]T, n)
		for k := range a {
			a[k] = def
		}
		*arr = a
	}
	if (*arr)[i] == v {
		return false
	}
	(*arr)[i] = v
	return true
}

func lazyGet[T any](arr []T, i int, def T) T {
	if arr == nil {
		return def
	}
	return arr[i]
}

func lazyAppend[T any](arr *[]T, def T) {
	if *arr != nil {
		*arr = append(*arr, def)
	}
}

//compactSlice removes from arr the positions in deleted, keeping the order.
func compactSlice[T any](arr []T, deleted *bitset.BitSet) []T {
	if arr == nil {
		return nil
	}
	j := 0
	for i := range arr {
		if deleted.Test(uint(i)) {
			continue
		}
		arr[j] = arr[i]
		j++
	}
	var zero T
	for k := j; k < len(arr); k++ {
		arr[k] = zero
	}
	return arr[:j]
}

func (a *attributes) appendAtom(d AtomData) {
	i := a.n
	a.n++
	lazyAppend(&a.names, "")
	lazyAppend(&a.types, "")
	lazyAppend(&a.numbers, 0)
	lazyAppend(&a.seqIDs, 0)
	lazyAppend(&a.occupancies, 1)
	lazyAppend(&a.partialCharges, 0)
	lazyAppend(&a.bfactors, 0)
	lazyAppend(&a.hydrophobicity, 0)
	lazyAppend(&a.vdwRadii, 0)
	lazyAppend(&a.vibrations, r3.Vec{})
	lazyAppend(&a.tensors, nil)
	lazySet(&a.names, a.n, i, "", d.Name)
	lazySet(&a.types, a.n, i, "", d.Type)
	lazySet(&a.numbers, a.n, i, 0, d.Number)
	if d.HasOccupancy {
		lazySet(&a.occupancies, a.n, i, 1, d.Occupancy)
	}
	lazySet(&a.partialCharges, a.n, i, 0, d.PartialCharge)
	lazySet(&a.bfactors, a.n, i, 0, d.Bfactor)
	if d.Vibration != nil {
		lazySet(&a.vibrations, a.n, i, r3.Vec{}, *d.Vibration)
	}
}

func (a *attributes) delete(deleted *bitset.BitSet) {
	a.names = compactSlice(a.names, deleted)
	a.types = compactSlice(a.types, deleted)
	a.numbers = compactSlice(a.numbers, deleted)
	a.seqIDs = compactSlice(a.seqIDs, deleted)
	a.occupancies = compactSlice(a.occupancies, deleted)
	a.partialCharges = compactSlice(a.partialCharges, deleted)
	a.bfactors = compactSlice(a.bfactors, deleted)
	a.hydrophobicity = compactSlice(a.hydrophobicity, deleted)
	a.vdwRadii = compactSlice(a.vdwRadii, deleted)
	a.vibrations = compactSlice(a.vibrations, deleted)
	a.tensors = compactSlice(a.tensors, deleted)
	var gone int
	for i, ok := deleted.NextSet(0); ok && int(i) < a.n; i, ok = deleted.NextSet(i + 1) {
		gone++
	}
	a.n -= gone
}

//taintIf taints atom i in c when changed is true, and returns changed.
func (s *Store) taintIf(changed bool, i int, c taint.Category) bool {
	if changed {
		s.Taint(i, c)
	}
	return changed
}

//Getters and setters. Every setter returns whether the value actually
//changed, and only then taints the atom.

// SetPosition moves atom i.
func (s *Store) SetPosition(i int, p r3.Vec) bool {
	s.checkAtom(i)
	if s.atoms[i].pos == p {
		return false
	}
	s.atoms[i].pos = p
	return s.taintIf(true, i, taint.Coord)
}

// SetElement changes the atomic number of atom i.
func (s *Store) SetElement(i, element int) bool {
	s.checkAtom(i)
	if s.atoms[i].element == element {
		return false
	}
	s.atoms[i].element = element
	s.maxBondingRadius = -1
	return s.taintIf(true, i, taint.Element)
}

func (s *Store) SetFormalCharge(i, charge int) bool {
	s.checkAtom(i)
	if s.atoms[i].formalCharge == charge {
		return false
	}
	s.atoms[i].formalCharge = charge
	s.maxBondingRadius = -1
	return s.taintIf(true, i, taint.FormalCharge)
}

// SetBondingRadius overrides the bonding radius of atom i. A radius of 0
// goes back to the element table.
func (s *Store) SetBondingRadius(i int, r float64) bool {
	s.checkAtom(i)
	if r < 0 {
		r = 0
	}
	if s.atoms[i].bondingRadius == r {
		return false
	}
	s.atoms[i].bondingRadius = r
	s.maxBondingRadius = -1
	return s.taintIf(true, i, taint.BondingRadius)
}

// SetValence sets an explicit valence for atom i. A negative value goes back
// to deriving it from the bonds.
func (s *Store) SetValence(i, v int) bool {
	s.checkAtom(i)
	if v < 0 {
		v = -1
	}
	if s.atoms[i].valence == v {
		return false
	}
	s.atoms[i].valence = v
	return s.taintIf(true, i, taint.Valence)
}

func (s *Store) AtomName(i int) string {
	s.checkAtom(i)
	return lazyGet(s.attrs.names, i, "")
}

func (s *Store) SetAtomName(i int, name string) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.names, s.attrs.n, i, "", name), i, taint.AtomName)
}

// AtomType returns the force-field type of atom i, or its name if no type
// was given.
func (s *Store) AtomType(i int) string {
	s.checkAtom(i)
	if t := lazyGet(s.attrs.types, i, ""); t != "" {
		return t
	}
	return s.AtomName(i)
}

func (s *Store) SetAtomType(i int, t string) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.types, s.attrs.n, i, "", t), i, taint.AtomType)
}

// AtomNumber returns the serial number of atom i from the input, or i+1 if
// there was none.
func (s *Store) AtomNumber(i int) int {
	s.checkAtom(i)
	if n := lazyGet(s.attrs.numbers, i, 0); n != 0 {
		return n
	}
	return i + 1
}

func (s *Store) SetAtomNumber(i, n int) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.numbers, s.attrs.n, i, 0, n), i, taint.AtomNo)
}

// SeqID returns the sequence number set for atom i, or the sequence number
// of its group.
func (s *Store) SeqID(i int) int {
	s.checkAtom(i)
	if n := lazyGet(s.attrs.seqIDs, i, 0); n != 0 {
		return n
	}
	return s.groups[s.atoms[i].group].SeqNumber()
}

func (s *Store) SetSeqID(i, n int) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.seqIDs, s.attrs.n, i, 0, n), i, taint.SeqID)
}

// Occupancy returns the occupancy of atom i as a fraction, 1 by default.
func (s *Store) Occupancy(i int) float64 {
	s.checkAtom(i)
	return lazyGet(s.attrs.occupancies, i, 1)
}

func (s *Store) SetOccupancy(i int, o float64) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.occupancies, s.attrs.n, i, 1, o), i, taint.Occupancy)
}

func (s *Store) PartialCharge(i int) float64 {
	s.checkAtom(i)
	return lazyGet(s.attrs.partialCharges, i, 0)
}

func (s *Store) SetPartialCharge(i int, q float64) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.partialCharges, s.attrs.n, i, 0, q), i, taint.PartialCharge)
}

// Bfactor returns the temperature factor of atom i.
func (s *Store) Bfactor(i int) float64 {
	s.checkAtom(i)
	return lazyGet(s.attrs.bfactors, i, 0)
}

func (s *Store) SetBfactor(i int, b float64) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.bfactors, s.attrs.n, i, 0, b), i, taint.Temperature)
}

func (s *Store) Hydrophobicity(i int) float64 {
	s.checkAtom(i)
	return lazyGet(s.attrs.hydrophobicity, i, 0)
}

func (s *Store) SetHydrophobicity(i int, h float64) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.hydrophobicity, s.attrs.n, i, 0, h), i, taint.Hydrophobicity)
}

// VdwRadius returns the van der Waals radius of atom i: the value set for
// it, or the element table value.
func (s *Store) VdwRadius(i int) float64 {
	s.checkAtom(i)
	if r := lazyGet(s.attrs.vdwRadii, i, 0); r > 0 {
		return r
	}
	return VdwRadius(s.atoms[i].element)
}

func (s *Store) SetVdwRadius(i int, r float64) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.vdwRadii, s.attrs.n, i, 0, r), i, taint.VanDerWaals)
}

// Vibration returns the vibration vector of atom i, and false if it has none.
func (s *Store) Vibration(i int) (r3.Vec, bool) {
	s.checkAtom(i)
	v := lazyGet(s.attrs.vibrations, i, r3.Vec{})
	return v, v != r3.Vec{}
}

func (s *Store) SetVibration(i int, v r3.Vec) bool {
	s.checkAtom(i)
	return s.taintIf(lazySet(&s.attrs.vibrations, s.attrs.n, i, r3.Vec{}, v), i, taint.Vibration)
}

// Tensor returns the anisotropic tensor (ADP, NMR and the like) of atom i,
// or nil. The matrix belongs to the Store.
func (s *Store) Tensor(i int) *mat.SymDense {
	s.checkAtom(i)
	return lazyGet(s.attrs.tensors, i, nil)
}

// SetTensor attaches a 3x3 symmetric tensor to atom i. Tensors are not
// tracked by the taint table.
func (s *Store) SetTensor(i int, t *mat.SymDense) error {
	s.checkAtom(i)
	if t != nil && t.SymmetricDim() != 3 {
		return newError(ErrBadRecord, false, "SetTensor", "tensor of dimension %d", t.SymmetricDim())
	}
	lazySet(&s.attrs.tensors, s.attrs.n, i, nil, t)
	return nil
}
