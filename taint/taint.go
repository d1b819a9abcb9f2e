/*
 * taint.go, part of gochem.
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

// Package taint keeps, for each atom attribute category, the set of atoms
// whose value was changed after loading. A state writer reads these sets to
// emit only the commands needed to reproduce the current structure.
package taint

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Category is an attribute family that can be tainted.
type Category int

const (
	AtomName Category = iota
	AtomType
	Coord
	Element
	FormalCharge
	Hydrophobicity
	BondingRadius
	Occupancy
	PartialCharge
	Temperature
	Valence
	VanDerWaals
	Vibration
	AtomNo
	SeqID
	NumCategories
)

var categoryNames = [NumCategories]string{
	"atomName",
	"atomType",
	"coord",
	"element",
	"formalCharge",
	"hydrophobicity",
	"bondingRadius",
	"occupancy",
	"partialCharge",
	"temperature",
	"valence",
	"vanderWaals",
	"vibrationVector",
	"atomNo",
	"seqID",
}

func (c Category) String() string {
	if c < 0 || c >= NumCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory returns the category with the given name. The comparison
// is case-insensitive.
func ParseCategory(name string) (Category, error) {
	for i, v := range categoryNames {
		if strings.EqualFold(v, name) {
			return Category(i), nil
		}
	}
	return -1, fmt.Errorf("taint: unknown category %q", name)
}

// Table holds one bitset per category. The zero value is not usable, use New.
// A disabled table ignores Taint calls and reports nothing as tainted.
type Table struct {
	enabled bool
	sets    [NumCategories]*bitset.BitSet
}

// New returns an empty table. If enabled is false, the table starts disabled.
func New(enabled bool) *Table {
	return &Table{enabled: enabled}
}

func (T *Table) Enabled() bool {
	return T.enabled
}

// SetEnabled switches tracking on or off. Switching it off drops every
// recorded taint.
func (T *Table) SetEnabled(on bool) {
	T.enabled = on
	if !on {
		T.ClearAll()
	}
}

func (T *Table) valid(c Category) {
	if c < 0 || c >= NumCategories {
		panic(fmt.Sprintf("taint: invalid category %d", int(c)))
	}
}

// Taint marks atom as changed in category c. It returns false if nothing
// was recorded because tracking is disabled.
func (T *Table) Taint(atom int, c Category) bool {
	T.valid(c)
	if !T.enabled || atom < 0 {
		return false
	}
	if T.sets[c] == nil {
		T.sets[c] = bitset.New(uint(atom + 1))
	}
	T.sets[c].Set(uint(atom))
	return true
}

// Untaint clears the mark of atom in category c.
func (T *Table) Untaint(atom int, c Category) {
	T.valid(c)
	if T.sets[c] == nil || atom < 0 {
		return
	}
	T.sets[c].Clear(uint(atom))
}

// IsTainted reports whether atom is marked in category c.
func (T *Table) IsTainted(atom int, c Category) bool {
	T.valid(c)
	return atom >= 0 && T.sets[c] != nil && T.sets[c].Test(uint(atom))
}

// Any reports whether at least one atom is tainted in c.
func (T *Table) Any(c Category) bool {
	T.valid(c)
	return T.sets[c] != nil && T.sets[c].Any()
}

// Tainted returns a copy of the set for c, or nil if no atom is tainted in c.
func (T *Table) Tainted(c Category) *bitset.BitSet {
	T.valid(c)
	if T.sets[c] == nil || !T.sets[c].Any() {
		return nil
	}
	return T.sets[c].Clone()
}

// SetTainted replaces the set for c with a copy of bs. A nil bs clears c.
// The replacement is honored even when tracking is disabled, so a state
// restore can seed the table before enabling it.
func (T *Table) SetTainted(bs *bitset.BitSet, c Category) {
	T.valid(c)
	if bs == nil {
		T.sets[c] = nil
		return
	}
	T.sets[c] = bs.Clone()
}

// Clear drops every mark in c.
func (T *Table) Clear(c Category) {
	T.valid(c)
	T.sets[c] = nil
}

func (T *Table) ClearAll() {
	for i := range T.sets {
		T.sets[i] = nil
	}
}

// Delete renumbers every set after the atoms in deleted have been removed
// from the structure: marks on deleted atoms disappear, and marks on atoms
// after them move down.
func (T *Table) Delete(deleted *bitset.BitSet) {
	if deleted == nil || !deleted.Any() {
		return
	}
	for i, v := range T.sets {
		if v == nil {
			continue
		}
		T.sets[i] = Compact(v, deleted)
	}
}

// Compact returns a new set where every bit of bs not present in deleted is
// moved down by the number of deleted bits below it. bs is not modified.
func Compact(bs, deleted *bitset.BitSet) *bitset.BitSet {
	if deleted == nil || !deleted.Any() {
		return bs.Clone()
	}
	ret := bitset.New(bs.Len())
	var shift uint
	nextDel, hasDel := deleted.NextSet(0)
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		for hasDel && nextDel < i {
			shift++
			nextDel, hasDel = deleted.NextSet(nextDel + 1)
		}
		if hasDel && nextDel == i {
			continue
		}
		ret.Set(i - shift)
	}
	return ret
}
