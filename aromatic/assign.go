/*
 * assign.go, part of gochem.
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

// Package aromatic assigns Kekulé (alternating single/double) orders to
// aromatic bonds.
//
// The assignment is a local backtracking search: each unresolved aromatic
// bond is first tried as double, which requires every other aromatic bond
// at both of its atoms to become single, and otherwise as single, which
// requires both atoms to still be able to get one double bond. Systems with
// no alternating structure are left partly unresolved, and those bonds
// become single. Result.FullyResolved tells the caller whether that
// happened.
package aromatic

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	chem "github.com/wkpark/jmol-sub011"
)

// Result describes the outcome of Assign. All sets hold bond indexes of the
// bonds considered.
type Result struct {
	Double        *bitset.BitSet //bonds that ended as AromaticDouble
	Single        *bitset.BitSet //bonds that ended as AromaticSingle
	Unresolved    *bitset.BitSet //bonds made single only because nothing else worked
	Changed       *bitset.BitSet //bonds whose order differs from before the call
	FullyResolved bool
}

type assigner struct {
	s     *chem.Store
	m     *marks
	gated []int8 //per atom: 0 not computed, 1 cannot take a double bond, 2 can
}

// Assign resolves the aromatic bonds in subset (every bond if subset is
// nil). Bonds the input declared aromatic are reset to the unresolved
// Aromatic order first, so a recomputation starts over, while aromatic
// single and double orders set by the user are kept and respected.
//
// Bonds are processed in descending index order, those touching an oxygen
// first. After the search, a single bond between a monovalent neutral O
// and a P or S, or between a neutral N with two single bonds and a C with
// three, is made double unless one of its atoms already has an aromatic
// double bond.
func Assign(s *chem.Store, subset *bitset.BitSet) Result {
	log := s.Logger().Named("aromatic")
	nb := s.BondCount()
	var scope []int
	for i := nb - 1; i >= 0; i-- {
		if subset == nil || subset.Test(uint(i)) {
			scope = append(scope, i)
		}
	}
	before := make(map[int]chem.BondOrder, len(scope))
	for _, i := range scope {
		before[i] = s.Bond(i).Order()
		if s.IsDeclaredAromatic(i) {
			s.AssignBondOrder(i, chem.Aromatic)
		}
	}

	a := &assigner{s: s, m: newMarks(nb), gated: make([]int8, s.AtomCount())}
	for i := 0; i < nb; i++ {
		switch s.Bond(i).Order() {
		case chem.AromaticSingle:
			a.m.preset(i, false)
		case chem.AromaticDouble:
			a.m.preset(i, true)
		}
	}

	var pending []int
	for _, i := range scope {
		b := s.Bond(i)
		if b.Order() != chem.Aromatic || a.m.resolved(i) {
			continue
		}
		a1, a2 := b.Atoms()
		if s.Atom(a1).Element() == 8 || s.Atom(a2).Element() == 8 {
			a.resolve(i)
			continue
		}
		pending = append(pending, i)
	}
	for _, i := range pending {
		if !a.m.resolved(i) {
			a.resolve(i)
		}
	}

	ret := Result{
		Double:     bitset.New(uint(nb)),
		Single:     bitset.New(uint(nb)),
		Unresolved: bitset.New(uint(nb)),
		Changed:    bitset.New(uint(nb)),
	}
	for _, i := range scope {
		o := s.Bond(i).Order()
		switch {
		case a.m.isDouble(i):
			s.AssignBondOrder(i, chem.AromaticDouble)
		case a.m.isSingle(i):
			s.AssignBondOrder(i, chem.AromaticSingle)
		case o == chem.Aromatic:
			s.AssignBondOrder(i, chem.AromaticSingle)
			ret.Unresolved.Set(uint(i))
		}
	}
	a.fixNandO(scope, ret.Unresolved)
	for _, i := range scope {
		o := s.Bond(i).Order()
		switch o {
		case chem.AromaticDouble:
			ret.Double.Set(uint(i))
		case chem.AromaticSingle:
			ret.Single.Set(uint(i))
		}
		if o != before[i] {
			ret.Changed.Set(uint(i))
		}
	}
	ret.FullyResolved = ret.Unresolved.None()
	log.Debug("aromatic bonds assigned", zap.Uint("double", ret.Double.Count()), zap.Uint("single", ret.Single.Count()),
		zap.Uint("unresolved", ret.Unresolved.Count()), zap.Uint("changed", ret.Changed.Count()))
	return ret
}

//resolve runs a top-level attempt on bond b, double first.
func (a *assigner) resolve(b int) {
	t := a.m.begin()
	if !a.assignDouble(b) {
		a.assignSingle(b)
	}
	t.commit()
}

func (a *assigner) assignDouble(b int) bool {
	if a.m.isSingle(b) {
		return false
	}
	if a.m.isDouble(b) {
		return true
	}
	a1, a2 := a.s.Bond(b).Atoms()
	if a.mustBeSingle(a1) || a.mustBeSingle(a2) {
		return false
	}
	t := a.m.begin()
	a.m.markDouble(b)
	if !a.singleForAtom(a1, b) || !a.singleForAtom(a2, b) {
		t.rollback()
		return false
	}
	return true
}

func (a *assigner) assignSingle(b int) bool {
	if a.m.isDouble(b) {
		return false
	}
	if a.m.isSingle(b) {
		return true
	}
	a1, a2 := a.s.Bond(b).Atoms()
	t := a.m.begin()
	a.m.markSingle(b)
	if !a.doubleForAtom(a1) || !a.doubleForAtom(a2) {
		t.rollback()
		return false
	}
	return true
}

//singleForAtom makes every aromatic bond of atom other than not single.
func (a *assigner) singleForAtom(atom, not int) bool {
	bonds := a.s.AtomBonds(atom)
	for k := len(bonds) - 1; k >= 0; k-- {
		b := bonds[k]
		if b == not || !a.s.Bond(b).Order().IsAromatic() || a.m.isSingle(b) {
			continue
		}
		if a.m.isDouble(b) || !a.assignSingle(b) {
			return false
		}
	}
	return true
}

//doubleForAtom makes sure atom ends with one double aromatic bond, or
//with none if it cannot take one, turning the rest single.
func (a *assigner) doubleForAtom(atom int) bool {
	bonds := a.s.AtomBonds(atom)
	haveDouble := a.mustBeSingle(atom)
	aromatic := false
	for _, b := range bonds {
		if a.m.isDouble(b) {
			haveDouble = true
		}
		if a.s.Bond(b).Order().IsAromatic() {
			aromatic = true
		}
	}
	for k := len(bonds) - 1; k >= 0; k-- {
		b := bonds[k]
		if !a.s.Bond(b).Order().IsAromatic() || a.m.resolved(b) {
			continue
		}
		if !haveDouble && a.assignDouble(b) {
			haveDouble = true
		} else if !a.assignSingle(b) {
			return false
		}
	}
	return haveDouble || !aromatic
}

//mustBeSingle reports whether atom i cannot take an aromatic double bond:
//a carbon with four neighbors, a backbone amide N, a trivalent
//non-positive N, a divalent non-positive O that is not a carbonyl O, a
//cysteine S or a divalent non-positive S, or any other element.
func (a *assigner) mustBeSingle(i int) bool {
	if a.gated[i] == 0 {
		a.gated[i] = 2
		if a.computeGate(i) {
			a.gated[i] = 1
		}
	}
	return a.gated[i] == 1
}

func (a *assigner) computeGate(i int) bool {
	s := a.s
	at := s.Atom(i)
	n := s.CovalentBondCount(i)
	q := at.FormalCharge()
	g := s.GroupOf(i)
	name := strings.ToUpper(s.AtomName(i))
	switch at.Element() {
	case 6:
		return n == 4
	case 7:
		return g.IsAminoAcid() && name == "N" || n == 3 && q < 1
	case 8:
		return !(g.IsAminoAcid() && name == "O") && n == 2 && q < 1
	case 16:
		return strings.EqualFold(g.Name(), "CYS") || n == 2 && q < 1
	}
	return true
}

//fixNandO promotes single aromatic bonds around N and O that were left
//with too few bonds. An atom never gets a second aromatic double bond, so
//a P or S takes at most one of its terminal oxygens.
func (a *assigner) fixNandO(scope []int, unresolved *bitset.BitSet) {
	s := a.s
	for _, i := range scope {
		b := s.Bond(i)
		if b.Order() != chem.AromaticSingle {
			continue
		}
		x, y := b.Atoms()
		if e := s.Atom(y).Element(); e == 7 || e == 8 {
			x, y = y, x
		}
		ax, ay := s.Atom(x), s.Atom(y)
		if ax.FormalCharge() != 0 {
			continue
		}
		promote := false
		switch ax.Element() {
		case 8:
			e := ay.Element()
			promote = s.CovalentBondCount(x) == 1 && (e == 15 || e == 16)
		case 7:
			promote = s.CovalentBondCount(x) == 2 && s.Valence(x) == 2 &&
				ay.Element() == 6 && s.CovalentBondCount(y) == 3 && s.Valence(y) == 3
		}
		if promote && !a.hasAromaticDouble(x) && !a.hasAromaticDouble(y) {
			s.AssignBondOrder(i, chem.AromaticDouble)
			unresolved.Clear(uint(i))
		}
	}
}

func (a *assigner) hasAromaticDouble(atom int) bool {
	for _, b := range a.s.AtomBonds(atom) {
		if a.s.Bond(b).Order() == chem.AromaticDouble {
			return true
		}
	}
	return false
}
