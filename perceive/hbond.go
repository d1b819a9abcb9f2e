/*
 * hbond.go, part of gochem.
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
	"math"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/wkpark/jmol-sub011"
)

// HBondKind tells how hydrogen bonds were found.
type HBondKind int

const (
	NoHBonds     HBondKind = iota
	RealHBonds             //from explicit hydrogens
	PseudoHBonds           //from heavy atoms only
)

func (k HBondKind) String() string {
	switch k {
	case RealHBonds:
		return "real"
	case PseudoHBonds:
		return "pseudo"
	}
	return "none"
}

// HBondResult is the outcome of HydrogenBonds.
type HBondResult struct {
	Kind  HBondKind
	Count int
	Bonds *bitset.BitSet //indexes of the bonds created
}

// Signed returns the count as a single integer, negative when the bonds
// were found without hydrogens.
func (r HBondResult) Signed() int {
	if r.Kind == PseudoHBonds {
		return -r.Count
	}
	return r.Count
}

//Coulomb factor of the DSSP energy, q1*q2*f in cal/mol, with the
//partial charges 0.42e and 0.20e.
const hbondQ = -27888.0

// HBondEnergy returns the DSSP electrostatic energy, in cal/mol, of a
// hydrogen bond D-H···A=C given the distances H-A, C-H, C-D and A-D in Å.
func HBondEnergy(dOH, dCH, dCD, dOD float64) int {
	inv := []float64{1 / dOH, 1 / dCH, 1 / dCD, 1 / dOD}
	sign := []float64{1, -1, 1, -1}
	return int(math.Round(hbondQ * floats.Dot(sign, inv)))
}

//hbondAtoms decides which atoms can take part in hydrogen bonds.
type hbondAtoms struct {
	s        *chem.Store
	bio      chem.BioModel
	backbone bool
}

//excluded reports whether atom i is left out because it is a side chain
//atom of a polymer group and only the backbone takes part.
func (h hbondAtoms) excluded(i int) bool {
	if !h.backbone || h.bio == nil {
		return false
	}
	g := h.s.Atom(i).Group()
	if !h.bio.IsPolymer(g) {
		return false
	}
	if h.s.Atom(i).Element() == 1 {
		d := heavyNeighbor(h.s, i)
		return d < 0 || !strings.EqualFold(h.s.AtomName(d), "N")
	}
	name := strings.ToUpper(h.s.AtomName(i))
	return name != "N" && name != "O"
}

//heavyNeighbor returns the first N or O covalently bonded to atom i, or -1.
func heavyNeighbor(s *chem.Store, i int) int {
	for _, b := range s.AtomBonds(i) {
		bond := s.Bond(b)
		if !bond.Order().IsCovalent() {
			continue
		}
		j := bond.Cross(i)
		if e := s.Atom(j).Element(); e == 7 || e == 8 {
			return j
		}
	}
	return -1
}

//isCarbonylO reports whether i is an oxygen whose only covalent neighbor
//is a carbon.
func isCarbonylO(s *chem.Store, i int) bool {
	if s.Atom(i).Element() != 8 || s.CovalentBondCount(i) != 1 {
		return false
	}
	for _, b := range s.AtomBonds(i) {
		if bond := s.Bond(b); bond.Order().IsCovalent() {
			return s.Atom(bond.Cross(i)).Element() == 6
		}
	}
	return false
}

//attachedAngleCheck looks at every covalent neighbor X of atom i and the
//angle between X->i and v. It returns -1, false if any angle is below
//minAngle (radians). Otherwise it returns the neighbor with the smallest
//angle, or -1 if i has no covalent neighbors, and true.
func attachedAngleCheck(s *chem.Store, i int, v r3.Vec, minAngle float64) (int, bool) {
	pi := s.Atom(i).Pos()
	best, bestAngle := -1, math.Inf(1)
	for _, b := range s.AtomBonds(i) {
		bond := s.Bond(b)
		if !bond.Order().IsCovalent() {
			continue
		}
		x := bond.Cross(i)
		ang := math.Acos(math.Max(-1, math.Min(1, r3.Cos(r3.Sub(pi, s.Atom(x).Pos()), v))))
		if ang < minAngle {
			return -1, false
		}
		if ang < bestAngle {
			best, bestAngle = x, ang
		}
	}
	return best, true
}

// HydrogenBonds finds hydrogen bonds with donors in a and acceptors in b (nil
// means every atom), and adds them to the Store. Hydrogen bonds previously
// present between the two sets are deleted first, so running it twice gives
// the same bonds.
//
// If a contains hydrogens, the donors are hydrogens bonded to N or O and the
// acceptors N, O or S atoms; the H···A distance must lie in
// [p.HXDistanceMinimum, p.HXDistanceMaximum] and the bonds get the
// HBondRegular order and an energy. Otherwise donors and acceptors are N and
// O atoms at [p.HeavyDistanceMinimum, p.DistanceMaximum], two carbonyl
// oxygens are never paired, and the bonds get the HBondCalculated order.
// In both cases the angles at the attachments of donor and acceptor must be
// at least p.AngleMinimum, and bonded pairs are skipped.
//
// With p.Backbone set and bio given, atoms of polymer groups only take part
// if they are the backbone N or O, or a hydrogen on the backbone N.
func HydrogenBonds(s *chem.Store, a, b *bitset.BitSet, p HBondParams, bio chem.BioModel) HBondResult {
	log := s.Logger().Named("hbond")
	ret := HBondResult{Bonds: bitset.New(0)}
	n := s.AtomCount()

	old := bitset.New(uint(s.BondCount()))
	for i := 0; i < s.BondCount(); i++ {
		bond := s.Bond(i)
		if !bond.Order().IsHydrogen() {
			continue
		}
		a1, a2 := bond.Atoms()
		if inSet(a, a1) && inSet(b, a2) || inSet(a, a2) && inSet(b, a1) {
			old.Set(uint(i))
		}
	}
	if del := s.DeleteBonds(old); del > 0 {
		log.Debug("old hydrogen bonds removed", zap.Int("bonds", del))
	}

	donorSet := members(a, n)
	haveH := false
	for _, i := range donorSet {
		if s.Atom(i).Element() == 1 {
			haveH = true
			break
		}
	}
	sel := hbondAtoms{s: s, bio: bio, backbone: p.Backbone}
	minAngle := p.AngleMinimum * math.Pi / 180
	dmin, dmax := p.HeavyDistanceMinimum, p.DistanceMaximum
	order := chem.HBondCalculated
	if haveH {
		dmin, dmax = p.HXDistanceMinimum, math.Min(p.HXDistanceMaximum, p.DistanceMaximum)
		order = chem.HBondRegular
	}
	dmin2 := dmin * dmin

	for _, d := range donorSet {
		da := s.Atom(d)
		heavy := -1 //heavy donor atom
		switch e := da.Element(); {
		case haveH && e == 1:
			if heavy = heavyNeighbor(s, d); heavy < 0 {
				continue
			}
		case !haveH && (e == 7 || e == 8):
			heavy = d
		default:
			continue
		}
		if sel.excluded(d) {
			continue
		}
		for _, h := range s.Spatial().Within(da.Model(), da.Pos(), dmax) {
			acc := h.Atom
			if acc == d || acc == heavy || !inSet(b, acc) || h.Dist2 < dmin2 || sel.excluded(acc) {
				continue
			}
			switch s.Atom(acc).Element() {
			case 7, 8:
			case 16:
				if !haveH {
					continue
				}
			default:
				continue
			}
			if s.IsBonded(d, acc) || !haveH && isCarbonylO(s, d) && isCarbonylO(s, acc) {
				continue
			}
			pa := s.Atom(acc).Pos()
			v := r3.Sub(da.Pos(), pa)
			if _, ok := attachedAngleCheck(s, d, v, minAngle); !ok {
				continue
			}
			c, ok := attachedAngleCheck(s, acc, r3.Scale(-1, v), minAngle)
			if !ok {
				continue
			}
			idx, created, err := s.BondAtoms(d, acc, order, p.Mad)
			if err != nil {
				log.Warn("hydrogen bond rejected", zap.Int("donor", d), zap.Int("acceptor", acc), zap.Error(err))
				continue
			}
			if !created {
				continue
			}
			if haveH && c >= 0 {
				pc, pd := s.Atom(c).Pos(), s.Atom(heavy).Pos()
				e := HBondEnergy(math.Sqrt(h.Dist2), r3.Norm(r3.Sub(pc, da.Pos())), r3.Norm(r3.Sub(pc, pd)), r3.Norm(r3.Sub(pa, pd)))
				s.SetBondEnergy(idx, float64(e)/1000)
			}
			ret.Bonds.Set(uint(idx))
			ret.Count++
		}
	}
	switch {
	case ret.Count == 0:
		ret.Kind = NoHBonds
	case haveH:
		ret.Kind = RealHBonds
	default:
		ret.Kind = PseudoHBonds
	}
	log.Debug("hydrogen bonds found", zap.Stringer("kind", ret.Kind), zap.Int("count", ret.Count))
	return ret
}
