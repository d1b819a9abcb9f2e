/*
 * perceive_test.go, part of gochem.
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
	"context"
	"errors"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"

	chem "github.com/wkpark/jmol-sub011"
)

type atomSpec struct {
	group string
	data  chem.AtomData
}

//build returns a one-model Store with the given atoms. A new group is
//started every time the group name changes.
func build(Te *testing.T, atoms []atomSpec, opts ...chem.Option) *chem.Store {
	Te.Helper()
	s := chem.NewStore(opts...)
	s.AddModel("1")
	last := ""
	for k, v := range atoms {
		if v.group != last {
			_, err := s.AddGroup(v.group, k+1, 0)
			require.NoError(Te, err)
			last = v.group
		}
		_, err := s.AddAtom(0, v.data)
		require.NoError(Te, err)
	}
	return s
}

func at(el int, name string, x, y, z float64) chem.AtomData {
	return chem.AtomData{Element: el, Name: name, Pos: r3.Vec{X: x, Y: y, Z: z}}
}

func bond(Te *testing.T, s *chem.Store, a, b int, o chem.BondOrder) {
	Te.Helper()
	_, _, err := s.BondAtoms(a, b, o, 150)
	require.NoError(Te, err)
}

func setOf(idx ...int) *bitset.BitSet {
	b := bitset.New(0)
	for _, v := range idx {
		b.Set(uint(v))
	}
	return b
}

//Two carbons 1.54 Å apart, with bonding radius 0.77, get one single bond,
//and bonding again creates nothing.
func TestAutoBondPair(Te *testing.T) {
	s := build(Te, []atomSpec{
		{"ETH", chem.AtomData{Element: 6, BondingRadius: 0.77}},
		{"ETH", chem.AtomData{Element: 6, BondingRadius: 0.77, Pos: r3.Vec{X: 1.54}}},
	})
	n := AutoBond(s, nil, nil, nil, DefaultBonding())
	require.Equal(Te, 1, n)
	require.Equal(Te, 1, s.BondCount())
	assert.Equal(Te, chem.Single, s.Bond(0).Order())
	assert.True(Te, s.Bond(0).Order().IsCovalent())
	assert.Equal(Te, 0, AutoBond(s, nil, nil, nil, DefaultBonding()))
	assert.Equal(Te, 1, s.BondCount())
	assert.NoError(Te, s.Check())
}

func TestAutoBondKeepsOrders(Te *testing.T) {
	s := build(Te, []atomSpec{
		{"ETH", at(6, "C1", 0, 0, 0)},
		{"ETH", at(6, "C2", 1.34, 0, 0)},
	})
	bond(Te, s, 0, 1, chem.Double)
	assert.Equal(Te, 0, AutoBond(s, nil, nil, nil, DefaultBonding()))
	assert.Equal(Te, chem.Double, s.Bond(0).Order())
}

func TestAutoBondDistanceLimits(Te *testing.T) {
	s := build(Te, []atomSpec{
		{"X", at(6, "C1", 0, 0, 0)},
		{"X", at(6, "C2", 0.3, 0, 0)},  //too close to C1
		{"X", at(6, "C3", 10, 0, 0)},   //too far from everything
		{"X", at(6, "C4", 11.9, 0, 0)}, //1.9 from C3, the limit is 1.97
		{"X", at(6, "C5", 14, 0, 0)},   //2.1 from C4
	})
	n := AutoBond(s, nil, nil, nil, DefaultBonding())
	assert.Equal(Te, 1, n)
	assert.True(Te, s.IsBonded(2, 3))
}

func TestAutoBondMaxBondCount(Te *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	atoms := []atomSpec{{"CH", at(6, "C", 0, 0, 0)}}
	for _, v := range []r3.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}} {
		atoms = append(atoms, atomSpec{"CH", at(1, "H", v.X, v.Y, v.Z)})
	}
	s := build(Te, atoms, chem.WithLogger(zap.New(core)))
	p := DefaultBonding()
	p.MaxBondCount = 4
	n := AutoBond(s, nil, nil, nil, p)
	assert.Equal(Te, 4, n)
	assert.Equal(Te, 4, s.Atom(0).BondCount())
	//neighbors are visited in ascending order, so the last two lose.
	assert.Equal(Te, 0, s.Atom(5).BondCount())
	assert.Equal(Te, 0, s.Atom(6).BondCount())
	assert.Equal(Te, 1, logs.Len())
	AutoBond(s, nil, nil, nil, p)
	assert.Equal(Te, 1, logs.Len())
}

func TestAutoBondChargesAndAltLocs(Te *testing.T) {
	s := build(Te, []atomSpec{
		{"A", chem.AtomData{Element: 7, FormalCharge: 1}},
		{"A", chem.AtomData{Element: 7, FormalCharge: 1, Pos: r3.Vec{X: 1.4}}},
		{"B", chem.AtomData{Element: 7, FormalCharge: 1, Pos: r3.Vec{X: 10}}},
		{"B", chem.AtomData{Element: 8, FormalCharge: -1, Pos: r3.Vec{X: 11.4}}},
		{"C", chem.AtomData{Element: 6, AltLoc: 'A', Pos: r3.Vec{X: 20}}},
		{"C", chem.AtomData{Element: 6, AltLoc: 'B', Pos: r3.Vec{X: 21.5}}},
		{"D", chem.AtomData{Element: 6, AltLoc: 'A', Pos: r3.Vec{X: 30}}},
		{"D", chem.AtomData{Element: 6, Pos: r3.Vec{X: 31.5}}},
	})
	n := AutoBond(s, nil, nil, nil, DefaultBonding())
	assert.Equal(Te, 2, n)
	assert.False(Te, s.IsBonded(0, 1))
	assert.True(Te, s.IsBonded(2, 3))
	assert.False(Te, s.IsBonded(4, 5))
	assert.True(Te, s.IsBonded(6, 7))
}

func TestAutoBondSets(Te *testing.T) {
	chain := []atomSpec{
		{"X", at(6, "C1", 0, 0, 0)},
		{"X", at(6, "C2", 1.5, 0, 0)},
		{"X", at(6, "C3", 3.0, 0, 0)},
	}
	s := build(Te, chain)
	n := AutoBond(s, setOf(0, 1), setOf(1), nil, DefaultBonding())
	assert.Equal(Te, 1, n)
	assert.True(Te, s.IsBonded(0, 1))

	s = build(Te, chain)
	n = AutoBond(s, setOf(2), setOf(1), nil, DefaultBonding())
	assert.Equal(Te, 1, n)
	assert.True(Te, s.IsBonded(1, 2))

	s = build(Te, chain)
	n = AutoBond(s, nil, nil, setOf(0, 1), DefaultBonding())
	assert.Equal(Te, 1, n)
	assert.True(Te, s.IsBonded(1, 2))
	assert.False(Te, s.IsBonded(0, 1))
}

func TestRebond(Te *testing.T) {
	s := build(Te, []atomSpec{
		{"X", at(6, "C1", 0, 0, 0)},
		{"X", at(6, "C2", 1.5, 0, 0)},
		{"X", at(8, "O", 1.5, 3, 0)},
		{"X", at(6, "C3", 8, 0, 0)},
	})
	bond(Te, s, 0, 1, chem.Double)
	bond(Te, s, 0, 3, chem.Single) //far away, gone after rebonding
	bond(Te, s, 1, 2, chem.HBondCalculated)
	del, created := Rebond(s, DefaultBonding())
	assert.Equal(Te, 2, del)
	assert.Equal(Te, 1, created)
	assert.True(Te, s.IsBonded(1, 2))
	b, ok := s.BondBetween(0, 1)
	require.True(Te, ok)
	assert.Equal(Te, chem.Single, s.Bond(b).Order())
	assert.False(Te, s.IsBonded(0, 3))
	assert.NoError(Te, s.Check())
}

//backbone amide N-H of one residue facing the carbonyl O=C of another, in a
//straight line, H···O 1.9 Å.
func amideStore(Te *testing.T) *chem.Store {
	s := build(Te, []atomSpec{
		{"ALA", at(7, "N", 0, 0, 0)},
		{"ALA", at(1, "H", 1.0, 0, 0)},
		{"GLY", at(8, "O", 2.9, 0, 0)},
		{"GLY", at(6, "C", 4.13, 0, 0)},
	})
	bond(Te, s, 0, 1, chem.Single)
	bond(Te, s, 2, 3, chem.Double)
	return s
}

func TestHydrogenBondsReal(Te *testing.T) {
	s := amideStore(Te)
	require.False(Te, s.IsBonded(1, 2))
	r := HydrogenBonds(s, nil, nil, DefaultHBonds(), nil)
	assert.Equal(Te, RealHBonds, r.Kind)
	assert.Equal(Te, 1, r.Count)
	assert.Equal(Te, 1, r.Signed())
	b, ok := s.BondBetween(1, 2)
	require.True(Te, ok)
	assert.True(Te, r.Bonds.Test(uint(b)))
	assert.Equal(Te, chem.HBondRegular, s.Bond(b).Order())
	assert.Equal(Te, int16(1), s.Bond(b).Mad())
	assert.InDelta(Te, -2.904, s.Bond(b).Energy(), 1e-9)
	assert.Equal(Te, 3, s.BondCount())

	//recomputing replaces the old bond instead of adding another one
	r = HydrogenBonds(s, nil, nil, DefaultHBonds(), nil)
	assert.Equal(Te, 1, r.Count)
	assert.Equal(Te, 3, s.BondCount())
	assert.NoError(Te, s.Check())
}

func TestHydrogenBondsAngle(Te *testing.T) {
	//the acceptor sits off to the side of the N-H direction: the N-H···O
	//attachment angle is about 69 degrees.
	s := build(Te, []atomSpec{
		{"ALA", at(7, "N", 0, 0, 0)},
		{"ALA", at(1, "H", 1.0, 0, 0)},
		{"GLY", at(8, "O", 0.3, 1.8, 0)},
		{"GLY", at(6, "C", -0.146, 2.947, 0)},
	})
	bond(Te, s, 0, 1, chem.Single)
	bond(Te, s, 2, 3, chem.Double)
	r := HydrogenBonds(s, nil, nil, DefaultHBonds(), nil)
	assert.Equal(Te, NoHBonds, r.Kind)
	assert.Equal(Te, 0, r.Signed())
	p := DefaultHBonds()
	p.AngleMinimum = 60
	r = HydrogenBonds(s, nil, nil, p, nil)
	assert.Equal(Te, 1, r.Count)
}

func TestHydrogenBondsDistance(Te *testing.T) {
	s := amideStore(Te)
	p := DefaultHBonds()
	p.HXDistanceMaximum = 1.8
	r := HydrogenBonds(s, nil, nil, p, nil)
	assert.Equal(Te, 0, r.Count)
	p = DefaultHBonds()
	p.DistanceMaximum = 1.85 //also caps the H···A distance
	r = HydrogenBonds(s, nil, nil, p, nil)
	assert.Equal(Te, 0, r.Count)
}

//heavy atoms only: an amide N facing a carbonyl O 2.9 Å away.
func pseudoStore(Te *testing.T, donor int, donorName string) *chem.Store {
	s := build(Te, []atomSpec{
		{"ALA", at(6, "CA", -1.3, 0, 0)},
		{"ALA", at(donor, donorName, 0, 0, 0)},
		{"GLY", at(8, "O", 2.9, 0, 0)},
		{"GLY", at(6, "C", 4.13, 0, 0)},
	})
	bond(Te, s, 0, 1, chem.Single)
	bond(Te, s, 2, 3, chem.Double)
	return s
}

func TestHydrogenBondsPseudo(Te *testing.T) {
	s := pseudoStore(Te, 7, "N")
	r := HydrogenBonds(s, nil, nil, DefaultHBonds(), nil)
	assert.Equal(Te, PseudoHBonds, r.Kind)
	assert.Equal(Te, 1, r.Count)
	assert.Equal(Te, -1, r.Signed())
	b, ok := s.BondBetween(1, 2)
	require.True(Te, ok)
	assert.Equal(Te, chem.HBondCalculated, s.Bond(b).Order())
	assert.False(Te, s.Bond(b).Order().IsCovalent())

	//two carbonyl oxygens are never paired
	s = pseudoStore(Te, 8, "O")
	r = HydrogenBonds(s, nil, nil, DefaultHBonds(), nil)
	assert.Equal(Te, 0, r.Count)
	assert.Equal(Te, NoHBonds, r.Kind)
}

type allPolymer struct{}

func (allPolymer) IsPolymer(g int) bool { return true }

func TestHydrogenBondsBackbone(Te *testing.T) {
	p := DefaultHBonds()
	p.Backbone = true
	s := pseudoStore(Te, 7, "N")
	assert.Equal(Te, 1, HydrogenBonds(s, nil, nil, p, allPolymer{}).Count)
	s = pseudoStore(Te, 7, "NZ")
	assert.Equal(Te, 0, HydrogenBonds(s, nil, nil, p, allPolymer{}).Count)
	//without a BioModel the option does nothing
	assert.Equal(Te, 1, HydrogenBonds(s, nil, nil, p, nil).Count)
}

func TestHBondEnergy(Te *testing.T) {
	assert.Equal(Te, -2904, HBondEnergy(1.9, 3.13, 4.13, 2.9))
	assert.Equal(Te, -2573, HBondEnergy(2.0, 3.2, 4.2, 3.0))
}

func TestContactCounts(Te *testing.T) {
	var atoms []atomSpec
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				atoms = append(atoms, atomSpec{"GRD", at(6, "C", float64(i), float64(j), float64(k))})
			}
		}
	}
	s := build(Te, atoms)
	counts, err := ContactCounts(context.Background(), s, []int{13, 0, 4}, 1.01, 4)
	require.NoError(Te, err)
	assert.Equal(Te, []int{6, 3, 5}, counts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ContactCounts(ctx, s, []int{0, 1}, 1.01, 2)
	assert.ErrorIs(Te, err, context.Canceled)

	_, err = ContactCounts(context.Background(), s, []int{99}, 1.01, 2)
	assert.True(Te, errors.Is(err, chem.ErrOutOfRange))
}
