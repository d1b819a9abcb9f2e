/*
 * store_test.go, part of gochem.
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
	"errors"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wkpark/jmol-sub011/spatial"
	"github.com/wkpark/jmol-sub011/taint"
)

//chainStore returns a Store with one model and n carbons on the x axis,
//1.5 Å apart, each bonded to the next one.
func chainStore(Te *testing.T, n int, opts ...Option) *Store {
	Te.Helper()
	s := NewStore(opts...)
	s.AddModel("1")
	for i := 0; i < n; i++ {
		_, err := s.AddAtom(0, AtomData{Element: 6, Name: "C", Pos: r3.Vec{X: 1.5 * float64(i)}})
		require.NoError(Te, err)
	}
	for i := 1; i < n; i++ {
		_, created, err := s.BondAtoms(i-1, i, Single, 150)
		require.NoError(Te, err)
		require.True(Te, created)
	}
	return s
}

func set(idx ...int) *bitset.BitSet {
	b := bitset.New(0)
	for _, v := range idx {
		b.Set(uint(v))
	}
	return b
}

func members(b *bitset.BitSet) []int {
	var ret []int
	if b == nil {
		return ret
	}
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		ret = append(ret, int(i))
	}
	return ret
}

func TestBondAtomsIdempotent(Te *testing.T) {
	s := chainStore(Te, 3)
	i, created, err := s.BondAtoms(1, 0, Double, 200)
	require.NoError(Te, err)
	assert.False(Te, created)
	assert.Equal(Te, 0, i)
	assert.Equal(Te, 2, s.BondCount())
	assert.Equal(Te, Double, s.Bond(0).Order())
	assert.Equal(Te, int16(200), s.Bond(0).Mad())
	assert.Equal(Te, 1, s.Atom(0).BondCount())
	assert.NoError(Te, s.Check())
}

func TestBondAtomsErrors(Te *testing.T) {
	s := chainStore(Te, 2)
	_, _, err := s.BondAtoms(0, 0, Single, 1)
	assert.True(Te, errors.Is(err, ErrSameAtom))
	_, _, err = s.BondAtoms(0, 7, Single, 1)
	assert.True(Te, errors.Is(err, ErrOutOfRange))
	var e *Error
	require.True(Te, errors.As(err, &e))
	assert.False(Te, e.Critical())
	assert.Equal(Te, []string{"BondAtoms", "caller"}, e.Decorate("caller"))
}

func TestBondQueries(Te *testing.T) {
	s := chainStore(Te, 4)
	b, ok := s.BondBetween(2, 1)
	assert.True(Te, ok)
	assert.Equal(Te, 1, b)
	assert.False(Te, s.IsBonded(0, 2))
	assert.Equal(Te, 2, s.CovalentBondCount(1))
	_, _, err := s.BondAtoms(0, 3, HBondCalculated, 1)
	require.NoError(Te, err)
	assert.Equal(Te, 1, s.CovalentBondCount(0))
	assert.Equal(Te, 1, s.Valence(0))
	s.SetBondOrder(0, Double)
	assert.Equal(Te, 2, s.Valence(0))
	s.SetValence(0, 4)
	assert.Equal(Te, 4, s.Valence(0))
	assert.Equal(Te, uint(1), s.BondsOfOrder(HydrogenMask).Count())
	assert.Equal(Te, uint(4), s.BondsOfOrder(0).Count())
	assert.Equal(Te, 3, s.Bond(3).Cross(0))
	assert.PanicsWithValue(Te, ErrBondCrossing, func() { s.Bond(3).Cross(1) })
	assert.PanicsWithValue(Te, ErrInvalidBond, func() { s.Bond(9) })
}

func TestBondVisibility(Te *testing.T) {
	s := chainStore(Te, 3)
	assert.Equal(Te, 2, s.Atom(1).DisplayedBonds())
	s.SetBondVisible(0, false)
	s.SetBondVisible(0, false)
	assert.Equal(Te, 1, s.Atom(1).DisplayedBonds())
	assert.Equal(Te, 0, s.Atom(0).DisplayedBonds())
	assert.NoError(Te, s.Check())
	s.DeleteBonds(set(1))
	assert.Equal(Te, 0, s.Atom(1).DisplayedBonds())
	assert.NoError(Te, s.Check())
}

func TestDeclaredAromatic(Te *testing.T) {
	s := chainStore(Te, 4)
	_, _, err := s.BondAtoms(0, 2, Aromatic, 150)
	require.NoError(Te, err)
	assert.True(Te, s.IsDeclaredAromatic(3))
	s.AssignBondOrder(3, AromaticDouble)
	assert.True(Te, s.IsDeclaredAromatic(3))
	s.DeleteBonds(set(0))
	//bond 3 is now bond 2
	assert.True(Te, s.IsDeclaredAromatic(2))
	assert.Equal(Te, uint(1), s.DeclaredAromatic().Count())
	s.SetBondOrder(2, Single)
	assert.False(Te, s.IsDeclaredAromatic(2))
	//reconnecting an existing bond is an override too
	i, created, err := s.BondAtoms(2, 1, Aromatic, 150)
	require.NoError(Te, err)
	assert.False(Te, created)
	assert.Equal(Te, 0, i)
	assert.True(Te, s.IsDeclaredAromatic(0))
	_, _, err = s.BondAtoms(1, 2, AromaticSingle, 150)
	require.NoError(Te, err)
	assert.False(Te, s.IsDeclaredAromatic(0))
}

//Every bond is in the lists of its two atoms and nowhere else, whatever
//sequence of bonding and deletions took place.
func TestBondSymmetry(Te *testing.T) {
	s := chainStore(Te, 12)
	for i := 0; i < 10; i += 3 {
		_, _, err := s.BondAtoms(i, i+2, Single, 150)
		require.NoError(Te, err)
	}
	require.NoError(Te, s.Check())
	s.DeleteBonds(set(0, 4, 12))
	require.NoError(Te, s.Check())
	s.DeleteAtoms(set(3, 7))
	require.NoError(Te, s.Check())
	for i := 0; i < s.BondCount(); i++ {
		a1, a2 := s.Bond(i).Atoms()
		assert.Contains(Te, s.AtomBonds(a1), i)
		assert.Contains(Te, s.AtomBonds(a2), i)
	}
}

func TestDeleteAtomsRenumbering(Te *testing.T) {
	s := chainStore(Te, 6)
	s.SetAtomName(4, "C4")
	s.SetOccupancy(5, 0.5)
	s.Taint(4, taint.Element)
	s.Taint(1, taint.Element)
	s.Taint(2, taint.Element)
	center := r3.Vec{X: 4.5}
	assert.Equal(Te, []spatial.Hit{{Atom: 3}}, s.Spatial().Within(0, center, 0.1))
	require.True(Te, s.Spatial().Built(0))
	builds := s.Spatial().Builds()
	n := s.DeleteAtoms(set(1, 2, 40))
	assert.Equal(Te, 2, n)
	require.Equal(Te, 4, s.AtomCount())
	require.NoError(Te, s.Check())
	//bonds 0-1, 1-2 and 2-3 are gone, 3-4 and 4-5 are now 1-2 and 2-3.
	assert.Equal(Te, 2, s.BondCount())
	assert.True(Te, s.IsBonded(1, 2))
	assert.True(Te, s.IsBonded(2, 3))
	assert.Equal(Te, 0, s.Atom(0).BondCount())
	for i := 0; i < s.AtomCount(); i++ {
		assert.Equal(Te, i, s.Atom(i).Index())
	}
	assert.Equal(Te, "C4", s.AtomName(2))
	assert.Equal(Te, 0.5, s.Occupancy(3))
	assert.Equal(Te, 1.0, s.Occupancy(0))
	assert.Equal(Te, []int{2}, members(s.Tainted(taint.Element)))
	f, c := s.Model(0).Atoms()
	assert.Equal(Te, 0, f)
	assert.Equal(Te, 4, c)
	//the old partition must not survive the deletion
	assert.False(Te, s.Spatial().Built(0))
	assert.Equal(Te, []spatial.Hit{{Atom: 1}}, s.Spatial().Within(0, center, 0.1))
	assert.Equal(Te, builds+1, s.Spatial().Builds())
	assert.Empty(Te, s.Spatial().Within(0, r3.Vec{X: 1.5}, 0.1))
	assert.Equal(Te, 0, s.DeleteAtoms(bitset.New(0)))
}

func TestDeleteAtomsHierarchy(Te *testing.T) {
	s := NewStore()
	s.AddModel("1")
	for g := 0; g < 3; g++ {
		_, err := s.AddGroup("ALA", g+1, 0)
		require.NoError(Te, err)
		for k := 0; k < 2; k++ {
			_, err := s.AddAtom(0, AtomData{Element: 6, Pos: r3.Vec{X: float64(2*g + k)}})
			require.NoError(Te, err)
		}
	}
	s.AddModel("2")
	_, err := s.AddAtom(1, AtomData{Element: 8})
	require.NoError(Te, err)
	require.NoError(Te, s.Check())
	_, err = s.AddAtom(0, AtomData{Element: 6})
	assert.True(Te, errors.Is(err, ErrModelOrder))

	s.DeleteAtoms(set(2, 3))
	require.NoError(Te, s.Check())
	f, c := s.Group(1).Atoms()
	assert.Equal(Te, 2, f)
	assert.Equal(Te, 0, c)
	f, c = s.Group(2).Atoms()
	assert.Equal(Te, 2, f)
	assert.Equal(Te, 2, c)
	f, c = s.Model(1).Atoms()
	assert.Equal(Te, 4, f)
	assert.Equal(Te, 1, c)
	assert.Equal(Te, 1, s.ModelOf(4))
	assert.Equal(Te, 3, s.GroupOf(3).SeqNumber())
}

func TestHierarchyQueries(Te *testing.T) {
	s := NewStore()
	_, err := s.AddChain("A")
	assert.True(Te, errors.Is(err, ErrNoModel))
	s.AddModel("1")
	_, err = s.AddChain("A")
	require.NoError(Te, err)
	g, err := s.AddGroup("cys", 12, 'B')
	require.NoError(Te, err)
	for _, name := range []string{"N", "CA", "SG"} {
		_, err := s.AddAtom(0, AtomData{Name: name, Element: ElementFromName(name)})
		require.NoError(Te, err)
	}
	gr := s.Group(g)
	assert.True(Te, gr.IsAminoAcid())
	assert.Equal(Te, byte('C'), gr.OneLetter())
	assert.Equal(Te, 12, gr.SeqNumber())
	assert.Equal(Te, byte('B'), gr.InsCode())
	i, ok := s.GroupAtomNamed(g, "ca")
	assert.True(Te, ok)
	assert.Equal(Te, 1, i)
	assert.Equal(Te, 6, s.Atom(1).Element())
	assert.Equal(Te, 16, s.Atom(2).Element())
	assert.Equal(Te, 12, s.SeqID(0))
	assert.Equal(Te, []int{0, 1, 2}, members(s.AtomsInChain(0)))
	assert.Equal(Te, members(s.AtomsInModel(0)), members(s.AtomsInGroup(g)))
	assert.Equal(Te, "A", s.Chain(gr.Chain()).ID())
}

//Setters taint exactly their category, and only when the value changes.
func TestSetterTaints(Te *testing.T) {
	s := chainStore(Te, 3)
	type setter struct {
		c   taint.Category
		set func() bool
	}
	setters := []setter{
		{taint.Element, func() bool { return s.SetElement(1, 7) }},
		{taint.FormalCharge, func() bool { return s.SetFormalCharge(1, 1) }},
		{taint.BondingRadius, func() bool { return s.SetBondingRadius(1, 0.9) }},
		{taint.Occupancy, func() bool { return s.SetOccupancy(1, 0.3) }},
		{taint.PartialCharge, func() bool { return s.SetPartialCharge(1, -0.2) }},
		{taint.Temperature, func() bool { return s.SetBfactor(1, 12) }},
		{taint.VanDerWaals, func() bool { return s.SetVdwRadius(1, 1.9) }},
		{taint.Vibration, func() bool { return s.SetVibration(1, r3.Vec{Z: 0.1}) }},
		{taint.Valence, func() bool { return s.SetValence(1, 3) }},
		{taint.AtomName, func() bool { return s.SetAtomName(1, "N1") }},
		{taint.AtomType, func() bool { return s.SetAtomType(1, "NT") }},
		{taint.AtomNo, func() bool { return s.SetAtomNumber(1, 77) }},
		{taint.SeqID, func() bool { return s.SetSeqID(1, 5) }},
		{taint.Hydrophobicity, func() bool { return s.SetHydrophobicity(1, 0.4) }},
		{taint.Coord, func() bool { return s.SetPosition(1, r3.Vec{X: 1.4}) }},
	}
	for _, v := range setters {
		s.Taints().ClearAll()
		require.True(Te, v.set(), v.c.String())
		for c := taint.Category(0); c < taint.NumCategories; c++ {
			if c == v.c {
				assert.Equal(Te, []int{1}, members(s.Tainted(c)), c.String())
			} else {
				assert.Nil(Te, s.Tainted(c), "%s tainted by the %s setter", c, v.c)
			}
		}
		s.Taints().ClearAll()
		assert.False(Te, v.set(), v.c.String())
		assert.Nil(Te, s.Tainted(v.c), v.c.String())
	}
	assert.Equal(Te, 7, s.Atom(1).Element())
	assert.Equal(Te, 0.9, s.BondingRadius(1))
	assert.Equal(Te, "NT", s.AtomType(1))
	assert.Equal(Te, 77, s.AtomNumber(1))
	assert.Equal(Te, 3, s.AtomNumber(2))
	vib, ok := s.Vibration(1)
	assert.True(Te, ok)
	assert.Equal(Te, 0.1, vib.Z)
	_, ok = s.Vibration(0)
	assert.False(Te, ok)
	assert.Equal(Te, VdwRadius(6), s.VdwRadius(0))
}

//Tainting a coordinate marks only that atom in the coord category and
//makes the next query rebuild the model partition.
func TestCoordTaintInvalidates(Te *testing.T) {
	s := chainStore(Te, 4)
	s.SetFormalCharge(0, -1)
	before := s.Tainted(taint.FormalCharge)
	hits := s.Spatial().Within(0, r3.Vec{}, 1.6)
	assert.Len(Te, hits, 2)
	require.True(Te, s.Spatial().Built(0))
	builds := s.Spatial().Builds()
	s.Taint(2, taint.Coord)
	assert.Equal(Te, []int{2}, members(s.Tainted(taint.Coord)))
	assert.Equal(Te, members(before), members(s.Tainted(taint.FormalCharge)))
	assert.Nil(Te, s.Tainted(taint.Element))
	assert.False(Te, s.Spatial().Built(0))
	s.Spatial().Within(0, r3.Vec{}, 1.6)
	assert.Equal(Te, builds+1, s.Spatial().Builds())
}

func TestPreserveStateOff(Te *testing.T) {
	s := chainStore(Te, 2, WithPreserveState(false))
	s.Spatial().Within(0, r3.Vec{}, 1)
	assert.True(Te, s.SetPosition(0, r3.Vec{Y: 1}))
	assert.Nil(Te, s.Tainted(taint.Coord))
	assert.False(Te, s.Spatial().Built(0))
	assert.False(Te, s.PreserveState())
}

func TestSetFrame(Te *testing.T) {
	s := chainStore(Te, 3)
	s.Spatial().Within(0, r3.Vec{}, 1)
	err := s.SetFrame(0, []r3.Vec{{}, {X: 2}, {X: 3}})
	require.NoError(Te, err)
	assert.Equal(Te, []int{1}, members(s.Tainted(taint.Coord)))
	assert.False(Te, s.Spatial().Built(0))
	assert.Equal(Te, 2.0, s.Atom(1).Pos().X)
	err = s.SetFrame(0, []r3.Vec{{}})
	assert.True(Te, errors.Is(err, ErrOutOfRange))
	err = s.SetFrame(3, nil)
	assert.True(Te, errors.Is(err, ErrNoModel))
}

func TestBondListPool(Te *testing.T) {
	s := chainStore(Te, 8)
	misses := s.pool.misses
	//Deleting bonds gives the lists back, and bonding again reuses them.
	s.DeleteBonds(s.BondsOfOrder(0))
	for i := 1; i < 8; i++ {
		_, _, err := s.BondAtoms(i-1, i, Single, 150)
		require.NoError(Te, err)
	}
	assert.Greater(Te, s.pool.hits, 0)
	assert.Equal(Te, misses, s.pool.misses)
	require.NoError(Te, s.Check())

	np := chainStore(Te, 8, WithBondListPool(false))
	assert.Nil(Te, np.pool)
	np.DeleteBonds(np.BondsOfOrder(0))
	assert.NoError(Te, np.Check())
}

func TestWarnOnce(Te *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewStore(WithLogger(zap.New(core)))
	for i := 0; i < 5; i++ {
		s.WarnOnce("cap", "too many bonds", zap.Int("atom", i))
	}
	s.WarnOnce("other", "something else")
	assert.Equal(Te, 2, logs.Len())
	assert.Equal(Te, 1, logs.FilterMessage("too many bonds").Len())
}

func TestMaxBondingRadius(Te *testing.T) {
	s := chainStore(Te, 2)
	assert.Equal(Te, CovalentRadius(6), s.MaxBondingRadius())
	s.SetElement(1, 16)
	assert.Equal(Te, CovalentRadius(16), s.MaxBondingRadius())
	s.SetFormalCharge(1, -2)
	assert.Equal(Te, 1.84, s.MaxBondingRadius())
	s.SetBondingRadius(0, 2.5)
	assert.Equal(Te, 2.5, s.MaxBondingRadius())
	s.SetBondingRadius(0, 0)
	assert.False(Te, s.Atom(0).HasBondingRadiusOverride())
}

func TestLoad(Te *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewStore(WithLogger(zap.New(core)))
	recs := []Record{
		{Kind: AtomRecord, Atom: AtomData{Name: "C1"}}, //no model yet
		{Kind: ModelRecord, Name: "1"},
		{Kind: ChainRecord, Name: "A"},
		{Kind: GroupRecord, Name: "HOH", Seq: 1},
		{Kind: AtomRecord, Atom: AtomData{Name: "O", Pos: r3.Vec{}}},
		{Kind: AtomRecord, Atom: AtomData{Name: "H1", Pos: r3.Vec{X: 0.96}}},
		{Kind: AtomRecord, Atom: AtomData{Name: "Q", Pos: r3.Vec{X: 5}}}, //unknown element
		{Kind: AtomRecord, Atom: AtomData{Name: "H2", Pos: r3.Vec{Y: 0.96}}},
		{Kind: BondRecord, A: 0, B: 1},
		{Kind: BondRecord, A: 0, B: 2, Order: Single, Mad: 150},
		{Kind: BondRecord, A: 0, B: 9},
		{Kind: BondRecord, A: 0, B: 1}, //repeated, not a new bond
	}
	rep := s.Load(recs)
	assert.Equal(Te, 1, rep.Models)
	assert.Equal(Te, 3, rep.Atoms)
	assert.Equal(Te, 2, rep.Bonds)
	assert.Equal(Te, []int{0, 6, 10}, rep.Skipped)
	assert.True(Te, errors.Is(rep.Errors[0], ErrNoModel))
	assert.True(Te, errors.Is(rep.Errors[1], ErrBadRecord))
	assert.True(Te, errors.Is(rep.Errors[2], ErrOutOfRange))
	assert.Equal(Te, 3, logs.Len())
	assert.Equal(Te, 8, s.Atom(0).Element())
	assert.Equal(Te, 2, s.CovalentBondCount(0))
	assert.Equal(Te, "HOH", s.GroupOf(2).Name())
	assert.NoError(Te, s.Check())
}

func TestAtomsWithin(Te *testing.T) {
	s := chainStore(Te, 6)
	s.AddModel("2")
	_, err := s.AddAtom(1, AtomData{Element: 6})
	require.NoError(Te, err)
	got := s.AtomsWithin(set(0), 1.6)
	assert.Equal(Te, []int{0, 1}, members(got))
	got = s.AtomsWithin(set(0, 5), 3.1)
	assert.Equal(Te, []int{0, 1, 2, 3, 4, 5}, members(got))
}

func TestUnitCell(Te *testing.T) {
	uc, err := NewUnitCell(10, 10, 10, 90, 90, 90)
	require.NoError(Te, err)
	assert.InDelta(Te, 1000, uc.Volume(), 1e-9)
	f := uc.ToFractional(0, r3.Vec{X: 5, Y: 2.5, Z: 10})
	assert.InDelta(Te, 0.5, f.X, 1e-12)
	assert.InDelta(Te, 0.25, f.Y, 1e-12)
	assert.InDelta(Te, 1, f.Z, 1e-12)
	c := uc.ToCartesian(0, f)
	assert.InDelta(Te, 2.5, c.Y, 1e-12)

	hex, err := NewUnitCell(4, 4, 6, 90, 90, 120)
	require.NoError(Te, err)
	p := hex.ToCartesian(0, r3.Vec{X: 0.3, Y: 0.6, Z: 0.1})
	back := hex.ToFractional(0, p)
	assert.InDelta(Te, 0.6, back.Y, 1e-12)

	_, err = NewUnitCell(1, 1, 1, 10, 10, 170)
	assert.True(Te, errors.Is(err, ErrBadRecord))

	s := NewStore()
	s.AddModel("1")
	for _, x := range []float64{1, 9.99, 10, -0.5} {
		_, err := s.AddAtom(0, AtomData{Element: 6, Pos: r3.Vec{X: x, Y: 1, Z: 1}})
		require.NoError(Te, err)
	}
	assert.Equal(Te, []int{0, 1}, members(s.AtomsInUnitCell(0, uc)))
	uc.SetRange(r3.Vec{X: -1}, r3.Vec{X: 2, Y: 1, Z: 1})
	assert.Equal(Te, []int{0, 1, 2, 3}, members(s.AtomsInUnitCell(0, uc)))
}

func TestTensor(Te *testing.T) {
	s := chainStore(Te, 2)
	assert.Nil(Te, s.Tensor(0))
	t := mat.NewSymDense(3, []float64{1, 0, 0, 0, 2, 0, 0, 0, 3})
	require.NoError(Te, s.SetTensor(1, t))
	assert.Equal(Te, 2.0, s.Tensor(1).At(1, 1))
	assert.Nil(Te, s.Tensor(0))
	assert.Error(Te, s.SetTensor(0, mat.NewSymDense(2, nil)))
	for c := taint.Category(0); c < taint.NumCategories; c++ {
		assert.Nil(Te, s.Tainted(c))
	}
}

func TestElementFromName(Te *testing.T) {
	for name, z := range map[string]int{"CA": 6, "Ca": 20, "1HB2": 1, "OG1": 8, "SE": 34, "SG": 16, "FE": 26, "NZ": 7, "": 0, "X": 0} {
		assert.Equal(Te, z, ElementFromName(name), name)
	}
}

func TestBondOrderString(Te *testing.T) {
	assert.Equal(Te, "aromaticDouble", AromaticDouble.String())
	assert.Equal(Te, "stereoNear|single", (StereoNear | Single).String())
	assert.Equal(Te, 1, Partial12.CovalentOrder())
	assert.Equal(Te, 0, HBondRegular.CovalentOrder())
	assert.Equal(Te, 1, Aromatic.CovalentOrder())
	assert.True(Te, AromaticSingle.IsAromatic())
	assert.False(Te, HBondCalculated.IsCovalent())
}
