/*
 * hierarchy.go, part of gochem.
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
	"strings"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/spatial/r3"
)

//The hierarchy is a set of ranges over the atom array. Atoms of one group
//are contiguous, groups of one chain are contiguous, and chains of one model
//are contiguous. Atoms are only appended to the last model, which keeps
//every range contiguous by construction.

// Model is one structure (one frame, one NMR model) of the set.
type Model struct {
	index      int
	name       string
	firstAtom  int
	atomCount  int
	firstChain int
	chainCount int
}

func (M *Model) Index() int { return M.index }

func (M *Model) Name() string { return M.name }

// Atoms returns the first atom index and the number of atoms of the model.
func (M *Model) Atoms() (first, count int) { return M.firstAtom, M.atomCount }

// Chains returns the first chain index and the number of chains of the model.
func (M *Model) Chains() (first, count int) { return M.firstChain, M.chainCount }

// Chain is a polymer chain, or any other named set of groups.
type Chain struct {
	index      int
	model      int
	id         string
	firstGroup int
	groupCount int
	firstAtom  int
	atomCount  int
}

func (C *Chain) Index() int { return C.index }

func (C *Chain) ID() string { return C.id }

func (C *Chain) Model() int { return C.model }

func (C *Chain) Atoms() (first, count int) { return C.firstAtom, C.atomCount }

func (C *Chain) Groups() (first, count int) { return C.firstGroup, C.groupCount }

// Group is a residue, a ligand or any other small set of atoms with a name.
type Group struct {
	index     int
	chain     int
	model     int
	name      string
	seqCode   int //sequence number << 8 | insertion code
	firstAtom int
	atomCount int
}

func (G *Group) Index() int { return G.index }

// Name returns the 3-letter name of the group.
func (G *Group) Name() string { return G.name }

func (G *Group) Chain() int { return G.chain }

func (G *Group) Model() int { return G.model }

// SeqCode returns the packed sequence code, sequence number times 256 plus
// the insertion code. It sorts groups in sequence order.
func (G *Group) SeqCode() int { return G.seqCode }

// SeqNumber returns the sequence number of the group.
func (G *Group) SeqNumber() int { return G.seqCode >> 8 }

// InsCode returns the insertion code of the group, 0 if none.
func (G *Group) InsCode() byte { return byte(G.seqCode & 0xff) }

func (G *Group) Atoms() (first, count int) { return G.firstAtom, G.atomCount }

// IsAminoAcid reports whether the group has the name of a standard amino acid.
func (G *Group) IsAminoAcid() bool {
	_, ok := three2OneLetter[strings.ToUpper(G.name)]
	return ok
}

// OneLetter returns the 1-letter code of an amino acid group, or 'X'.
func (G *Group) OneLetter() byte {
	if l, ok := three2OneLetter[strings.ToUpper(G.name)]; ok {
		return l
	}
	return 'X'
}

func seqCode(seq int, insCode byte) int { return seq<<8 | int(insCode) }

// AddModel appends a new, empty model and returns its index.
func (s *Store) AddModel(name string) int {
	i := len(s.models)
	s.models = append(s.models, Model{
		index:      i,
		name:       name,
		firstAtom:  len(s.atoms),
		firstChain: len(s.chains),
	})
	return i
}

// AddChain appends a chain to the last model and returns its index.
func (s *Store) AddChain(id string) (int, error) {
	if len(s.models) == 0 {
		return -1, newError(ErrNoModel, false, "AddChain", "chain %q", id)
	}
	m := len(s.models) - 1
	i := len(s.chains)
	s.chains = append(s.chains, Chain{
		index:      i,
		model:      m,
		id:         id,
		firstGroup: len(s.groups),
		firstAtom:  len(s.atoms),
	})
	s.models[m].chainCount++
	return i, nil
}

// AddGroup appends a group to the last chain of the last model and returns
// its index. A default chain is created if the model has none.
func (s *Store) AddGroup(name string, seq int, insCode byte) (int, error) {
	if len(s.models) == 0 {
		return -1, newError(ErrNoModel, false, "AddGroup", "group %s%d", name, seq)
	}
	m := len(s.models) - 1
	if s.models[m].chainCount == 0 {
		s.AddChain("")
	}
	c := len(s.chains) - 1
	i := len(s.groups)
	s.groups = append(s.groups, Group{
		index:     i,
		chain:     c,
		model:     m,
		name:      name,
		seqCode:   seqCode(seq, insCode),
		firstAtom: len(s.atoms),
	})
	s.chains[c].groupCount++
	return i, nil
}

//currentGroup returns the group a new atom of model goes to, creating a
//default chain or group if needed. model must be the last model.
func (s *Store) currentGroup(model int) int {
	if s.models[model].chainCount == 0 {
		s.AddChain("")
	}
	if s.chains[len(s.chains)-1].groupCount == 0 {
		s.AddGroup("", 0, 0)
	}
	return len(s.groups) - 1
}

//extendRanges grows by one atom the ranges of group g and its ancestors.
func (s *Store) extendRanges(g int) {
	gr := &s.groups[g]
	gr.atomCount++
	s.chains[gr.chain].atomCount++
	s.models[gr.model].atomCount++
}

//shrinkRanges fixes every range after atom deletion. delBefore[i] is the
//number of deleted atoms with index lower than i, for i in [0, n].
func (s *Store) shrinkRanges(delBefore []int) {
	fix := func(first, count int) (int, int) {
		end := first + count
		nf := first - delBefore[first]
		return nf, end - delBefore[end] - nf
	}
	for i := range s.models {
		m := &s.models[i]
		m.firstAtom, m.atomCount = fix(m.firstAtom, m.atomCount)
	}
	for i := range s.chains {
		c := &s.chains[i]
		c.firstAtom, c.atomCount = fix(c.firstAtom, c.atomCount)
	}
	for i := range s.groups {
		g := &s.groups[i]
		g.firstAtom, g.atomCount = fix(g.firstAtom, g.atomCount)
	}
}

func (s *Store) ModelCount() int { return len(s.models) }

func (s *Store) ChainCount() int { return len(s.chains) }

func (s *Store) GroupCount() int { return len(s.groups) }

// Model returns model i. Panics if out of range.
func (s *Store) Model(i int) *Model {
	if i < 0 || i >= len(s.models) {
		panic(ErrInvalidTarget)
	}
	return &s.models[i]
}

func (s *Store) Chain(i int) *Chain {
	if i < 0 || i >= len(s.chains) {
		panic(ErrInvalidTarget)
	}
	return &s.chains[i]
}

func (s *Store) Group(i int) *Group {
	if i < 0 || i >= len(s.groups) {
		panic(ErrInvalidTarget)
	}
	return &s.groups[i]
}

// ModelOf returns the model index of atom i.
func (s *Store) ModelOf(i int) int {
	s.checkAtom(i)
	return s.atoms[i].model
}

// GroupOf returns the group of atom i.
func (s *Store) GroupOf(i int) *Group {
	s.checkAtom(i)
	return &s.groups[s.atoms[i].group]
}

func rangeSet(n, first, count int) *bitset.BitSet {
	ret := bitset.New(uint(n))
	for i := first; i < first+count; i++ {
		ret.Set(uint(i))
	}
	return ret
}

func (s *Store) AtomsInModel(m int) *bitset.BitSet {
	f, c := s.Model(m).Atoms()
	return rangeSet(len(s.atoms), f, c)
}

func (s *Store) AtomsInChain(c int) *bitset.BitSet {
	f, n := s.Chain(c).Atoms()
	return rangeSet(len(s.atoms), f, n)
}

func (s *Store) AtomsInGroup(g int) *bitset.BitSet {
	f, n := s.Group(g).Atoms()
	return rangeSet(len(s.atoms), f, n)
}

// GroupAtomNamed returns the atom of group g with the given name
// (case-insensitive), if any.
func (s *Store) GroupAtomNamed(g int, name string) (int, bool) {
	f, n := s.Group(g).Atoms()
	for i := f; i < f+n; i++ {
		if strings.EqualFold(s.AtomName(i), name) {
			return i, true
		}
	}
	return -1, false
}

// AtomsWithin returns every atom within distance of at least one atom of
// set, including the atoms of set. Only atoms of the same model are
// considered.
func (s *Store) AtomsWithin(set *bitset.BitSet, distance float64) *bitset.BitSet {
	ret := bitset.New(uint(len(s.atoms)))
	if set == nil {
		return ret
	}
	for i, ok := set.NextSet(0); ok && int(i) < len(s.atoms); i, ok = set.NextSet(i + 1) {
		ret.Set(i)
		a := &s.atoms[i]
		for _, h := range s.index.Within(a.model, a.pos, distance) {
			ret.Set(uint(h.Atom))
		}
	}
	return ret
}

// AtomsInUnitCell returns the atoms of model whose fractional coordinates,
// as given by sym, lie in the cell range of sym. The upper bound is
// exclusive, with a small tolerance at both bounds.
func (s *Store) AtomsInUnitCell(model int, sym Symmetry) *bitset.BitSet {
	const eps = 1e-4
	ret := bitset.New(uint(len(s.atoms)))
	f, n := s.Model(model).Atoms()
	lo, hi := sym.CellRange(model)
	for i := f; i < f+n; i++ {
		p := sym.ToFractional(model, s.atoms[i].pos)
		if inRange(p, lo, hi, eps) {
			ret.Set(uint(i))
		}
	}
	return ret
}

func inRange(p, lo, hi r3.Vec, eps float64) bool {
	return p.X >= lo.X-eps && p.X < hi.X-eps &&
		p.Y >= lo.Y-eps && p.Y < hi.Y-eps &&
		p.Z >= lo.Z-eps && p.Z < hi.Z-eps
}
