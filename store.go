/*
 * store.go, part of gochem.
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
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wkpark/jmol-sub011/spatial"
	"github.com/wkpark/jmol-sub011/taint"
)

// Store owns every atom and bond of a structure set, together with the
// Model/Chain/Group hierarchy over them. Atoms and bonds are addressed by
// index. The spatial index, the taint table and the hierarchy only hold
// indexes into the Store and are kept consistent by it.
//
// A Store is not safe for concurrent mutation. The only operation meant for
// concurrent readers is Spatial().Within.
type Store struct {
	atoms  []Atom
	bonds  []Bond
	models []Model
	chains []Chain
	groups []Group

	attrs attributes

	taints *taint.Table
	index  *spatial.Index
	pool   *bondListPool

	//bonds that the input declared aromatic, so a recalculation of the
	//aromatic orders can start from them again.
	declaredAromatic *bitset.BitSet

	maxBondingRadius float64 //negative means "not computed"
	warned           map[string]bool
	log              *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used by the Store and the algorithms run on it.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPreserveState turns the taint table on or off. Turning it off speeds
// up bulk loading when no state needs to be written afterwards.
func WithPreserveState(on bool) Option {
	return func(s *Store) { s.taints.SetEnabled(on) }
}

// WithBondListPool turns the recycling of small per-atom bond lists on or
// off. It is on by default.
func WithBondListPool(on bool) Option {
	return func(s *Store) {
		if on {
			s.pool = newBondListPool()
		} else {
			s.pool = nil
		}
	}
}

// NewStore returns an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		taints:           taint.New(true),
		pool:             newBondListPool(),
		declaredAromatic: bitset.New(0),
		maxBondingRadius: -1,
		warned:           make(map[string]bool),
		log:              zap.NewNop(),
	}
	s.index = spatial.New(s)
	for _, o := range opts {
		o(s)
	}
	return s
}

// Logger returns the logger of the Store.
func (s *Store) Logger() *zap.Logger { return s.log }

// WarnOnce logs msg at warning level the first time it is called with key,
// and does nothing afterwards. It is used for capacity limits that are hit
// many times in one operation.
func (s *Store) WarnOnce(key, msg string, fields ...zap.Field) {
	if s.warned[key] {
		return
	}
	s.warned[key] = true
	s.log.Warn(msg, fields...)
}

func (s *Store) AtomCount() int { return len(s.atoms) }

func (s *Store) BondCount() int { return len(s.bonds) }

func (s *Store) checkAtom(i int) {
	if i < 0 || i >= len(s.atoms) {
		panic(ErrInvalidAtom)
	}
}

func (s *Store) checkBond(i int) {
	if i < 0 || i >= len(s.bonds) {
		panic(ErrInvalidBond)
	}
}

// Atom returns the atom with index i. Panics if out of range.
func (s *Store) Atom(i int) *Atom {
	s.checkAtom(i)
	return &s.atoms[i]
}

// Bond returns the bond with index i. Panics if out of range.
func (s *Store) Bond(i int) *Bond {
	s.checkBond(i)
	return &s.bonds[i]
}

// AtomBonds returns the indexes of the bonds of atom i. The slice belongs to
// the Store and must be neither modified nor kept.
func (s *Store) AtomBonds(i int) []int {
	s.checkAtom(i)
	return s.atoms[i].bonds
}

// BondBetween returns the index of the bond between a and b, if any.
func (s *Store) BondBetween(a, b int) (int, bool) {
	s.checkAtom(a)
	s.checkAtom(b)
	//search from the atom with fewer bonds
	if len(s.atoms[b].bonds) < len(s.atoms[a].bonds) {
		a, b = b, a
	}
	for _, v := range s.atoms[a].bonds {
		if s.bonds[v].Contains(b) {
			return v, true
		}
	}
	return -1, false
}

// IsBonded reports whether a and b share a bond of any kind.
func (s *Store) IsBonded(a, b int) bool {
	_, ok := s.BondBetween(a, b)
	return ok
}

// CovalentBondCount returns the number of non-hydrogen bonds of atom i.
func (s *Store) CovalentBondCount(i int) int {
	s.checkAtom(i)
	n := 0
	for _, v := range s.atoms[i].bonds {
		if s.bonds[v].order.IsCovalent() {
			n++
		}
	}
	return n
}

// Valence returns the explicit valence of atom i if one was set, or the sum
// of the covalent orders of its bonds.
func (s *Store) Valence(i int) int {
	s.checkAtom(i)
	if s.atoms[i].valence >= 0 {
		return s.atoms[i].valence
	}
	n := 0
	for _, v := range s.atoms[i].bonds {
		n += s.bonds[v].order.CovalentOrder()
	}
	return n
}

// BondingRadius returns the bonding radius of atom i.
func (s *Store) BondingRadius(i int) float64 {
	s.checkAtom(i)
	return s.atoms[i].BondingRadius()
}

// MaxBondingRadius returns the largest bonding radius of all atoms. The
// value is cached until an element, charge or radius changes, or atoms
// are added or deleted.
func (s *Store) MaxBondingRadius() float64 {
	if s.maxBondingRadius >= 0 {
		return s.maxBondingRadius
	}
	m := 0.0
	for i := range s.atoms {
		m = math.Max(m, s.atoms[i].BondingRadius())
	}
	s.maxBondingRadius = m
	return m
}

// ResetRadiusCache forgets the cached maximum bonding radius.
func (s *Store) ResetRadiusCache() { s.maxBondingRadius = -1 }

// Spatial returns the spatial index over the atoms of the Store.
func (s *Store) Spatial() *spatial.Index { return s.index }

// ModelRange implements spatial.Source.
func (s *Store) ModelRange(model int) (int, int) {
	if model < 0 || model >= len(s.models) {
		return 0, 0
	}
	return s.models[model].firstAtom, s.models[model].atomCount
}

// Position implements spatial.Source.
func (s *Store) Position(atom int) r3.Vec { return s.atoms[atom].pos }

// AddAtom appends an atom to model, which must be the last model of the
// Store, and returns its index. The atom goes to the last group of the last
// chain of the model; a default chain and group are created if the model
// has none.
func (s *Store) AddAtom(model int, d AtomData) (int, error) {
	if model < 0 || model >= len(s.models) {
		return -1, newError(ErrNoModel, false, "AddAtom", "model %d", model)
	}
	if model != len(s.models)-1 {
		return -1, newError(ErrModelOrder, false, "AddAtom", "model %d of %d", model, len(s.models))
	}
	if math.IsNaN(d.Pos.X) || math.IsNaN(d.Pos.Y) || math.IsNaN(d.Pos.Z) {
		return -1, newError(ErrBadRecord, false, "AddAtom", "atom with undefined position")
	}
	g := s.currentGroup(model)
	i := len(s.atoms)
	s.atoms = slices.Grow(s.atoms, 1)
	s.atoms = append(s.atoms, Atom{
		index:         i,
		element:       d.Element,
		isotope:       d.Isotope,
		pos:           d.Pos,
		formalCharge:  d.FormalCharge,
		bondingRadius: d.BondingRadius,
		altLoc:        d.AltLoc,
		group:         g,
		model:         model,
		valence:       -1,
	})
	s.attrs.appendAtom(d)
	s.extendRanges(g)
	s.index.Invalidate(model)
	s.maxBondingRadius = -1
	return i, nil
}

// SetFrame replaces the positions of every atom of model with pos, as when a
// trajectory moves to another frame. Atoms that actually moved are tainted.
func (s *Store) SetFrame(model int, pos []r3.Vec) error {
	if model < 0 || model >= len(s.models) {
		return newError(ErrNoModel, false, "SetFrame", "model %d", model)
	}
	m := s.models[model]
	if len(pos) != m.atomCount {
		return newError(ErrOutOfRange, false, "SetFrame", "%d positions for %d atoms", len(pos), m.atomCount)
	}
	for k, v := range pos {
		i := m.firstAtom + k
		if s.atoms[i].pos == v {
			continue
		}
		s.atoms[i].pos = v
		s.taints.Taint(i, taint.Coord)
	}
	s.index.Invalidate(model)
	return nil
}

// Taint marks atom as changed in category c. Tainting a coordinate also
// invalidates the spatial partition of the atom's model, whether or not the
// taint table is enabled.
func (s *Store) Taint(atom int, c taint.Category) {
	s.checkAtom(atom)
	s.taints.Taint(atom, c)
	if c == taint.Coord {
		s.index.Invalidate(s.atoms[atom].model)
	}
}

func (s *Store) Untaint(atom int, c taint.Category) {
	s.checkAtom(atom)
	s.taints.Untaint(atom, c)
}

// Tainted returns a copy of the atoms tainted in c, nil if there are none.
func (s *Store) Tainted(c taint.Category) *bitset.BitSet { return s.taints.Tainted(c) }

// SetTainted replaces the atoms tainted in c.
func (s *Store) SetTainted(bs *bitset.BitSet, c taint.Category) { s.taints.SetTainted(bs, c) }

// Taints gives direct access to the taint table.
func (s *Store) Taints() *taint.Table { return s.taints }

// PreserveState reports whether changes are being tracked.
func (s *Store) PreserveState() bool { return s.taints.Enabled() }

// SetPreserveState turns change tracking on or off.
func (s *Store) SetPreserveState(on bool) { s.taints.SetEnabled(on) }
