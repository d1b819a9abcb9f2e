/*
 * loader.go, part of gochem.
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
	"go.uber.org/zap"
)

// RecordKind tells what a Record describes.
type RecordKind int

const (
	ModelRecord RecordKind = iota
	ChainRecord
	GroupRecord
	AtomRecord
	BondRecord
)

func (k RecordKind) String() string {
	switch k {
	case ModelRecord:
		return "model"
	case ChainRecord:
		return "chain"
	case GroupRecord:
		return "group"
	case AtomRecord:
		return "atom"
	case BondRecord:
		return "bond"
	}
	return "unknown"
}

// Record is one item produced by a file-format adapter. Records are applied
// in order: a model record starts a new model, chain and group records open
// new containers in it, atom records go to the current group.
//
// Atom indexes in bond records refer to the atoms loaded in the same Load
// call, counting from 0.
type Record struct {
	Kind    RecordKind
	Name    string //model name, chain id or group name
	Seq     int    //group sequence number
	InsCode byte   //group insertion code
	Atom    AtomData
	A, B    int //bond ends
	Order   BondOrder
	Mad     int16
}

// LoadReport summarizes a Load call.
type LoadReport struct {
	Models  int
	Atoms   int
	Bonds   int
	Skipped []int //indexes of the records that were not applied
	Errors  []error
}

func (r *LoadReport) skip(i int, err error) {
	r.Skipped = append(r.Skipped, i)
	r.Errors = append(r.Errors, err)
}

// Load applies records to the Store. Malformed records (atoms with undefined
// positions or unknown elements without a usable name, bonds to atoms that
// don't exist, atoms before any model) are logged and skipped; the rest of
// the input is still loaded.
func (s *Store) Load(records []Record) LoadReport {
	var rep LoadReport
	log := s.log.Named("load")
	base := len(s.atoms)
	loaded := make([]int, 0, len(records)) //store index of each loaded atom
	for i, r := range records {
		var err error
		switch r.Kind {
		case ModelRecord:
			s.AddModel(r.Name)
			rep.Models++
		case ChainRecord:
			_, err = s.AddChain(r.Name)
		case GroupRecord:
			_, err = s.AddGroup(r.Name, r.Seq, r.InsCode)
		case AtomRecord:
			d := r.Atom
			if d.Element == 0 {
				d.Element = ElementFromName(d.Name)
			}
			if d.Element == 0 {
				err = newError(ErrBadRecord, false, "Load", "can't tell the element of atom %q", d.Name)
				break
			}
			var idx int
			idx, err = s.AddAtom(len(s.models)-1, d)
			if err == nil {
				loaded = append(loaded, idx)
				rep.Atoms++
			}
		case BondRecord:
			if r.A < 0 || r.A >= len(loaded) || r.B < 0 || r.B >= len(loaded) {
				err = newError(ErrOutOfRange, false, "Load", "bond %d-%d with %d atoms loaded", r.A, r.B, len(loaded))
				break
			}
			order := r.Order
			if order == 0 {
				order = Single
			}
			var created bool
			_, created, err = s.BondAtoms(loaded[r.A], loaded[r.B], order, r.Mad)
			if created {
				rep.Bonds++
			}
		default:
			err = newError(ErrBadRecord, false, "Load", "record kind %d", int(r.Kind))
		}
		if err != nil {
			err = errDecorate(err, "Load")
			log.Warn("skipping record", zap.Int("record", i), zap.Stringer("kind", r.Kind), zap.Error(err))
			rep.skip(i, err)
		}
	}
	log.Debug("records loaded", zap.Int("models", rep.Models), zap.Int("atoms", rep.Atoms),
		zap.Int("bonds", rep.Bonds), zap.Int("skipped", len(rep.Skipped)), zap.Int("firstAtom", base))
	return rep
}
