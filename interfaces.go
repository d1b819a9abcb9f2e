/*
 * interfaces.go, part of gochem.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 *
 */

package chem

import "gonum.org/v1/gonum/spatial/r3"

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	AtomCount() int
}

// Bonder is an Atomer that also gives access to its bonds.
type Bonder interface {
	Atomer

	//Bond returns the bond with index i. Should panic if out of range.
	Bond(i int) *Bond

	BondCount() int

	//AtomBonds returns the indexes of the bonds of atom i.
	AtomBonds(i int) []int
}

// Symmetry is the capability of converting positions of a model between
// Cartesian and fractional coordinates. The operator mathematics are not
// part of this package; UnitCell is a simple implementation.
type Symmetry interface {
	ToFractional(model int, p r3.Vec) r3.Vec
	ToCartesian(model int, p r3.Vec) r3.Vec

	//CellRange returns the lower (inclusive) and upper (exclusive) bounds,
	//in fractional coordinates, of the cells of interest, usually
	//{0,0,0} and {1,1,1}.
	CellRange(model int) (lo, hi r3.Vec)
}

// BioModel is the capability of classifying groups of a biomolecule. The
// secondary-structure and polymer logic lives outside this package.
type BioModel interface {
	//IsPolymer reports whether group g is part of a polymer (protein or
	//nucleic acid) chain, as opposed to a ligand or solvent.
	IsPolymer(g int) bool
}
