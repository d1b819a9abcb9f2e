/*
 * chem.go, part of gochem.
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
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import "gonum.org/v1/gonum/spatial/r3"

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. I considered that if something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to trying to access out-of bounds atoms or bonds**/

//Atom contains the per-atom data every structure has. Optional data
//(names, occupancies, vibrations and so on) lives in lazily allocated
//arrays in the Store. An Atom obtained from a Store is a view: it must not
//be kept across calls that add or delete atoms.
type Atom struct {
	index         int
	element       int
	isotope       int
	pos           r3.Vec
	formalCharge  int
	bondingRadius float64 //0 means "use the element table"
	altLoc        byte
	group         int
	model         int
	valence       int //-1 means "derive from bonds"
	bonds         []int
	nDisplayed    int
}

//AtomData holds the attributes given when an atom is added.
//Zero values mean "not given".
type AtomData struct {
	Element       int
	Isotope       int
	Pos           r3.Vec
	FormalCharge  int
	BondingRadius float64
	AltLoc        byte
	Name          string
	Type          string
	Number        int
	Occupancy     float64 //fraction, used only if HasOccupancy; the default is 1
	HasOccupancy  bool
	PartialCharge float64
	Bfactor       float64
	Vibration     *r3.Vec
}

//Atom methods

func (A *Atom) Index() int { return A.index }

//Element returns the atomic number.
func (A *Atom) Element() int { return A.element }

func (A *Atom) Isotope() int { return A.isotope }

func (A *Atom) Symbol() string { return ElementSymbol(A.element) }

func (A *Atom) Pos() r3.Vec { return A.pos }

func (A *Atom) FormalCharge() int { return A.formalCharge }

//AltLoc returns the alternate location tag, 0 if none.
func (A *Atom) AltLoc() byte { return A.altLoc }

//Group returns the index of the group that contains the atom.
func (A *Atom) Group() int { return A.group }

//Model returns the index of the model that contains the atom.
func (A *Atom) Model() int { return A.model }

//BondCount returns the number of bonds, of any kind, of the atom.
func (A *Atom) BondCount() int { return len(A.bonds) }

//Bonds returns a copy of the indexes of the bonds of the atom.
func (A *Atom) Bonds() []int {
	ret := make([]int, len(A.bonds))
	copy(ret, A.bonds)
	return ret
}

//DisplayedBonds returns how many of the bonds of the atom are visible.
func (A *Atom) DisplayedBonds() int { return A.nDisplayed }

//BondingRadius returns the radius used for autobonding: the explicit
//override if one was set, otherwise the element/charge table value.
func (A *Atom) BondingRadius() float64 {
	if A.bondingRadius > 0 {
		return A.bondingRadius
	}
	return BondingRadius(A.element, A.formalCharge)
}

//HasBondingRadiusOverride reports whether the bonding radius was set explicitly.
func (A *Atom) HasBondingRadiusOverride() bool { return A.bondingRadius > 0 }
