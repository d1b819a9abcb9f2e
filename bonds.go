/*
 * bonds.go, part of gochem.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"fmt"
	"strings"
)

// BondOrder is a bit-flag encoded bond type. The lowest three bits hold the
// covalent multiplicity; the higher bits mark partial, aromatic, hydrogen
// and stereo bonds.
type BondOrder uint16

const (
	Single BondOrder = 1
	Double BondOrder = 2
	Triple BondOrder = 3

	CovalentMask BondOrder = 0x07

	// Partial bonds keep the integer part plus one in the low bits.
	PartialMask BondOrder = 0xE0
	Partial01   BondOrder = 0x21
	Partial12   BondOrder = 0x42
	Partial23   BondOrder = 0x63

	// Aromatic is an aromatic bond whose Kekulé order has not been decided.
	AromaticMask   BondOrder = 0x200
	Aromatic       BondOrder = 0x200
	AromaticSingle BondOrder = 0x201
	AromaticDouble BondOrder = 0x202

	// HBondRegular is a hydrogen bond found with explicit hydrogens;
	// HBondCalculated one inferred from heavy atoms only.
	HBondRegular    BondOrder = 0x800
	HBondCalculated BondOrder = 0x1000
	HydrogenMask    BondOrder = 0x1800

	StereoNear BondOrder = 0x4000
	StereoFar  BondOrder = 0x8000
	StereoMask BondOrder = 0xC000
)

// IsHydrogen reports whether the bond is a hydrogen bond of either kind.
func (o BondOrder) IsHydrogen() bool { return o&HydrogenMask != 0 }

// IsCovalent reports whether the bond is not a hydrogen bond.
func (o BondOrder) IsCovalent() bool { return o&HydrogenMask == 0 }

func (o BondOrder) IsAromatic() bool { return o&AromaticMask != 0 }

func (o BondOrder) IsPartial() bool { return o&PartialMask != 0 }

// CovalentOrder returns the integer multiplicity of the bond: 0 for
// hydrogen bonds, 1 for an unresolved aromatic bond, the integer part of a
// partial bond.
func (o BondOrder) CovalentOrder() int {
	switch {
	case o.IsHydrogen():
		return 0
	case o.IsPartial():
		return int(o&CovalentMask) - 1
	case o == Aromatic:
		return 1
	}
	return int(o & CovalentMask)
}

func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	case AromaticSingle:
		return "aromaticSingle"
	case AromaticDouble:
		return "aromaticDouble"
	case HBondRegular:
		return "hbond"
	case HBondCalculated:
		return "hbondCalculated"
	case Partial01:
		return "partial01"
	case Partial12:
		return "partial12"
	case Partial23:
		return "partial23"
	}
	var parts []string
	if o&StereoNear != 0 {
		parts = append(parts, "stereoNear")
	}
	if o&StereoFar != 0 {
		parts = append(parts, "stereoFar")
	}
	if rest := o &^ StereoMask; rest != 0 {
		parts = append(parts, BondOrder(rest).String())
	}
	if len(parts) == 0 {
		return fmt.Sprintf("BondOrder(%#x)", uint16(o))
	}
	return strings.Join(parts, "|")
}

// Bond joins two atoms of a Store. The atom fields are indexes into the
// Store, which owns the Bond. Bonds are read-only for callers; use the
// Store methods to change them.
type Bond struct {
	index   int
	at1     int
	at2     int
	order   BondOrder
	mad     int16
	visible bool
	energy  float64
}

func (B *Bond) Index() int { return B.index }

// Atoms returns the indexes of both atoms, in the order they were bonded.
func (B *Bond) Atoms() (int, int) { return B.at1, B.at2 }

func (B *Bond) Atom1() int { return B.at1 }

func (B *Bond) Atom2() int { return B.at2 }

func (B *Bond) Order() BondOrder { return B.order }

// Mad is the render diameter of the bond, in milli-Ångström.
func (B *Bond) Mad() int16 { return B.mad }

func (B *Bond) Visible() bool { return B.visible }

// Energy is the hydrogen bond energy in kcal/mol, 0 for other bonds.
func (B *Bond) Energy() float64 { return B.energy }

// Contains reports whether atom is one of the ends of the bond.
func (B *Bond) Contains(atom int) bool { return B.at1 == atom || B.at2 == atom }

// Cross returns the index of the atom at the other end of the bond from
// origin. Panics if origin is not part of the bond.
func (B *Bond) Cross(origin int) int {
	if origin == B.at1 {
		return B.at2
	}
	if origin == B.at2 {
		return B.at1
	}
	panic(ErrBondCrossing) //I think this got to be a programming error, so a panic is warranted.
}
