/*
 * atomicdata.go, part of gochem.
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
	"strings"
	"unicode"
)

type element struct {
	symbol string
	mass   float64
	covrad float64
	vdwrad float64
}

//Element data indexed by atomic number. Index 0 is the "unknown" element.
//Covalent radii from Cordero et al., 2008 (DOI:10.1039/B801115J)
//van der Waals radii from 10.1021/j100785a001 and 10.1021/jp8111556,
//2.0 where no value is tabulated.
var elements = [...]element{
	{"Xx", 0, 0, 2.0},
	{"H", 1.008, 0.31, 1.10},
	{"He", 4.003, 0.28, 1.40},
	{"Li", 6.94, 1.28, 1.82},
	{"Be", 9.012, 0.96, 1.53},
	{"B", 10.81, 0.84, 1.92},
	{"C", 12.01, 0.76, 1.70}, //the sp3 radius
	{"N", 14.01, 0.71, 1.55},
	{"O", 16.00, 0.66, 1.52},
	{"F", 19.00, 0.57, 1.47},
	{"Ne", 20.18, 0.58, 1.54},
	{"Na", 22.99, 1.66, 2.27},
	{"Mg", 24.30, 1.41, 1.73},
	{"Al", 26.98, 1.21, 1.84},
	{"Si", 28.08, 1.11, 2.10},
	{"P", 30.97, 1.07, 1.80},
	{"S", 32.06, 1.05, 1.80},
	{"Cl", 35.45, 1.02, 1.75},
	{"Ar", 39.95, 1.06, 1.88},
	{"K", 39.10, 2.03, 2.75},
	{"Ca", 40.08, 1.76, 2.31},
	{"Sc", 44.96, 1.70, 2.0},
	{"Ti", 47.87, 1.60, 2.0},
	{"V", 50.94, 1.53, 2.0},
	{"Cr", 51.996, 1.39, 1.97},
	{"Mn", 54.94, 1.61, 1.96}, //hs
	{"Fe", 55.84, 1.52, 1.96}, //hs
	{"Co", 58.93, 1.50, 1.95}, //hs
	{"Ni", 58.69, 1.24, 1.63},
	{"Cu", 63.55, 1.32, 2.00},
	{"Zn", 65.38, 1.22, 2.02},
	{"Ga", 69.72, 1.22, 1.87},
	{"Ge", 72.63, 1.20, 2.11},
	{"As", 74.92, 1.19, 1.85},
	{"Se", 78.96, 1.20, 1.90},
	{"Br", 79.90, 1.20, 1.83},
	{"Kr", 83.80, 1.16, 2.02},
	{"Rb", 85.47, 2.20, 3.03},
	{"Sr", 87.62, 1.95, 2.49},
	{"Y", 88.91, 1.90, 2.0},
	{"Zr", 91.22, 1.75, 2.0},
	{"Nb", 92.91, 1.64, 2.0},
	{"Mo", 95.95, 1.54, 2.0},
	{"Tc", 98, 1.47, 2.0},
	{"Ru", 101.07, 1.46, 2.0},
	{"Rh", 102.91, 1.42, 2.0},
	{"Pd", 106.42, 1.39, 1.63},
	{"Ag", 107.87, 1.45, 1.72},
	{"Cd", 112.41, 1.44, 1.58},
	{"In", 114.82, 1.42, 1.93},
	{"Sn", 118.71, 1.39, 2.17},
	{"Sb", 121.76, 1.39, 2.06},
	{"Te", 127.60, 1.38, 2.06},
	{"I", 126.90, 1.39, 1.98},
	{"Xe", 131.29, 1.40, 2.16},
}

//Heavier elements that show up in biomolecular files, outside the table above.
var heavyElements = map[int]element{
	78: {"Pt", 195.08, 1.36, 1.75},
	79: {"Au", 196.97, 1.36, 1.66},
	80: {"Hg", 200.59, 1.32, 1.55},
	82: {"Pb", 207.2, 1.46, 2.02},
}

//A map for ionic radii used as bonding radii of charged atoms, keyed by
//atomic number and formal charge. Only common ions are listed; any other
//charged atom falls back to its covalent radius.
var ionicRadii = map[[2]int]float64{
	{3, 1}:   0.68,
	{11, 1}:  0.97,
	{19, 1}:  1.33,
	{12, 2}:  0.66,
	{20, 2}:  0.99,
	{25, 2}:  0.80,
	{26, 2}:  0.74,
	{26, 3}:  0.64,
	{27, 2}:  0.72,
	{29, 1}:  0.96,
	{29, 2}:  0.72,
	{30, 2}:  0.74,
	{9, -1}:  1.33,
	{17, -1}: 1.81,
	{35, -1}: 1.96,
	{53, -1}: 2.20,
	{8, -2}:  1.32,
	{16, -2}: 1.84,
}

var symbolNumber = func() map[string]int {
	m := make(map[string]int, len(elements)+len(heavyElements))
	for i, v := range elements {
		if i == 0 {
			continue
		}
		m[strings.ToUpper(v.symbol)] = i
	}
	for k, v := range heavyElements {
		m[strings.ToUpper(v.symbol)] = k
	}
	return m
}()

func elementData(n int) (element, bool) {
	if n >= 0 && n < len(elements) {
		return elements[n], n != 0
	}
	e, ok := heavyElements[n]
	return e, ok
}

// ElementSymbol returns the symbol of atomic number n, or "Xx" if unknown.
func ElementSymbol(n int) string {
	e, ok := elementData(n)
	if !ok {
		return "Xx"
	}
	return e.symbol
}

// ElementNumber returns the atomic number for a symbol (case-insensitive),
// or 0 if the symbol is not known.
func ElementNumber(symbol string) int {
	return symbolNumber[strings.ToUpper(strings.TrimSpace(symbol))]
}

// ElementMass returns the standard atomic weight of element n, 0 if unknown.
func ElementMass(n int) float64 {
	e, _ := elementData(n)
	return e.mass
}

// CovalentRadius returns the tabulated covalent radius of element n, in Å.
func CovalentRadius(n int) float64 {
	e, _ := elementData(n)
	return e.covrad
}

// VdwRadius returns the tabulated van der Waals radius of element n, in Å.
func VdwRadius(n int) float64 {
	e, ok := elementData(n)
	if !ok {
		return elements[0].vdwrad
	}
	return e.vdwrad
}

// BondingRadius returns the radius used to decide covalent bonding for
// element n with formal charge charge: the ionic radius for the common ions,
// the covalent radius otherwise.
func BondingRadius(n, charge int) float64 {
	if charge != 0 {
		if r, ok := ionicRadii[[2]int{n, charge}]; ok {
			return r
		}
	}
	return CovalentRadius(n)
}

//A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

//ElementFromName tries to guess the atomic number from a PDB atom name,
//mostly based on AMBER names. It only deals with some common bio-elements
//and returns 0 when it can't tell.
func ElementFromName(name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}
	if len(name) == 4 && unicode.IsDigit(rune(name[0])) {
		name = name[1:] //names like 1HB2
	}
	first := unicode.ToUpper(rune(name[0]))
	//Names like "Fe" are symbols. All-caps names are symbols only if they
	//can't be the usual H/C/N/O/P/S atom names (CA is a carbon, not calcium).
	if len(name) == 1 || len(name) == 2 && (unicode.IsLower(rune(name[1])) || !strings.ContainsRune("HCNOPS", first)) {
		if n := ElementNumber(name); n != 0 {
			return n
		}
	}
	switch first {
	case 'H':
		return 1
	case 'C':
		return 6 //Ca is not considered here
	case 'N':
		return 7
	case 'O':
		return 8
	case 'P':
		return 15
	case 'S':
		if len(name) > 1 && unicode.ToUpper(rune(name[1])) == 'E' {
			return 34
		}
		return 16
	}
	return 0
}
