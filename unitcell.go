/*
 * unitcell.go, part of gochem.
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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnitCell is a Symmetry given by the six cell parameters. The same cell
// is used for every model.
type UnitCell struct {
	toCart *mat.Dense //columns are the a, b and c cell vectors
	toFrac *mat.Dense
	lo, hi r3.Vec
}

// NewUnitCell returns the cell with edges a, b and c (Å) and angles alpha,
// beta and gamma (degrees). The cell range is {0,0,0} to {1,1,1}.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) (*UnitCell, error) {
	const deg2rad = math.Pi / 180
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, newError(ErrBadRecord, false, "NewUnitCell", "cell edges %g %g %g", a, b, c)
	}
	ca, cb, cg := math.Cos(alpha*deg2rad), math.Cos(beta*deg2rad), math.Cos(gamma*deg2rad)
	sg := math.Sin(gamma * deg2rad)
	if math.Abs(sg) < 1e-8 {
		return nil, newError(ErrBadRecord, false, "NewUnitCell", "gamma angle %g", gamma)
	}
	cy := (ca - cb*cg) / sg
	cz2 := 1 - cb*cb - cy*cy
	if cz2 <= 0 {
		return nil, newError(ErrBadRecord, false, "NewUnitCell", "cell angles %g %g %g", alpha, beta, gamma)
	}
	m := mat.NewDense(3, 3, []float64{
		a, b * cg, c * cb,
		0, b * sg, c * cy,
		0, 0, c * math.Sqrt(cz2),
	})
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(m); err != nil {
		return nil, newError(ErrBadRecord, false, "NewUnitCell", "singular cell: %v", err)
	}
	return &UnitCell{toCart: m, toFrac: inv, hi: r3.Vec{X: 1, Y: 1, Z: 1}}, nil
}

// SetRange sets the fractional range reported by CellRange.
func (U *UnitCell) SetRange(lo, hi r3.Vec) { U.lo, U.hi = lo, hi }

func mulVec(m *mat.Dense, p r3.Vec) r3.Vec {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{p.X, p.Y, p.Z}))
	return r3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

func (U *UnitCell) ToFractional(model int, p r3.Vec) r3.Vec { return mulVec(U.toFrac, p) }

func (U *UnitCell) ToCartesian(model int, p r3.Vec) r3.Vec { return mulVec(U.toCart, p) }

func (U *UnitCell) CellRange(model int) (r3.Vec, r3.Vec) { return U.lo, U.hi }

// Volume returns the volume of the cell in Å^3.
func (U *UnitCell) Volume() float64 { return math.Abs(mat.Det(U.toCart)) }
