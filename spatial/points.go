/*
 * points.go, part of gochem.
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

package spatial

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// point is an atom position tagged with its atom index. It implements
// kdtree.Comparable. Distances are squared, as in kdtree.Point.
type point struct {
	atom int
	pos  r3.Vec
}

func coord(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return coord(p.pos, d) - coord(q.pos, d)
}

func (p point) Dims() int { return 3 }

func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	return r3.Norm2(r3.Sub(p.pos, q.pos))
}

// points implements kdtree.Interface.
type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }
func (p points) Len() int                      { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p points) Pivot(d kdtree.Dim) int {
	return plane{points: p, Dim: d}.Pivot()
}

// plane sorts points along one dimension, for median selection.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	return coord(p.points[i].pos, p.Dim) < coord(p.points[j].pos, p.Dim)
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
