/*
 * index.go, part of gochem.
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

// Package spatial keeps one k-d partition per model over atom positions and
// answers "which atoms lie within r of p" queries.
//
// Partitions are built lazily, the first time a model is queried, and are
// read-only afterwards. Any change in coordinates or atom numbering must be
// followed by Invalidate or InvalidateAll; the index never updates a
// partition incrementally.
package spatial

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Source gives the index access to atom positions. Atoms of one model must
// occupy the contiguous index range [first, first+count).
type Source interface {
	ModelRange(model int) (first, count int)
	Position(atom int) r3.Vec
}

// Hit is one result of a proximity query.
type Hit struct {
	Atom  int
	Dist2 float64
}

// partition is the built k-d tree of one model.
type partition struct {
	tree  *kdtree.Tree
	count int
}

// Index holds the partitions of every model of a Source.
//
// Building is guarded by a mutex so concurrent readers using Within on an
// otherwise unchanging structure are safe. Iterators are not: see Iterator.
type Index struct {
	src   Source
	mu    sync.Mutex
	parts map[int]*partition
	// shared is handed out by Query when no other caller holds it.
	shared *Iterator
	builds int
}

// New returns an empty index over src.
func New(src Source) *Index {
	return &Index{src: src, parts: make(map[int]*partition)}
}

// Invalidate drops the partition of model so the next query rebuilds it.
func (I *Index) Invalidate(model int) {
	I.mu.Lock()
	delete(I.parts, model)
	I.mu.Unlock()
}

// InvalidateAll drops every partition.
func (I *Index) InvalidateAll() {
	I.mu.Lock()
	I.parts = make(map[int]*partition)
	I.mu.Unlock()
}

// Built reports whether model currently has a partition.
func (I *Index) Built(model int) bool {
	I.mu.Lock()
	_, ok := I.parts[model]
	I.mu.Unlock()
	return ok
}

// Builds returns how many partitions have been built since the index
// was created. It is meant for diagnostics.
func (I *Index) Builds() int {
	I.mu.Lock()
	defer I.mu.Unlock()
	return I.builds
}

func (I *Index) partition(model int) *partition {
	I.mu.Lock()
	defer I.mu.Unlock()
	if p, ok := I.parts[model]; ok {
		return p
	}
	first, count := I.src.ModelRange(model)
	pts := make(points, 0, count)
	for i := first; i < first+count; i++ {
		pts = append(pts, point{atom: i, pos: I.src.Position(i)})
	}
	p := &partition{count: count}
	if count > 0 {
		p.tree = kdtree.New(pts, false)
	}
	I.parts[model] = p
	I.builds++
	return p
}

// search collects into keeper every atom of model within radius of center.
func (p *partition) search(keeper *kdtree.DistKeeper, center r3.Vec, radius float64) {
	keeper.Heap = keeper.Heap[:1]
	keeper.Heap[0] = kdtree.ComparableDist{Dist: radius * radius}
	if p.tree == nil {
		keeper.Heap = keeper.Heap[:0]
		return
	}
	p.tree.NearestSet(keeper, point{atom: -1, pos: center})
}

// Within is the stateless query path: it returns, ordered by atom index,
// every atom of model within radius of center. It allocates its own result
// and touches no shared iterator, so any number of goroutines may call it
// at once as long as nobody mutates the structure meanwhile.
func (I *Index) Within(model int, center r3.Vec, radius float64) []Hit {
	p := I.partition(model)
	keeper := kdtree.NewDistKeeper(radius * radius)
	p.search(keeper, center, radius)
	return collect(keeper, nil, -1, false)
}

// collect turns the keeper heap into hits sorted by atom index, optionally
// dropping the atom skip and, when greaterOnly is set, every atom whose
// index is not larger than skip.
func collect(keeper *kdtree.DistKeeper, dst []Hit, skip int, greaterOnly bool) []Hit {
	dst = dst[:0]
	for _, v := range keeper.Heap {
		if v.Comparable == nil {
			continue
		}
		a := v.Comparable.(point).atom
		if a == skip || greaterOnly && a < skip {
			continue
		}
		dst = append(dst, Hit{Atom: a, Dist2: v.Dist})
	}
	sort.Slice(dst, func(i, j int) bool { return dst[i].Atom < dst[j].Atom })
	return dst
}
