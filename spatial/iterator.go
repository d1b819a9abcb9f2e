/*
 * iterator.go, part of gochem.
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

// Iterator walks the result of one proximity query. An iterator is a scoped
// resource: the caller must call Release on every exit path, usually with
// defer, after which the iterator must not be used again. Iterators keep
// reusable buffers and are not safe for concurrent use; concurrent readers
// should use Index.Within.
//
//	it := idx.Query(model, center, 3.0)
//	defer it.Release()
//	for it.Next() {
//		use(it.Atom(), it.Dist2())
//	}
type Iterator struct {
	idx    *Index
	part   *partition
	keeper *kdtree.DistKeeper
	hits   []Hit
	cur    int
	shared bool
	live   bool
}

func newIterator(idx *Index, shared bool) *Iterator {
	return &Iterator{idx: idx, keeper: kdtree.NewDistKeeper(0), shared: shared}
}

// acquire returns the index's shared iterator if nobody holds it, or a
// fresh one otherwise.
func (I *Index) acquire() *Iterator {
	I.mu.Lock()
	defer I.mu.Unlock()
	if I.shared == nil {
		I.shared = newIterator(I, true)
	}
	if !I.shared.live {
		I.shared.live = true
		return I.shared
	}
	it := newIterator(I, false)
	it.live = true
	return it
}

// Query returns an iterator over every atom of model within radius of
// center, in ascending atom index order.
func (I *Index) Query(model int, center r3.Vec, radius float64) *Iterator {
	it := I.acquire()
	it.run(model, center, radius, -1, false)
	return it
}

// QueryAtom is like Query centered on atom, which must belong to model.
// The atom itself is never returned. If greaterOnly is true, only atoms with
// a larger index are returned, so that a loop over all atoms visits each
// pair once.
func (I *Index) QueryAtom(model, atom int, radius float64, greaterOnly bool) *Iterator {
	it := I.acquire()
	it.run(model, I.src.Position(atom), radius, atom, greaterOnly)
	return it
}

func (it *Iterator) run(model int, center r3.Vec, radius float64, skip int, greaterOnly bool) {
	it.part = it.idx.partition(model)
	it.part.search(it.keeper, center, radius)
	it.hits = collect(it.keeper, it.hits, skip, greaterOnly)
	it.cur = -1
}

// Next advances to the next hit and reports whether there is one.
func (it *Iterator) Next() bool {
	if !it.live {
		panic(PanicMsg("spatial: use of a released iterator"))
	}
	it.cur++
	return it.cur < len(it.hits)
}

// Atom returns the atom index of the current hit.
func (it *Iterator) Atom() int {
	return it.hits[it.cur].Atom
}

// Dist2 returns the squared distance between the query center and the
// current hit.
func (it *Iterator) Dist2() float64 {
	return it.hits[it.cur].Dist2
}

// Len returns the total number of hits of the query.
func (it *Iterator) Len() int {
	return len(it.hits)
}

// Release ends the use of the iterator. It drops the iterator's reference to
// the partition it searched, so a partition invalidated in the meantime can
// be reclaimed. Calling Release twice is harmless.
func (it *Iterator) Release() {
	if !it.live {
		return
	}
	it.part = nil
	it.hits = it.hits[:0]
	it.keeper.Heap = it.keeper.Heap[:0]
	it.cur = -1
	if it.shared {
		it.idx.mu.Lock()
		it.live = false
		it.idx.mu.Unlock()
		return
	}
	it.live = false
}

// PanicMsg is used for panics caused by misuse of the package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }
