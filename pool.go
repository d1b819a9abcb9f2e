/*
 * pool.go, part of gochem.
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

const (
	maxPooledBondList = 4   //largest bond list capacity that gets recycled
	maxPoolBucket     = 200 //lists kept per capacity
)

//bondListPool recycles the small bond lists of atoms. Almost every atom has
//between 1 and 4 bonds, and rebonding a large structure would otherwise
//allocate millions of tiny slices.
//It is owned by one Store, so it needs no locking.
type bondListPool struct {
	buckets [maxPooledBondList + 1][][]int
	hits    int
	misses  int
}

func newBondListPool() *bondListPool {
	return new(bondListPool)
}

//get returns an empty slice with capacity n.
func (p *bondListPool) get(n int) []int {
	if p != nil && n > 0 && n <= maxPooledBondList {
		b := p.buckets[n]
		if l := len(b); l > 0 {
			ret := b[l-1]
			p.buckets[n] = b[:l-1]
			p.hits++
			return ret[:0]
		}
		p.misses++
	}
	return make([]int, 0, n)
}

//put gives a list back. Lists too large, or with a full bucket, are left to
//the garbage collector.
func (p *bondListPool) put(l []int) {
	c := cap(l)
	if p == nil || c == 0 || c > maxPooledBondList || len(p.buckets[c]) >= maxPoolBucket {
		return
	}
	p.buckets[c] = append(p.buckets[c], l[:0])
}

//addAtomBond appends bond b to the list of atom a. Lists grow one slot at a
//time while small, using the pool, and geometrically afterwards.
func (s *Store) addAtomBond(a, b int) {
	l := s.atoms[a].bonds
	if len(l) < cap(l) {
		s.atoms[a].bonds = append(l, b)
		return
	}
	newcap := len(l) + 1
	if newcap > maxPooledBondList {
		newcap = 2 * len(l)
	}
	nl := s.pool.get(newcap)
	nl = append(nl, l...)
	nl = append(nl, b)
	s.pool.put(l)
	s.atoms[a].bonds = nl
}

//removeAtomBond drops bond b from the list of atom a, keeping the order of
//the rest.
func (s *Store) removeAtomBond(a, b int) {
	l := s.atoms[a].bonds
	for k, v := range l {
		if v != b {
			continue
		}
		copy(l[k:], l[k+1:])
		l = l[:len(l)-1]
		break
	}
	if len(l) == 0 {
		s.pool.put(l)
		l = nil
	}
	s.atoms[a].bonds = l
}
