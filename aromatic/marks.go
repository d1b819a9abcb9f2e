/*
 * marks.go, part of gochem.
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

package aromatic

import "github.com/bits-and-blooms/bitset"

//marks holds the tentative single/double decisions for aromatic bonds.
//Every mark is journaled, so an attempt can be undone as a whole,
//including the marks made by the attempts nested in it.
type marks struct {
	single  *bitset.BitSet
	double  *bitset.BitSet
	journal []uint
}

func newMarks(nbonds int) *marks {
	return &marks{single: bitset.New(uint(nbonds)), double: bitset.New(uint(nbonds))}
}

func (m *marks) isSingle(b int) bool { return m.single.Test(uint(b)) }

func (m *marks) isDouble(b int) bool { return m.double.Test(uint(b)) }

func (m *marks) resolved(b int) bool { return m.isSingle(b) || m.isDouble(b) }

func (m *marks) markSingle(b int) {
	m.single.Set(uint(b))
	m.journal = append(m.journal, uint(b))
}

func (m *marks) markDouble(b int) {
	m.double.Set(uint(b))
	m.journal = append(m.journal, uint(b))
}

//preset marks a bond that was resolved before the assignment started.
//Preset marks are never rolled back.
func (m *marks) preset(b int, double bool) {
	if double {
		m.double.Set(uint(b))
		return
	}
	m.single.Set(uint(b))
}

//transaction is an attempt to resolve a bond: marks made after begin are
//undone by rollback.
type transaction struct {
	m    *marks
	mark int
}

func (m *marks) begin() transaction {
	return transaction{m: m, mark: len(m.journal)}
}

func (t transaction) rollback() {
	for _, b := range t.m.journal[t.mark:] {
		t.m.single.Clear(b)
		t.m.double.Clear(b)
	}
	t.m.journal = t.m.journal[:t.mark]
}

//commit makes the marks of a top-level attempt permanent.
func (t transaction) commit() {
	t.m.journal = t.m.journal[:t.mark]
}
