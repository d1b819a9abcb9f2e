// Package chemgraph gives a gonum graph view of the bonds of a structure,
// and the graph queries built on it: molecules (connected fragments),
// aromatic systems and shortest bond paths.
package chemgraph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"

	chem "github.com/wkpark/jmol-sub011"
)

// Atom is a node of the graph. Its ID is the atom index.
type Atom struct {
	index int
	Bonds []*Bond
}

func (A *Atom) ID() int64 {
	return int64(A.index)
}

// Index returns the index of the atom in the structure.
func (A *Atom) Index() int {
	return A.index
}

// Bond is an undirected, weighted edge of the graph.
type Bond struct {
	index      int
	order      chem.BondOrder
	At1, At2   *Atom
	Weightfunc func(*Bond) float64
}

// Weight returns the weight of the bond, 1 unless a Weightfunc was given.
func (B *Bond) Weight() float64 {
	if B.Weightfunc == nil {
		return 1
	}
	return B.Weightfunc(B)
}

// Index returns the index of the bond in the structure.
func (B *Bond) Index() int { return B.index }

func (B *Bond) Order() chem.BondOrder { return B.order }

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

// ReversedEdge returns a copy of the bond with its ends swapped.
func (B *Bond) ReversedEdge() graph.Edge {
	r := *B
	r.At1, r.At2 = B.At2, B.At1
	return &r
}

// Graph implements the gonum graph.WeightedUndirected interface over the
// bonds of a structure. It is a snapshot: later changes to the structure
// are not seen.
type Graph struct {
	atoms []*Atom
	bonds []*Bond
	pairs map[[2]int]*Bond
}

// New builds the graph of the atoms of b and those of its bonds for which
// filter returns true (every bond if filter is nil). Every atom is a node,
// bonded or not.
func New(b chem.Bonder, filter func(*chem.Bond) bool) *Graph {
	g := &Graph{
		atoms: make([]*Atom, b.AtomCount()),
		pairs: make(map[[2]int]*Bond),
	}
	for i := range g.atoms {
		g.atoms[i] = &Atom{index: i}
	}
	for i := 0; i < b.BondCount(); i++ {
		cb := b.Bond(i)
		if filter != nil && !filter(cb) {
			continue
		}
		a1, a2 := cb.Atoms()
		nb := &Bond{index: i, order: cb.Order(), At1: g.atoms[a1], At2: g.atoms[a2]}
		g.bonds = append(g.bonds, nb)
		g.atoms[a1].Bonds = append(g.atoms[a1].Bonds, nb)
		g.atoms[a2].Bonds = append(g.atoms[a2].Bonds, nb)
		g.pairs[pair(a1, a2)] = nb
	}
	return g
}

// Covalent is a New filter that keeps covalent bonds only.
func Covalent(b *chem.Bond) bool { return b.Order().IsCovalent() }

// Aromatic is a New filter that keeps aromatic bonds, resolved or not.
func Aromatic(b *chem.Bond) bool { return b.Order().IsAromatic() }

// SetWeight sets the function that gives the weight of every bond.
func (G *Graph) SetWeight(f func(*Bond) float64) {
	for _, b := range G.bonds {
		b.Weightfunc = f
	}
}

// Bonds returns the edges of the graph, in bond index order.
func (G *Graph) Bonds() []*Bond {
	return G.bonds
}

func pair(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func (G *Graph) valid(id int64) bool {
	return id >= 0 && id < int64(len(G.atoms))
}

func (G *Graph) Node(id int64) graph.Node {
	if !G.valid(id) {
		return nil
	}
	return G.atoms[id]
}

func (G *Graph) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(G.atoms))
	for i, v := range G.atoms {
		nodes[i] = v
	}
	return iterator.NewOrderedNodes(nodes)
}

func (G *Graph) From(id int64) graph.Nodes {
	if !G.valid(id) {
		return graph.Empty
	}
	at := G.atoms[id]
	nodes := make([]graph.Node, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		if b.At1 == at {
			nodes = append(nodes, b.At2)
		} else {
			nodes = append(nodes, b.At1)
		}
	}
	return iterator.NewOrderedNodes(nodes)
}

func (G *Graph) HasEdgeBetween(xid, yid int64) bool {
	return G.bond(xid, yid) != nil
}

func (G *Graph) bond(xid, yid int64) *Bond {
	if !G.valid(xid) || !G.valid(yid) {
		return nil
	}
	return G.pairs[pair(int(xid), int(yid))]
}

// WeightedEdgeBetween returns the bond between x and y, oriented from x to
// y, or nil.
func (G *Graph) WeightedEdgeBetween(xid, yid int64) graph.WeightedEdge {
	b := G.bond(xid, yid)
	if b == nil {
		return nil
	}
	if b.At1.ID() != xid {
		return b.ReversedEdge().(*Bond)
	}
	return b
}

func (G *Graph) WeightedEdge(uid, vid int64) graph.WeightedEdge {
	return G.WeightedEdgeBetween(uid, vid)
}

func (G *Graph) EdgeBetween(xid, yid int64) graph.Edge {
	e := G.WeightedEdgeBetween(xid, yid)
	if e == nil {
		return nil
	}
	return e
}

func (G *Graph) Edge(uid, vid int64) graph.Edge {
	return G.EdgeBetween(uid, vid)
}

// Weight returns the weight of the bond between x and y. The weight of an
// atom with itself is 0.
func (G *Graph) Weight(xid, yid int64) (w float64, ok bool) {
	if xid == yid {
		return 0.0, true
	}
	b := G.bond(xid, yid)
	if b == nil {
		return -1, false
	}
	return b.Weight(), true
}
