package chemgraph

import (
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	chem "github.com/wkpark/jmol-sub011"
)

//components returns the connected components of the graph formed by the
//bonds of b that pass filter, each as a sorted list of atom indexes, in
//the order of their first atom. Components smaller than minSize are left
//out.
func components(b chem.Bonder, filter func(*chem.Bond) bool, minSize int) [][]int {
	g := simple.NewUndirectedGraph()
	for i := 0; i < b.AtomCount(); i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < b.BondCount(); i++ {
		cb := b.Bond(i)
		if !filter(cb) {
			continue
		}
		a1, a2 := cb.Atoms()
		g.SetEdge(simple.Edge{F: simple.Node(a1), T: simple.Node(a2)})
	}
	var ret [][]int
	for _, c := range topo.ConnectedComponents(g) {
		if len(c) < minSize {
			continue
		}
		atoms := make([]int, len(c))
		for k, n := range c {
			atoms[k] = int(n.ID())
		}
		slices.Sort(atoms)
		ret = append(ret, atoms)
	}
	slices.SortFunc(ret, func(a, b []int) int { return a[0] - b[0] })
	return ret
}

// Fragments returns the molecules of b: the sets of atoms connected by
// covalent bonds. Each is sorted, and they are ordered by their lowest
// atom index. Unbonded atoms are fragments of their own.
func Fragments(b chem.Bonder) [][]int {
	return components(b, Covalent, 1)
}

// AromaticSystems returns the sets of atoms connected by aromatic bonds,
// ordered as in Fragments. Atoms with no aromatic bond are not included.
func AromaticSystems(b chem.Bonder) [][]int {
	return components(b, Aromatic, 2)
}

// ShortestPath returns the atoms on a shortest covalent bond path from one
// atom to another, both included, and false if they are not connected.
func ShortestPath(b chem.Bonder, from, to int) ([]int, bool) {
	g := New(b, Covalent)
	if g.Node(int64(from)) == nil || g.Node(int64(to)) == nil {
		return nil, false
	}
	sh := path.DijkstraFrom(g.Node(int64(from)), g)
	nodes, _ := sh.To(int64(to))
	if len(nodes) == 0 {
		return nil, false
	}
	return atomIndexes(nodes), true
}

// Distance returns the number of covalent bonds on a shortest path between
// two atoms, or -1 if they are not connected.
func Distance(b chem.Bonder, from, to int) int {
	p, ok := ShortestPath(b, from, to)
	if !ok {
		return -1
	}
	return len(p) - 1
}

func atomIndexes(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	return ret
}
