package dctopo

// graph.go holds the TopoGraph structure populated by the topology
// generators, built on the gonum graph module so that downstream consumers
// can run graph algorithms on a synthesized network directly.

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// A Link identifies one directed edge by the ids of its endpoints.  Every
// physical cable between switches u and v appears as the two links (u,v)
// and (v,u).
type Link struct {
	From int
	To   int
}

// A TopoGraph is the directed graph a topology generator produces.  Switch
// identifiers are 1-based and contiguous.  Nodes and edges live in a gonum
// directed graph; the links slice remembers the order in which edges were
// wired so that passes over the edge set are deterministic.
type TopoGraph struct {
	dg    *simple.DirectedGraph
	nodes int
	links []Link

	// caps stays nil until a capacity rule runs, so a graph generated
	// without one carries no capacity on any edge
	caps map[Link]float64
}

// newTopoGraph creates a TopoGraph holding as many nodes as the sum of the
// per-layer switch counts given, with ids 1 through that sum, and no edges.
func newTopoGraph(switchCounts ...int) *TopoGraph {
	total := 0
	for _, count := range switchCounts {
		total += count
	}

	tg := new(TopoGraph)
	tg.dg = simple.NewDirectedGraph()
	tg.nodes = total
	tg.links = make([]Link, 0)

	for id := 1; id <= total; id++ {
		tg.dg.AddNode(simple.Node(id))
	}

	return tg
}

// NodeCount returns the number of switches in the graph.  Identifiers are
// exactly 1 through NodeCount().
func (tg *TopoGraph) NodeCount() int {
	return tg.nodes
}

// HasLink indicates whether the directed edge (from,to) is present.
func (tg *TopoGraph) HasLink(from, to int) bool {
	return tg.dg.HasEdgeFromTo(int64(from), int64(to))
}

// Links returns a copy of the graph's directed edges, in the order the
// wiring algorithm created them.
func (tg *TopoGraph) Links() []Link {
	rtn := make([]Link, len(tg.links))
	copy(rtn, tg.links)

	return rtn
}

// Neighbors returns the ids of the switches the named switch links to, in
// increasing order.
func (tg *TopoGraph) Neighbors(id int) []int {
	rtn := make([]int, 0)
	it := tg.dg.From(int64(id))
	for it.Next() {
		rtn = append(rtn, int(it.Node().ID()))
	}
	slices.Sort(rtn)

	return rtn
}

// Directed exposes the underlying gonum graph so that consumers can apply
// the algorithms of the graph module without copying the structure.
func (tg *TopoGraph) Directed() graph.Directed {
	return tg.dg
}

// Capacity returns the capacity recorded on the directed edge (from,to) and
// a flag indicating whether one is present.  No edge carries a capacity
// unless the topology was constructed with a capacity rule.
func (tg *TopoGraph) Capacity(from, to int) (float64, bool) {
	capacity, present := tg.caps[Link{From: from, To: to}]

	return capacity, present
}

// addCable wires one physical cable between the switches whose ids are
// given, inserting a directed edge in each direction.  Re-adding an existing
// cable is a no-op.  The wiring algorithms only produce endpoints inside the
// allocated id space and never cable a switch to itself, so violations here
// are internal faults, not configuration errors.
func (tg *TopoGraph) addCable(u, v int) {
	if u == v {
		panic(fmt.Errorf("attempt to cable switch %d to itself", u))
	}
	if u < 1 || u > tg.nodes || v < 1 || v > tg.nodes {
		panic(fmt.Errorf("cable endpoint outside of switch id range [1,%d]", tg.nodes))
	}
	tg.addEdge(u, v)
	tg.addEdge(v, u)
}

func (tg *TopoGraph) addEdge(from, to int) {
	if tg.dg.HasEdgeFromTo(int64(from), int64(to)) {
		return
	}
	tg.dg.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	tg.links = append(tg.links, Link{From: from, To: to})
}

// setCapacity records the capacity of the directed edge (from,to).
func (tg *TopoGraph) setCapacity(from, to int, capacity float64) {
	if tg.caps == nil {
		tg.caps = make(map[Link]float64)
	}
	tg.caps[Link{From: from, To: to}] = capacity
}
