// Package dctopo synthesizes the exact node and link structure of well-known
// large-scale datacenter network architectures from a small set of structural
// parameters, for use in network-research simulation and capacity-planning
// studies.  Four generators are provided: a classical three-tier fat-tree,
// Facebook's Fabric, and two abstraction levels (switch-level and
// block-level) of Google's Jupiter.  Each generator allocates contiguous
// 1-based switch identifier ranges, one per architectural layer, and wires
// them according to the published architecture's cabling rules.  Every
// physical cable is represented by two opposite-direction edges.  An optional
// capacity rule annotates every directed edge with a capacity after wiring.
package dctopo

// dctopo.go holds the contract shared by the topology generators: the
// configuration error type, per-layer identifier ranges, capacity rules, and
// the state every topology carries.

import "fmt"

// A ConfigurationError reports structural parameters that cannot produce a
// valid topology.  It is the only error class this module raises, always
// fatal to the construction attempt that produced it; once construction
// succeeds, generation is pure arithmetic over validated parameters and
// cannot fail.
type ConfigurationError struct {
	msg string
}

func (ce *ConfigurationError) Error() string {
	return ce.msg
}

// configErrorf creates a ConfigurationError carrying a formatted message.
func configErrorf(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// A LayerRange is the contiguous block of switch identifiers assigned to one
// architectural layer.  First and Last are both members of the range.  Taken
// in order, the ranges of a topology partition [1,N] with no gaps or
// overlaps, leaf layer first.
type LayerRange struct {
	First int `json:"first" yaml:"first"`
	Last  int `json:"last" yaml:"last"`
}

// Size returns the number of identifiers in the range.
func (lr LayerRange) Size() int {
	return lr.Last - lr.First + 1
}

// Contains indicates whether id falls inside the range.
func (lr LayerRange) Contains(id int) bool {
	return lr.First <= id && id <= lr.Last
}

// LayerOf classifies an identifier against the ordered layer ranges of a
// topology, returning the position of the layer holding id, or -1 when id
// lies outside every range.  External layout and rendering code uses this to
// place a switch on its tier without re-deriving the sizing formulas.
func LayerOf(ranges []LayerRange, id int) int {
	for idx, lr := range ranges {
		if lr.Contains(id) {
			return idx
		}
	}
	return -1
}

// allocLayers partitions the identifier space among layers, leaf layer
// first.  Each layer receives a contiguous range sized by its switch count,
// each range starting right after the previous one stops, the first at 1.
func allocLayers(switchCounts ...int) []LayerRange {
	ranges := make([]LayerRange, 0, len(switchCounts))
	next := 1
	for _, count := range switchCounts {
		ranges = append(ranges, LayerRange{First: next, Last: next + count - 1})
		next += count
	}

	return ranges
}

// The Topology interface lets us use common code when any of the generated
// architectures is involved in graph production, annotation, or description.
type Topology interface {
	// GenGraph synthesizes the architecture's node and link structure.  The
	// result is a pure function of the construction parameters: repeated
	// calls return independently owned, equivalent graphs.
	GenGraph() *TopoGraph

	// LayerRanges returns the per-layer identifier ranges, leaf layer first.
	LayerRanges() []LayerRange

	// Descriptor returns a string encoding the architecture class and its
	// parameters, e.g. "FatTree_48", stable enough to serve as a file key.
	Descriptor() string
}

// An EndpointCapacityFunc computes the capacity of a directed link purely
// from the endpoint identifiers.
type EndpointCapacityFunc func(srcID, dstID int) float64

// A TopoCapacityFunc computes the capacity of a directed link with access to
// the topology that produced it, so a rule can consult structure, e.g. give
// intra-pod links one capacity and inter-pod links another.
type TopoCapacityFunc func(srcID, dstID int, topo Topology) float64

// A CapacityRule carries the function used to initialize link capacities, in
// exactly one of the two supported forms.  Build one with EndpointCapacity
// or TopologyCapacity.
type CapacityRule struct {
	endpointFn EndpointCapacityFunc
	topoFn     TopoCapacityFunc
}

// EndpointCapacity wraps a capacity function of the endpoints alone as a rule.
func EndpointCapacity(fn EndpointCapacityFunc) *CapacityRule {
	return &CapacityRule{endpointFn: fn}
}

// TopologyCapacity wraps a topology-aware capacity function as a rule.
func TopologyCapacity(fn TopoCapacityFunc) *CapacityRule {
	return &CapacityRule{topoFn: fn}
}

// validate checks that the rule carries exactly one of the two supported
// function forms.  A nil rule is valid and means no capacities are assigned.
func (cr *CapacityRule) validate() error {
	if cr == nil {
		return nil
	}
	if (cr.endpointFn == nil) == (cr.topoFn == nil) {
		return configErrorf("capacity rule must carry exactly one function, " +
			"of form cap(srcID, dstID) or cap(srcID, dstID, topology)")
	}

	return nil
}

// apply evaluates the rule on the directed link (srcID,dstID), passing the
// topology through when the rule's function asks for it.
func (cr *CapacityRule) apply(srcID, dstID int, topo Topology) float64 {
	if cr.endpointFn != nil {
		return cr.endpointFn(srcID, dstID)
	}

	return cr.topoFn(srcID, dstID, topo)
}

// topoBase holds the state every topology shares: the per-layer identifier
// ranges, the descriptor naming the architecture instance, and the optional
// capacity rule.  All fields are fixed at construction and never mutated, so
// distinct instances generate independently without locking.
type topoBase struct {
	layers     []LayerRange
	descriptor string
	capRule    *CapacityRule
}

// createTopoBase validates the capacity rule and assembles the shared state.
func createTopoBase(layers []LayerRange, descriptor string, rule *CapacityRule) (topoBase, error) {
	err := rule.validate()
	if err != nil {
		return topoBase{}, err
	}

	return topoBase{layers: layers, descriptor: descriptor, capRule: rule}, nil
}

// LayerRanges returns a copy of the per-layer identifier ranges, leaf first.
func (tb *topoBase) LayerRanges() []LayerRange {
	rtn := make([]LayerRange, len(tb.layers))
	copy(rtn, tb.layers)

	return rtn
}

// Descriptor returns the string naming the architecture class and parameters.
func (tb *topoBase) Descriptor() string {
	return tb.descriptor
}

// initCapacities applies the topology's capacity rule to every directed edge
// of a generated graph, visiting edges in the order the wiring algorithm
// created them so that annotation is deterministic.  When no rule was
// supplied the graph passes through untouched.
func (tb *topoBase) initCapacities(tg *TopoGraph, topo Topology) *TopoGraph {
	if tb.capRule == nil {
		return tg
	}

	for _, lnk := range tg.links {
		tg.setCapacity(lnk.From, lnk.To, tb.capRule.apply(lnk.From, lnk.To, topo))
	}

	return tg
}
