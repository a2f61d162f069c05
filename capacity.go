package dctopo

// capacity.go holds stock capacity rules for annotating the links of a
// generated topology.

import "github.com/iti/rngstream"

// UniformCapacityRule assigns every directed edge the same capacity.
func UniformCapacityRule(capacity float64) *CapacityRule {
	return EndpointCapacity(func(srcID, dstID int) float64 {
		return capacity
	})
}

// RandomCapacityRule assigns each physical cable a capacity drawn uniformly
// from [minCap, maxCap), with both directed edges of a cable sharing one
// draw, so link capacity is symmetric.  Draws come from the rngstream
// generator with the given name; a given name and topology reproduce the
// same capacities on every generation.
func RandomCapacityRule(name string, minCap, maxCap float64) *CapacityRule {
	rng := rngstream.New(name)
	drawn := make(map[Link]float64)

	return EndpointCapacity(func(srcID, dstID int) float64 {
		// normalize the endpoint order so both directions share the draw
		key := Link{From: srcID, To: dstID}
		if dstID < srcID {
			key = Link{From: dstID, To: srcID}
		}

		capacity, present := drawn[key]
		if !present {
			capacity = minCap + (maxCap-minCap)*rng.RandU01()
			drawn[key] = capacity
		}

		return capacity
	})
}
