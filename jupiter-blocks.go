package dctopo

// jupiter-blocks.go holds the block-level generator for Google's Jupiter
// architecture: every aggregation block's middle blocks and every spine
// block collapse to single logical nodes, with no intra-block mesh.
// Structure extracted from: https://dl.acm.org/citation.cfm?doid=2785956.2787508

import "fmt"

// JupiterPortsPerMiddleBlockUp is the number of uplink ports a collapsed
// middle-block node offers toward the spine layer (depopulated deployment).
const JupiterPortsPerMiddleBlockUp = 32

// A JupiterBlocks synthesizes Google's Jupiter at block granularity.  The
// top-of-rack layer stays at switch granularity; each middle block and each
// spine block is one logical node.
type JupiterBlocks struct {
	topoBase
	spineBlockCount       int
	aggregationBlockCount int
}

// CreateJupiterBlocks is a constructor.  Parameters and preconditions match
// CreateJupiter: zero selects the defaults of 256 spine and 64 aggregation
// blocks, and the spine block count must be at least the aggregation block
// count.  rule, which may be nil, initializes link capacities after wiring.
func CreateJupiterBlocks(spineBlockCount, aggregationBlockCount int, rule *CapacityRule) (*JupiterBlocks, error) {
	spineBlockCount, aggregationBlockCount, err := validateJupiterBlocks(spineBlockCount, aggregationBlockCount)
	if err != nil {
		return nil, err
	}

	jb := new(JupiterBlocks)
	jb.spineBlockCount = spineBlockCount
	jb.aggregationBlockCount = aggregationBlockCount

	torCount := aggregationBlockCount * JupiterTorsPerAggregationBlock
	middleBlockCount := aggregationBlockCount * JupiterMiddleBlocksPerAggregation

	layers := allocLayers(torCount, middleBlockCount, spineBlockCount)
	descriptor := fmt.Sprintf("Jupiter_bl_%d_%d", spineBlockCount, aggregationBlockCount)
	base, berr := createTopoBase(layers, descriptor, rule)
	if berr != nil {
		return nil, berr
	}
	jb.topoBase = base

	return jb, nil
}

// TorRange returns the identifier range of the top-of-rack layer.
func (jb *JupiterBlocks) TorRange() LayerRange {
	return jb.layers[0]
}

// AggregationRange returns the identifier range of the middle-block nodes.
func (jb *JupiterBlocks) AggregationRange() LayerRange {
	return jb.layers[1]
}

// SpineRange returns the identifier range of the spine-block nodes.
func (jb *JupiterBlocks) SpineRange() LayerRange {
	return jb.layers[2]
}

// GenGraph synthesizes Jupiter's node and link structure at block level.
func (jb *JupiterBlocks) GenGraph() *TopoGraph {
	torRange := jb.TorRange()
	aggRange := jb.AggregationRange()
	spineRange := jb.SpineRange()
	tg := newTopoGraph(torRange.Size(), aggRange.Size(), spineRange.Size())

	// every top-of-rack switch reaches all eight middle-block nodes of its
	// aggregation block
	torID := torRange.First
	for a := 0; a < jb.aggregationBlockCount; a++ {
		for t := 0; t < JupiterTorsPerAggregationBlock; t++ {
			for m := 0; m < JupiterMiddleBlocksPerAggregation; m++ {
				tg.addCable(torID, aggRange.First+a*JupiterMiddleBlocksPerAggregation+m)
			}
			torID++
		}
	}

	// middle blocks to spine blocks
	if JupiterPortsPerMiddleBlockUp >= jb.spineBlockCount {
		// few enough spine blocks that every middle block reaches all of them
		for aggID := aggRange.First; aggID <= aggRange.Last; aggID++ {
			for spineID := spineRange.First; spineID <= spineRange.Last; spineID++ {
				tg.addCable(aggID, spineID)
			}
		}
	} else {
		// more spine blocks than uplink ports: each middle block takes the
		// next JupiterPortsPerMiddleBlockUp spine blocks off a cursor that
		// wraps over all spine blocks, so load spreads across the whole
		// spine layer instead of each middle block exhausting a local subset
		spineBlockIdx := 0
		for aggID := aggRange.First; aggID <= aggRange.Last; aggID++ {
			for port := 0; port < JupiterPortsPerMiddleBlockUp; port++ {
				tg.addCable(aggID, spineRange.First+spineBlockIdx)
				spineBlockIdx = (spineBlockIdx + 1) % jb.spineBlockCount
			}
		}
	}

	return jb.initCapacities(tg, jb)
}
